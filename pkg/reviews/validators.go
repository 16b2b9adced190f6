package reviews

// CreateReviewPayload represents the review creation body.
type CreateReviewPayload struct {
	ISBN    string `json:"isbn" mod:"trim" validate:"required,isbn"`
	Comment string `json:"comment" mod:"trim" validate:"required,min=3,max=2000"`
}

// EditReviewPayload represents the review edit body.
type EditReviewPayload struct {
	Comment string `json:"comment" mod:"trim" validate:"required,min=3,max=2000"`
}
