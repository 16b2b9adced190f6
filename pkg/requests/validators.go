package requests

// CreateRequestPayload represents the acquisition-request creation body.
type CreateRequestPayload struct {
	BookTitle string `json:"book_title" mod:"trim" validate:"required,min=1,max=500"`
	Author    string `json:"author" mod:"trim" validate:"required,min=1,max=200"`
	ISBN      string `json:"isbn" mod:"trim" validate:"required,isbn"`
}
