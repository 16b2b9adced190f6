package ratings

// UpsertRatingPayload represents the rating submission body. Re-submitting for
// the same book overwrites the previous value.
type UpsertRatingPayload struct {
	ISBN   string `json:"isbn" mod:"trim" validate:"required,isbn"`
	Rating int    `json:"rating" validate:"min=0,max=10"`
}
