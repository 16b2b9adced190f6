package readinglists

// CreateListPayload represents the list creation body.
type CreateListPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,min=1,max=100"`
}

// RenameListPayload represents the list rename body.
type RenameListPayload struct {
	Name string `json:"name" mod:"trim" validate:"required,min=1,max=100"`
}

// ListBookPayload represents the add/remove book body.
type ListBookPayload struct {
	ISBN string `json:"isbn" mod:"trim" validate:"required,isbn"`
}
