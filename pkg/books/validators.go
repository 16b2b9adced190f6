package books

// CreateBookPayload represents the catalog-entry creation body.
type CreateBookPayload struct {
	ISBN      string `json:"isbn" mod:"trim" validate:"required,isbn"`
	Title     string `json:"title" mod:"trim" validate:"required,min=1,max=500"`
	Author    string `json:"author" mod:"trim" validate:"required,min=1,max=200"`
	Year      string `json:"year,omitempty" mod:"trim" validate:"omitempty,len=4,number"`
	Publisher string `json:"publisher,omitempty" mod:"trim" validate:"omitempty,max=200"`
	ImageS    string `json:"image_url_s,omitempty" validate:"omitempty,url"`
	ImageM    string `json:"image_url_m,omitempty" validate:"omitempty,url"`
	ImageL    string `json:"image_url_l,omitempty" validate:"omitempty,url"`
}

// UpdateBookPayload represents the catalog-entry update body.
type UpdateBookPayload struct {
	Title     *string `json:"title,omitempty" mod:"trim" validate:"omitempty,min=1,max=500"`
	Author    *string `json:"author,omitempty" mod:"trim" validate:"omitempty,min=1,max=200"`
	Year      *string `json:"year,omitempty" mod:"trim" validate:"omitempty,len=4,number"`
	Publisher *string `json:"publisher,omitempty" mod:"trim" validate:"omitempty,max=200"`
	ImageS    *string `json:"image_url_s,omitempty" validate:"omitempty,url"`
	ImageM    *string `json:"image_url_m,omitempty" validate:"omitempty,url"`
	ImageL    *string `json:"image_url_l,omitempty" validate:"omitempty,url"`
}

// SearchBooksQuery represents the query parameters for book search.
type SearchBooksQuery struct {
	Query string `query:"q" json:"q,omitempty" validate:"omitempty,max=100"`
}
