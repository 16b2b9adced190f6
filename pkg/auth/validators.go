package auth

// RegisterPayload represents the account creation request body.
type RegisterPayload struct {
	Username string `json:"username" mod:"trim" validate:"required,min=3,max=50"`
	Email    string `json:"email" mod:"trim" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginPayload represents the login request body.
type LoginPayload struct {
	Username string `json:"username" mod:"trim" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}
