package users

// UpdateUserPayload is the payload for updating a user's account fields.
type UpdateUserPayload struct {
	Username *string `json:"username,omitempty" mod:"trim" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email,omitempty" mod:"trim" validate:"omitempty,email"`
	IsAdmin  *bool   `json:"is_admin,omitempty"`
}

// SuspendUserPayload is the payload for suspending a user.
type SuspendUserPayload struct {
	DurationMinutes int `json:"duration_minutes" validate:"required,min=1,max=525600"`
}
