package auth

import "fitcrm/internal/domain"

// RegisterRequest creates the founding admin account together with their
// studio: user, studio and owning profile in one step.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,min=5,max=255,email"`
	Password   string `json:"password" validate:"required,min=8,max=100"`
	FirstName  string `json:"first_name" validate:"required,min=1,max=100,safetext"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100,safetext"`
	StudioName string `json:"studio_name" validate:"required,min=2,max=200,safetext"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the safe projection returned after login/registration.
type UserDTO struct {
	ID       string      `json:"id"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	StudioID string      `json:"studio_id"`
	FullName string      `json:"full_name"`
}
