// Package transport defines request and response DTOs for auth.
package transport

import (
	usertransport "designhub_backend/internal/users/transport"
)

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	FullName  string  `json:"fullName" validate:"required,min=1,max=120"`
	Email     string  `json:"email" validate:"required,email,max=254"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	Role      string  `json:"role" validate:"required,oneof=client designer"`
	ContactNo *string `json:"contactNo" validate:"omitempty,max=32"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RequestOTPRequest starts the password-change flow.
type RequestOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyOTPRequest checks a code without consuming it.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// ChangePasswordRequest completes the password-change flow.
type ChangePasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// AuthResponse is returned from register and login.
type AuthResponse struct {
	Token string                     `json:"token"`
	User  usertransport.UserResponse `json:"user"`
}
