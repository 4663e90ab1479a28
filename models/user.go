package models

import "time"

// User is the staff profile returned by the backend. It is cached next to the
// tokens under the "user" session key and refreshed on demand.
type User struct {
	// ID is the backend primary key of the account.
	ID FlexString `json:"id"`

	// Email is the login identifier of the account.
	Email string `json:"email"`

	// FullName is the display name shown in the UI.
	FullName string `json:"full_name"`

	// CompanyName is the optional organisation of the staff member.
	CompanyName string `json:"company_name,omitempty"`

	// PhoneNo is the optional contact phone number.
	PhoneNo string `json:"phone_no,omitempty"`

	// IsVerified reports whether the email address has been confirmed.
	// Unverified accounts cannot log in.
	IsVerified bool `json:"is_verified"`

	// CreatedAt is the account creation time, if the backend provides it.
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the account registration payload.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	FullName        string `json:"full_name" validate:"required"`
	CompanyName     string `json:"company_name,omitempty"`
	PhoneNo         string `json:"phone_no,omitempty"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// ForgotPasswordRequest asks the backend to email a password reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password for the reset link
// identified by UID and Token. UID and Token travel in the URL path.
type ResetPasswordRequest struct {
	UID             string `json:"-" validate:"required"`
	Token           string `json:"-" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// UpdateProfileRequest holds the editable profile fields. Empty fields are
// not sent.
type UpdateProfileRequest struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	FullName    string `json:"full_name,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	PhoneNo     string `json:"phone_no,omitempty"`
}

// ChangePasswordRequest is the authenticated password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}
