package dto

import (
	"github.com/ganeshlonare/lms-client/internal/app/models"
	"github.com/ganeshlonare/lms-client/internal/app/models/dto/enums"
)

// SignupRequest represents the multipart signup form. Avatar is an
// optional image attached as a file part.
type SignupRequest struct {
	FullName   string
	Email      string
	Password   string
	AvatarPath string
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// ForgotPasswordRequest asks the server to mail a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the new password; the reset token rides
// in the URL path, not the body.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
}

// UserPayload is the wire shape of a user object as the backend sends
// it. Parsed at the adapter boundary and converted with ToProfile.
type UserPayload struct {
	ID       string `json:"_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   struct {
		SecureURL string `json:"secure_url"`
	} `json:"avatar"`
	Subscription struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"subscription"`
}

// ToProfile converts the wire payload into the client profile model
func (p *UserPayload) ToProfile() models.UserProfile {
	return models.UserProfile{
		ID:                 p.ID,
		FullName:           p.FullName,
		Email:              p.Email,
		AvatarURL:          p.Avatar.SecureURL,
		Role:               enums.RoleType(p.Role),
		SubscriptionStatus: enums.SubscriptionStatus(p.Subscription.Status),
	}
}

// AuthResponse represents the body of signin/getuser responses
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserPayload `json:"user"`
}

// MessageResponse represents bodies that carry only an outcome message
// (signup, signout, password flows, profile update)
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
