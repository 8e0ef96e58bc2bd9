package models

import "github.com/ganeshlonare/lms-client/internal/app/models/dto/enums"

// UserProfile is the client-held view of the authenticated user,
// mirrored from server-confirmed login state.
type UserProfile struct {
	ID                 string                   `json:"id"`
	FullName           string                   `json:"fullName"`
	Email              string                   `json:"email"`
	AvatarURL          string                   `json:"avatarUrl,omitempty"`
	Role               enums.RoleType           `json:"role"`
	SubscriptionStatus enums.SubscriptionStatus `json:"subscriptionStatus,omitempty"`
}

// IsEmpty reports whether the profile carries no user
func (u UserProfile) IsEmpty() bool {
	return u.ID == "" && u.Email == ""
}

// HasActiveSubscription is the single derivation of "has the user
// purchased course access": an explicit status match, not field
// truthiness.
func (u UserProfile) HasActiveSubscription() bool {
	return u.SubscriptionStatus == enums.SubscriptionActive
}
