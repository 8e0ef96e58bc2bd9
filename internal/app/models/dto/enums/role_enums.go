package enums

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

// Valid reports whether the role is one the backend issues
func (r RoleType) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// SubscriptionStatus mirrors the backend's payment-state field
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
)
