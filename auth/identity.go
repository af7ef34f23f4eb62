package auth

import "github.com/google/uuid"

// Role is the closed set of access levels a request can carry. Group
// memberships are resolved to a single Role once per request; handlers and
// services never compare group name strings.
type Role int

const (
	RoleCustomer Role = iota
	RoleDeliveryCrew
	RoleManager
)

func (r Role) String() string {
	switch r {
	case RoleManager:
		return "manager"
	case RoleDeliveryCrew:
		return "delivery_crew"
	default:
		return "customer"
	}
}

// Identity is the authenticated caller of a request. A nil *Identity means
// the request is anonymous.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     Role
}

// IsManager reports whether the identity carries the Manager role.
func (id *Identity) IsManager() bool {
	return id != nil && id.Role == RoleManager
}

// IsDeliveryCrew reports whether the identity carries the Delivery-crew role.
func (id *Identity) IsDeliveryCrew() bool {
	return id != nil && id.Role == RoleDeliveryCrew
}
