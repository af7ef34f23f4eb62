package auth

import "restaurant-service/apperrors"

// Action is what the caller wants to do with a resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
)

// Resource is a coarse grouping of the API surface. Ownership checks on
// individual rows (own cart, own order) live in the services; Authorize only
// decides whether the role may touch the resource class at all.
type Resource int

const (
	ResourceMenu Resource = iota
	ResourceCart
	ResourceOrder
	ResourceRoster
)

// Authorize decides whether an identity may perform an action on a resource.
// It returns nil when allowed, a 401 for anonymous callers and a 403 for
// authenticated callers whose role does not cover the action. The two must
// stay distinguishable so clients can tell "log in first" from "not yours".
func Authorize(id *Identity, action Action, resource Resource) *apperrors.Error {
	switch resource {
	case ResourceMenu:
		if action == ActionRead {
			return nil
		}
		if id == nil {
			return apperrors.ErrUnauthorized
		}
		if id.Role != RoleManager {
			return apperrors.Forbidden("Manager role required")
		}
		return nil

	case ResourceCart, ResourceOrder:
		if id == nil {
			return apperrors.ErrUnauthorized
		}
		return nil

	case ResourceRoster:
		if id == nil {
			return apperrors.ErrUnauthorized
		}
		if id.Role != RoleManager {
			return apperrors.Forbidden("Manager role required")
		}
		return nil
	}
	return apperrors.ErrForbidden
}
