package models

import (
	"time"

	"github.com/google/uuid"
)

// Group names recognized by the access layer. Users outside both groups are
// plain customers.
const (
	GroupManager      = "Manager"
	GroupDeliveryCrew = "Delivery-crew"
)

// Group is a named role. The two well-known groups are seeded at startup.
type Group struct {
	ID   uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
}

// User is an account known to this service. Accounts are provisioned by the
// external auth service; this service only manages group memberships.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(256)" json:"email,omitempty"`
	Groups    []Group   `gorm:"many2many:user_groups" json:"groups,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// InGroup reports whether the user belongs to the named group. Callers
// should have loaded Groups via the repository.
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// AddGroupMemberRequest is the payload for adding a user to a role roster.
type AddGroupMemberRequest struct {
	Username string `json:"username" binding:"required"`
}
