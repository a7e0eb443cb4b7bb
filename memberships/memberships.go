// Package memberships binds users to projects with a role. The role scale
// is OWNER > ADMIN > CONTRIBUTOR > VIEWER for human reasoning, but access
// checks compare against explicit role sets, never the scale.
package memberships

import (
	"time"

	"github.com/jrsteele09/taskflow-server/users"
)

type Role string

const (
	RoleOwner       Role = "OWNER"
	RoleAdmin       Role = "ADMIN"
	RoleContributor Role = "CONTRIBUTOR"
	RoleViewer      Role = "VIEWER"
)

// ValidRole reports whether a wire value names a known role.
func ValidRole(role Role) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleContributor, RoleViewer:
		return true
	}
	return false
}

type Membership struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	UserID      string    `json:"userId"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
	InvitedByID *string   `json:"invitedById"`
}

// Member is a membership enriched with the member's public profile, the
// shape returned by the membership endpoints.
type Member struct {
	Membership
	User users.PublicUser `json:"user"`
}
