package projects

import (
	"time"

	"github.com/jrsteele09/taskflow-server/memberships"
)

type Status string

const (
	StatusDraft    Status = "DRAFT"
	StatusActive   Status = "ACTIVE"
	StatusArchived Status = "ARCHIVED"
)

func ValidStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Status      Status    `json:"status"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectWithRole is a project paired with the calling user's role in it.
type ProjectWithRole struct {
	Project
	Role memberships.Role `json:"role"`
}
