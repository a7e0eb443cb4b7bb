// Package access gates project-scoped operations on the caller's membership
// and an operation-declared role set.
package access

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/memberships"
)

// Authorizer resolves the caller's membership in a project and enforces the
// required roles. It only reads memberships; it never mutates them.
type Authorizer struct {
	membershipRepo memberships.Repo
}

func NewAuthorizer(membershipRepo memberships.Repo) (*Authorizer, error) {
	if membershipRepo == nil {
		return nil, errors.New("[access.NewAuthorizer] membership repo is required")
	}
	return &Authorizer{membershipRepo: membershipRepo}, nil
}

// Authorize loads the unique membership for (userID, projectID) and checks
// it against requiredRoles.
//
// The role check is exact set membership: an endpoint allowing admins and
// owners declares both; OWNER is never inferred from outranking ADMIN. An
// empty set means any membership grants access. A non-member gets Forbidden
// whether or not the project exists, so outsiders cannot probe for projects.
func (a *Authorizer) Authorize(ctx context.Context, userID, projectID string, requiredRoles ...memberships.Role) (*memberships.Membership, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("Authentication required")
	}
	if projectID == "" {
		return nil, apperrors.BadRequest("Route is missing a projectId parameter")
	}

	membership, err := a.membershipRepo.FindUnique(ctx, userID, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "[access.Authorizer.Authorize] FindUnique")
	}
	if membership == nil {
		return nil, apperrors.Forbidden("You do not have access to this project")
	}

	if len(requiredRoles) == 0 {
		return membership, nil
	}

	for _, role := range requiredRoles {
		if membership.Role == role {
			return membership, nil
		}
	}

	return nil, apperrors.Forbidden("Insufficient project permissions")
}
