package access_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/taskflow-server/access"
	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/memberships"
	membershipfake "github.com/jrsteele09/taskflow-server/memberships/repofake"
)

const (
	testProjectID = "project-1"
	testUserID    = "user-1"
)

func setupAuthorizer(t *testing.T, role memberships.Role) (*access.Authorizer, *memberships.Membership) {
	t.Helper()

	repo := membershipfake.NewFakeMembershipRepo()
	membership, err := repo.Create(context.Background(), &memberships.Membership{
		ProjectID: testProjectID,
		UserID:    testUserID,
		Role:      role,
	})
	require.NoError(t, err)

	authorizer, err := access.NewAuthorizer(repo)
	require.NoError(t, err)
	return authorizer, membership
}

func TestAuthorizeRequiresUser(t *testing.T) {
	authorizer, _ := setupAuthorizer(t, memberships.RoleViewer)

	_, err := authorizer.Authorize(context.Background(), "", testProjectID)
	require.ErrorIs(t, err, apperrors.ErrUnauthorized)
	require.Equal(t, "Authentication required", apperrors.Message(err))
}

func TestAuthorizeRequiresProjectID(t *testing.T) {
	authorizer, _ := setupAuthorizer(t, memberships.RoleViewer)

	_, err := authorizer.Authorize(context.Background(), testUserID, "")
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	require.Equal(t, "Route is missing a projectId parameter", apperrors.Message(err))
}

func TestAuthorizeNonMemberForbidden(t *testing.T) {
	authorizer, _ := setupAuthorizer(t, memberships.RoleViewer)

	_, err := authorizer.Authorize(context.Background(), "someone-else", testProjectID)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Equal(t, "You do not have access to this project", apperrors.Message(err))
}

func TestAuthorizeUnknownProjectForbidden(t *testing.T) {
	// An id that matches no project looks exactly like a project the caller
	// cannot see.
	authorizer, _ := setupAuthorizer(t, memberships.RoleViewer)

	_, err := authorizer.Authorize(context.Background(), testUserID, "no-such-project")
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Equal(t, "You do not have access to this project", apperrors.Message(err))
}

func TestAuthorizeAnyMemberWhenNoRolesRequired(t *testing.T) {
	authorizer, created := setupAuthorizer(t, memberships.RoleViewer)

	membership, err := authorizer.Authorize(context.Background(), testUserID, testProjectID)
	require.NoError(t, err)
	require.Equal(t, created.ID, membership.ID)
}

func TestAuthorizeExactRoleSet(t *testing.T) {
	authorizer, _ := setupAuthorizer(t, memberships.RoleContributor)

	_, err := authorizer.Authorize(context.Background(), testUserID, testProjectID,
		memberships.RoleContributor, memberships.RoleAdmin, memberships.RoleOwner)
	require.NoError(t, err)

	_, err = authorizer.Authorize(context.Background(), testUserID, testProjectID,
		memberships.RoleAdmin, memberships.RoleOwner)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
	require.Equal(t, "Insufficient project permissions", apperrors.Message(err))
}

func TestAuthorizeOwnerDoesNotImplyLesserRoleSets(t *testing.T) {
	// Role sets are exact: a set naming only CONTRIBUTOR does not admit an
	// OWNER.
	authorizer, _ := setupAuthorizer(t, memberships.RoleOwner)

	_, err := authorizer.Authorize(context.Background(), testUserID, testProjectID,
		memberships.RoleContributor)
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}
