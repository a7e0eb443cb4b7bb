package memberships_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/memberships"
	membershipfake "github.com/jrsteele09/taskflow-server/memberships/repofake"
	"github.com/jrsteele09/taskflow-server/users"
	fakeuserrepo "github.com/jrsteele09/taskflow-server/users/repofake"
)

const testProjectID = "project-1"

type testFixture struct {
	membershipRepo *membershipfake.FakeMembershipRepo
	userRepo       *fakeuserrepo.FakeUserRepo
	service        *memberships.Service
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		membershipRepo: membershipfake.NewFakeMembershipRepo(),
		userRepo:       fakeuserrepo.NewFakeUserRepo(),
	}

	service, err := memberships.NewService(memberships.Repos{
		Memberships: f.membershipRepo,
		Users:       f.userRepo,
	})
	require.NoError(t, err)
	f.service = service
	return f
}

func (f *testFixture) createUser(t *testing.T, email, name string) *users.User {
	t.Helper()
	user, err := f.userRepo.Create(context.Background(), &users.User{
		Email:       email,
		DisplayName: name,
	})
	require.NoError(t, err)
	return user
}

func (f *testFixture) addMembership(t *testing.T, userID string, role memberships.Role) *memberships.Membership {
	t.Helper()
	membership, err := f.membershipRepo.Create(context.Background(), &memberships.Membership{
		ProjectID: testProjectID,
		UserID:    userID,
		Role:      role,
	})
	require.NoError(t, err)
	return membership
}

func TestAddMemberDefaultsToContributor(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	invitee := f.createUser(t, "invitee@example.com", "Invitee")
	f.addMembership(t, owner.ID, memberships.RoleOwner)

	member, err := f.service.AddMember(context.Background(), testProjectID, owner.ID, memberships.AddMemberRequest{
		Email: invitee.Email,
	})
	require.NoError(t, err)
	require.Equal(t, memberships.RoleContributor, member.Role)
	require.NotNil(t, member.InvitedByID)
	require.Equal(t, owner.ID, *member.InvitedByID)
	require.Equal(t, invitee.Email, member.User.Email)
}

func TestAddMemberUnknownEmail(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")

	_, err := f.service.AddMember(context.Background(), testProjectID, owner.ID, memberships.AddMemberRequest{
		Email: "nobody@example.com",
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, "User with that email does not exist", apperrors.Message(err))
}

func TestAddMemberTwiceConflicts(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	invitee := f.createUser(t, "invitee@example.com", "Invitee")
	f.addMembership(t, invitee.ID, memberships.RoleViewer)

	_, err := f.service.AddMember(context.Background(), testProjectID, owner.ID, memberships.AddMemberRequest{
		Email: invitee.Email,
	})
	require.ErrorIs(t, err, apperrors.ErrConflict)
	require.Equal(t, "User is already a member of this project", apperrors.Message(err))
}

func TestAddMemberRejectsUnknownRole(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")

	_, err := f.service.AddMember(context.Background(), testProjectID, owner.ID, memberships.AddMemberRequest{
		Email: owner.Email,
		Role:  memberships.Role("SUPERVISOR"),
	})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	require.Equal(t, "Unknown membership role", apperrors.Message(err))
}

func TestUpdateMemberRole(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	other := f.createUser(t, "other@example.com", "Other")
	f.addMembership(t, owner.ID, memberships.RoleOwner)
	membership := f.addMembership(t, other.ID, memberships.RoleViewer)

	member, err := f.service.UpdateMemberRole(context.Background(), testProjectID, membership.ID, memberships.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, memberships.RoleAdmin, member.Role)
}

func TestDemoteSoleOwnerRejected(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	membership := f.addMembership(t, owner.ID, memberships.RoleOwner)

	_, err := f.service.UpdateMemberRole(context.Background(), testProjectID, membership.ID, memberships.RoleAdmin)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	require.Equal(t, "Project must retain at least one owner", apperrors.Message(err))
}

func TestDemoteOwnerAllowedWhenAnotherRemains(t *testing.T) {
	f := setupTestFixture(t)
	first := f.createUser(t, "first@example.com", "First")
	second := f.createUser(t, "second@example.com", "Second")
	membership := f.addMembership(t, first.ID, memberships.RoleOwner)
	f.addMembership(t, second.ID, memberships.RoleOwner)

	member, err := f.service.UpdateMemberRole(context.Background(), testProjectID, membership.ID, memberships.RoleContributor)
	require.NoError(t, err)
	require.Equal(t, memberships.RoleContributor, member.Role)
}

func TestRemoveSoleOwnerRejected(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	membership := f.addMembership(t, owner.ID, memberships.RoleOwner)

	err := f.service.RemoveMember(context.Background(), testProjectID, membership.ID)
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	require.Equal(t, "Project must retain at least one owner", apperrors.Message(err))
}

func TestRemoveMember(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	other := f.createUser(t, "other@example.com", "Other")
	f.addMembership(t, owner.ID, memberships.RoleOwner)
	membership := f.addMembership(t, other.ID, memberships.RoleContributor)

	require.NoError(t, f.service.RemoveMember(context.Background(), testProjectID, membership.ID))

	members, err := f.service.ListMembers(context.Background(), testProjectID)
	require.NoError(t, err)
	require.Len(t, members, 1)
}

func TestMembershipFromAnotherProjectNotFound(t *testing.T) {
	f := setupTestFixture(t)
	owner := f.createUser(t, "owner@example.com", "Owner")
	membership, err := f.membershipRepo.Create(context.Background(), &memberships.Membership{
		ProjectID: "project-2",
		UserID:    owner.ID,
		Role:      memberships.RoleOwner,
	})
	require.NoError(t, err)

	_, err = f.service.UpdateMemberRole(context.Background(), testProjectID, membership.ID, memberships.RoleAdmin)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, "Membership not found", apperrors.Message(err))
}
