package memberships

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/users"
)

// Repos holds the repository dependencies for the membership Service.
type Repos struct {
	Memberships Repo
	Users       users.Repo
}

// AddMemberRequest invites an existing user to a project by email.
type AddMemberRequest struct {
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// Service implements membership listing and mutation, including the
// invariant that a project always retains at least one owner.
type Service struct {
	repos Repos
}

func NewService(repos Repos) (*Service, error) {
	if repos.Memberships == nil {
		return nil, errors.New("[memberships.NewService] Memberships repo is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[memberships.NewService] Users repo is required")
	}
	return &Service{repos: repos}, nil
}

func (s *Service) ListMembers(ctx context.Context, projectID string) ([]*Member, error) {
	records, err := s.repos.Memberships.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.ListMembers]")
	}

	members := make([]*Member, 0, len(records))
	for _, record := range records {
		member, err := s.toMember(ctx, record)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, nil
}

func (s *Service) AddMember(ctx context.Context, projectID, actorID string, req AddMemberRequest) (*Member, error) {
	role := req.Role
	if role == "" {
		role = RoleContributor
	}
	if !ValidRole(role) {
		return nil, apperrors.BadRequest("Unknown membership role")
	}

	user, err := s.repos.Users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.AddMember] GetByEmail")
	}
	if user == nil {
		return nil, apperrors.NotFound("User with that email does not exist")
	}

	existing, err := s.repos.Memberships.FindUnique(ctx, user.ID, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.AddMember] FindUnique")
	}
	if existing != nil {
		return nil, apperrors.Conflict("User is already a member of this project")
	}

	membership, err := s.repos.Memberships.Create(ctx, &Membership{
		ProjectID:   projectID,
		UserID:      user.ID,
		Role:        role,
		InvitedByID: &actorID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.AddMember] Create")
	}

	return &Member{Membership: *membership, User: user.Public()}, nil
}

func (s *Service) UpdateMemberRole(ctx context.Context, projectID, membershipID string, role Role) (*Member, error) {
	if !ValidRole(role) {
		return nil, apperrors.BadRequest("Unknown membership role")
	}

	membership, err := s.repos.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.UpdateMemberRole] GetByID")
	}
	if membership == nil || membership.ProjectID != projectID {
		return nil, apperrors.NotFound("Membership not found")
	}

	if membership.Role == RoleOwner && role != RoleOwner {
		if err := s.ensureAnotherOwnerExists(ctx, projectID, membership.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repos.Memberships.UpdateRole(ctx, membershipID, role)
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.UpdateMemberRole] UpdateRole")
	}
	if updated == nil {
		return nil, apperrors.NotFound("Membership not found")
	}

	return s.toMember(ctx, updated)
}

func (s *Service) RemoveMember(ctx context.Context, projectID, membershipID string) error {
	membership, err := s.repos.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		return errors.Wrap(err, "[memberships.Service.RemoveMember] GetByID")
	}
	if membership == nil || membership.ProjectID != projectID {
		return apperrors.NotFound("Membership not found")
	}

	if membership.Role == RoleOwner {
		if err := s.ensureAnotherOwnerExists(ctx, projectID, membership.ID); err != nil {
			return err
		}
	}

	return errors.Wrap(s.repos.Memberships.Delete(ctx, membershipID), "[memberships.Service.RemoveMember] Delete")
}

func (s *Service) ensureAnotherOwnerExists(ctx context.Context, projectID, excludingID string) error {
	owners, err := s.repos.Memberships.CountOwners(ctx, projectID, excludingID)
	if err != nil {
		return errors.Wrap(err, "[memberships.Service.ensureAnotherOwnerExists] CountOwners")
	}
	if owners == 0 {
		return apperrors.BadRequest("Project must retain at least one owner")
	}
	return nil
}

func (s *Service) toMember(ctx context.Context, membership *Membership) (*Member, error) {
	user, err := s.repos.Users.GetByID(ctx, membership.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "[memberships.Service.toMember] GetByID")
	}

	member := &Member{Membership: *membership}
	if user != nil {
		member.User = user.Public()
	}
	return member, nil
}
