package projects

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/memberships"
)

// CreateRequest carries the project creation payload.
type CreateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type Service struct {
	repo Repo
}

func NewService(repo Repo) (*Service, error) {
	if repo == nil {
		return nil, errors.New("[projects.NewService] project repo is required")
	}
	return &Service{repo: repo}, nil
}

// Create makes a new project owned by ownerID; the owner membership is
// created in the same transaction by the repo.
func (s *Service) Create(ctx context.Context, ownerID string, req CreateRequest) (*ProjectWithRole, error) {
	if req.Name == "" {
		return nil, apperrors.BadRequest("Project name is required")
	}

	project, err := s.repo.CreateWithOwner(ctx, &Project{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[projects.Service.Create]")
	}

	return &ProjectWithRole{Project: *project, Role: memberships.RoleOwner}, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string, status *Status) ([]*ProjectWithRole, error) {
	if status != nil && !ValidStatus(*status) {
		return nil, apperrors.BadRequest("Unknown project status")
	}

	result, err := s.repo.ListForUser(ctx, userID, status)
	if err != nil {
		return nil, errors.Wrap(err, "[projects.Service.ListForUser]")
	}
	return result, nil
}

// Get returns the project with the caller's already-resolved role attached.
func (s *Service) Get(ctx context.Context, projectID string, role memberships.Role) (*ProjectWithRole, error) {
	project, err := s.repo.GetByID(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "[projects.Service.Get]")
	}
	if project == nil {
		return nil, apperrors.NotFound("Project not found")
	}
	return &ProjectWithRole{Project: *project, Role: role}, nil
}

func (s *Service) Update(ctx context.Context, projectID string, updates UpdateParams, role memberships.Role) (*ProjectWithRole, error) {
	if updates.Status != nil && !ValidStatus(*updates.Status) {
		return nil, apperrors.BadRequest("Unknown project status")
	}

	project, err := s.repo.Update(ctx, projectID, updates)
	if err != nil {
		return nil, errors.Wrap(err, "[projects.Service.Update]")
	}
	if project == nil {
		return nil, apperrors.NotFound("Project not found")
	}
	return &ProjectWithRole{Project: *project, Role: role}, nil
}
