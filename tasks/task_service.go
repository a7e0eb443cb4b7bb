package tasks

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/memberships"
	"github.com/jrsteele09/taskflow-server/users"
)

// Repos holds the repository dependencies for the task Service.
type Repos struct {
	Tasks       Repo
	Memberships memberships.Repo
	Users       users.Repo
}

// CreateRequest carries the task creation payload.
type CreateRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Position    *int       `json:"position,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
}

// UpdateParams carries a partial task update. Optional fields distinguish
// "leave untouched" from "clear".
type UpdateParams struct {
	Title       Optional[string]    `json:"title"`
	Description Optional[string]    `json:"description"`
	Priority    Optional[Priority]  `json:"priority"`
	Status      Optional[Status]    `json:"status"`
	Position    Optional[int]       `json:"position"`
	DueAt       Optional[time.Time] `json:"dueAt"`
	AssigneeID  Optional[string]    `json:"assigneeId"`
}

// TaskView is a task enriched with its creator profile and assignee
// membership, the shape returned by the task endpoints.
type TaskView struct {
	Task
	CreatedBy users.PublicUser    `json:"createdBy"`
	Assignee  *memberships.Member `json:"assignee"`
}

type Service struct {
	repos   Repos
	nowTime func() time.Time
}

type ServiceOption func(*Service)

func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

func NewService(repos Repos, options ...ServiceOption) (*Service, error) {
	if repos.Tasks == nil {
		return nil, errors.New("[tasks.NewService] Tasks repo is required")
	}
	if repos.Memberships == nil {
		return nil, errors.New("[tasks.NewService] Memberships repo is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[tasks.NewService] Users repo is required")
	}

	service := &Service{repos: repos, nowTime: time.Now}
	for _, opt := range options {
		opt(service)
	}
	return service, nil
}

func (s *Service) List(ctx context.Context, projectID string, filters ListFilters) ([]*TaskView, error) {
	if filters.Status != nil && !ValidStatus(*filters.Status) {
		return nil, apperrors.BadRequest("Unknown task status")
	}

	records, err := s.repos.Tasks.List(ctx, projectID, filters)
	if err != nil {
		return nil, errors.Wrap(err, "[tasks.Service.List]")
	}

	views := make([]*TaskView, 0, len(records))
	for _, record := range records {
		view, err := s.toView(ctx, record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) Create(ctx context.Context, projectID, creatorID string, req CreateRequest) (*TaskView, error) {
	if req.Title == "" {
		return nil, apperrors.BadRequest("Task title is required")
	}

	status := req.Status
	if status == "" {
		status = StatusBacklog
	}
	if !ValidStatus(status) {
		return nil, apperrors.BadRequest("Unknown task status")
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !ValidPriority(priority) {
		return nil, apperrors.BadRequest("Unknown task priority")
	}

	if req.AssigneeID != nil {
		if err := s.ensureAssigneeBelongsToProject(ctx, projectID, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	position := 0
	if req.Position != nil {
		position = *req.Position
	} else {
		max, err := s.repos.Tasks.MaxPosition(ctx, projectID)
		if err != nil {
			return nil, errors.Wrap(err, "[tasks.Service.Create] MaxPosition")
		}
		position = max + 1
	}

	task, err := s.repos.Tasks.Create(ctx, &Task{
		ProjectID:   projectID,
		CreatedByID: creatorID,
		AssigneeID:  req.AssigneeID,
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		Position:    position,
		DueAt:       req.DueAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "[tasks.Service.Create]")
	}

	return s.toView(ctx, task)
}

func (s *Service) Get(ctx context.Context, projectID, taskID string) (*TaskView, error) {
	task, err := s.repos.Tasks.FindInProject(ctx, projectID, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "[tasks.Service.Get]")
	}
	if task == nil {
		return nil, apperrors.NotFound("Task not found")
	}
	return s.toView(ctx, task)
}

func (s *Service) Update(ctx context.Context, projectID, taskID string, params UpdateParams) (*TaskView, error) {
	task, err := s.repos.Tasks.FindInProject(ctx, projectID, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "[tasks.Service.Update]")
	}
	if task == nil {
		return nil, apperrors.NotFound("Task not found")
	}

	if params.Title.Set && params.Title.Value != nil {
		task.Title = *params.Title.Value
	}
	if params.Description.Set {
		task.Description = params.Description.Value
	}
	if params.Priority.Set && params.Priority.Value != nil {
		if !ValidPriority(*params.Priority.Value) {
			return nil, apperrors.BadRequest("Unknown task priority")
		}
		task.Priority = *params.Priority.Value
	}
	if params.Position.Set && params.Position.Value != nil {
		task.Position = *params.Position.Value
	}
	if params.DueAt.Set {
		task.DueAt = params.DueAt.Value
	}
	if params.Status.Set && params.Status.Value != nil {
		next := *params.Status.Value
		if !ValidStatus(next) {
			return nil, apperrors.BadRequest("Unknown task status")
		}
		// Completion timestamp tracks the DONE transition in both directions.
		if next == StatusDone && task.Status != StatusDone {
			now := s.nowTime()
			task.CompletedAt = &now
		}
		if next != StatusDone && task.Status == StatusDone {
			task.CompletedAt = nil
		}
		task.Status = next
	}
	if params.AssigneeID.Set {
		if params.AssigneeID.Value != nil {
			if err := s.ensureAssigneeBelongsToProject(ctx, projectID, *params.AssigneeID.Value); err != nil {
				return nil, err
			}
		}
		task.AssigneeID = params.AssigneeID.Value
	}

	updated, err := s.repos.Tasks.Save(ctx, task)
	if err != nil {
		return nil, errors.Wrap(err, "[tasks.Service.Update] Save")
	}
	if updated == nil {
		return nil, apperrors.NotFound("Task not found")
	}

	return s.toView(ctx, updated)
}

func (s *Service) Delete(ctx context.Context, projectID, taskID string) error {
	task, err := s.repos.Tasks.FindInProject(ctx, projectID, taskID)
	if err != nil {
		return errors.Wrap(err, "[tasks.Service.Delete]")
	}
	if task == nil {
		return apperrors.NotFound("Task not found")
	}
	return errors.Wrap(s.repos.Tasks.Delete(ctx, task.ID), "[tasks.Service.Delete] Delete")
}

func (s *Service) ensureAssigneeBelongsToProject(ctx context.Context, projectID, membershipID string) error {
	membership, err := s.repos.Memberships.GetByID(ctx, membershipID)
	if err != nil {
		return errors.Wrap(err, "[tasks.Service.ensureAssigneeBelongsToProject] GetByID")
	}
	if membership == nil || membership.ProjectID != projectID {
		return apperrors.NotFound("Assignee is not part of this project")
	}
	return nil
}

func (s *Service) toView(ctx context.Context, task *Task) (*TaskView, error) {
	view := &TaskView{Task: *task}

	creator, err := s.repos.Users.GetByID(ctx, task.CreatedByID)
	if err != nil {
		return nil, errors.Wrap(err, "[tasks.Service.toView] creator")
	}
	if creator != nil {
		view.CreatedBy = creator.Public()
	}

	if task.AssigneeID != nil {
		membership, err := s.repos.Memberships.GetByID(ctx, *task.AssigneeID)
		if err != nil {
			return nil, errors.Wrap(err, "[tasks.Service.toView] assignee membership")
		}
		if membership != nil {
			member := &memberships.Member{Membership: *membership}
			if user, err := s.repos.Users.GetByID(ctx, membership.UserID); err == nil && user != nil {
				member.User = user.Public()
			}
			view.Assignee = member
		}
	}

	return view, nil
}
