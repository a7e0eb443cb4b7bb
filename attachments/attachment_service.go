package attachments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/apperrors"
	"github.com/jrsteele09/taskflow-server/storage"
	"github.com/jrsteele09/taskflow-server/tasks"
	"github.com/jrsteele09/taskflow-server/users"
)

// TaskFinder resolves a task within a project. Satisfied by tasks.Repo.
type TaskFinder interface {
	FindInProject(ctx context.Context, projectID, taskID string) (*tasks.Task, error)
}

// Repos holds the repository dependencies for the attachment Service.
type Repos struct {
	Attachments Repo
	Tasks       TaskFinder
	Users       users.Repo
}

// CreateRequest registers the metadata of a file that was uploaded
// through a previously presigned URL.
type CreateRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   *int64 `json:"sizeBytes,omitempty"`
	Key         string `json:"key"`
}

// AttachmentView is an attachment enriched with its uploader profile.
type AttachmentView struct {
	Attachment
	Uploader users.PublicUser `json:"uploader"`
}

// PresignedUpload is the response for an upload-URL request. The client
// PUTs the file to UploadURL and then registers the metadata using Key.
type PresignedUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"uploadUrl"`
}

type Service struct {
	repos Repos
	store storage.ObjectStore
}

func NewService(repos Repos, store storage.ObjectStore) (*Service, error) {
	if repos.Attachments == nil {
		return nil, errors.New("[attachments.NewService] Attachments repo is required")
	}
	if repos.Tasks == nil {
		return nil, errors.New("[attachments.NewService] Tasks finder is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[attachments.NewService] Users repo is required")
	}
	if store == nil {
		return nil, errors.New("[attachments.NewService] ObjectStore is required")
	}
	return &Service{repos: repos, store: store}, nil
}

func (s *Service) List(ctx context.Context, projectID, taskID string) ([]*AttachmentView, error) {
	if err := s.ensureTaskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	records, err := s.repos.Attachments.ListByTask(ctx, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "[attachments.Service.List]")
	}

	views := make([]*AttachmentView, 0, len(records))
	for _, record := range records {
		view := &AttachmentView{Attachment: *record}
		if user, err := s.repos.Users.GetByID(ctx, record.UploaderID); err == nil && user != nil {
			view.Uploader = user.Public()
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) PresignUpload(ctx context.Context, projectID, taskID, fileName, contentType string) (*PresignedUpload, error) {
	if fileName == "" {
		return nil, apperrors.BadRequest("File name is required")
	}
	if contentType == "" {
		return nil, apperrors.BadRequest("Content type is required")
	}
	if err := s.ensureTaskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("tasks/%s/%s-%s", taskID, uuid.New().String(), fileName)
	uploadURL, err := s.store.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, errors.Wrap(err, "[attachments.Service.PresignUpload]")
	}

	return &PresignedUpload{Key: key, UploadURL: uploadURL}, nil
}

func (s *Service) Create(ctx context.Context, projectID, taskID, uploaderID string, req CreateRequest) (*AttachmentView, error) {
	if req.FileName == "" {
		return nil, apperrors.BadRequest("File name is required")
	}
	if req.Key == "" {
		return nil, apperrors.BadRequest("Object key is required")
	}
	if err := s.ensureTaskInProject(ctx, projectID, taskID); err != nil {
		return nil, err
	}

	attachment := &Attachment{
		TaskID:      taskID,
		UploaderID:  uploaderID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		Key:         req.Key,
	}
	if publicURL := s.store.PublicURL(req.Key); publicURL != "" {
		attachment.URL = &publicURL
	}

	created, err := s.repos.Attachments.Create(ctx, attachment)
	if err != nil {
		return nil, errors.Wrap(err, "[attachments.Service.Create]")
	}

	view := &AttachmentView{Attachment: *created}
	if user, err := s.repos.Users.GetByID(ctx, uploaderID); err == nil && user != nil {
		view.Uploader = user.Public()
	}
	return view, nil
}

func (s *Service) ensureTaskInProject(ctx context.Context, projectID, taskID string) error {
	task, err := s.repos.Tasks.FindInProject(ctx, projectID, taskID)
	if err != nil {
		return errors.Wrap(err, "[attachments.Service.ensureTaskInProject]")
	}
	if task == nil {
		return apperrors.NotFound("Task not found")
	}
	return nil
}
