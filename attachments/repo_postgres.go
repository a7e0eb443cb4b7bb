package attachments

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// PostgresRepo implements Repo backed by the attachments table.
type PostgresRepo struct {
	pool *pgxpool.Pool
}

var _ Repo = (*PostgresRepo)(nil)

func NewPostgresRepo(pool *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{pool: pool}
}

func (r *PostgresRepo) Create(ctx context.Context, attachment *Attachment) (*Attachment, error) {
	if attachment.ID == "" {
		attachment.ID = uuid.New().String()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO attachments (id, task_id, uploader_id, file_name, content_type, size_bytes, object_key, url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`, attachment.ID, attachment.TaskID, attachment.UploaderID, attachment.FileName,
		attachment.ContentType, attachment.SizeBytes, attachment.Key, attachment.URL).
		Scan(&attachment.CreatedAt)
	if err != nil {
		return nil, errors.Wrap(err, "[attachments.PostgresRepo.Create]")
	}

	return attachment, nil
}

func (r *PostgresRepo) ListByTask(ctx context.Context, taskID string) ([]*Attachment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, task_id, uploader_id, file_name, content_type, size_bytes, object_key, url, created_at
		FROM attachments
		WHERE task_id = $1
		ORDER BY created_at DESC
	`, taskID)
	if err != nil {
		return nil, errors.Wrap(err, "[attachments.PostgresRepo.ListByTask]")
	}
	defer rows.Close()

	var attachments []*Attachment
	for rows.Next() {
		attachment := &Attachment{}
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TaskID,
			&attachment.UploaderID,
			&attachment.FileName,
			&attachment.ContentType,
			&attachment.SizeBytes,
			&attachment.Key,
			&attachment.URL,
			&attachment.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "[attachments.PostgresRepo.ListByTask] scan")
		}
		attachments = append(attachments, attachment)
	}
	return attachments, errors.Wrap(rows.Err(), "[attachments.PostgresRepo.ListByTask] rows")
}
