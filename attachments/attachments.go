// Package attachments manages file metadata for task attachments. The
// files themselves live in object storage; clients upload them directly
// via presigned URLs and then register the metadata here.
package attachments

import "time"

// Attachment is the stored metadata for an uploaded file.
type Attachment struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	UploaderID  string    `json:"uploaderId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   *int64    `json:"sizeBytes"`
	Key         string    `json:"-"`
	URL         *string   `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}
