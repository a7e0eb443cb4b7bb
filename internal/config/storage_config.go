package config

import "time"

type StorageConfig interface {
	GetS3Bucket() string
	GetS3Region() string
	GetS3Endpoint() string
	GetS3AccessKeyID() string
	GetS3SecretAccessKey() string
	GetS3PublicURLBase() string
	GetPresignExpiry() time.Duration
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetS3Bucket() string {
	return GetEnv("AWS_S3_BUCKET", "taskflow-attachments")
}

func (Storage) GetS3Region() string {
	return GetEnv("AWS_REGION", "us-east-1")
}

// GetS3Endpoint is empty for real AWS; set for MinIO or another
// S3-compatible store.
func (Storage) GetS3Endpoint() string {
	return GetEnv("AWS_S3_ENDPOINT", "")
}

func (Storage) GetS3AccessKeyID() string {
	return GetEnv("AWS_ACCESS_KEY_ID", "")
}

func (Storage) GetS3SecretAccessKey() string {
	return GetEnv("AWS_SECRET_ACCESS_KEY", "")
}

func (Storage) GetS3PublicURLBase() string {
	return GetEnv("AWS_S3_PUBLIC_URL", "")
}

func (Storage) GetPresignExpiry() time.Duration {
	return 15 * time.Minute
}
