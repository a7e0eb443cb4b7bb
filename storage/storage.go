// Package storage provides the object-storage client used for task
// attachment uploads. Files are never proxied through the API server;
// clients upload directly to the bucket using presigned URLs.
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/jrsteele09/taskflow-server/internal/config"
)

// ObjectStore issues presigned upload URLs and resolves public object URLs.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PublicURL(key string) string
}

// S3Store implements ObjectStore against an S3-compatible endpoint.
type S3Store struct {
	presignClient *s3.PresignClient
	bucket        string
	publicURLBase string
	presignExpiry time.Duration
}

// NewS3Store builds the S3 client from configuration. A custom endpoint
// (MinIO, localstack) is used when configured; path-style addressing is
// forced in that case.
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	loadOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.GetS3Region()),
	}
	if cfg.GetS3AccessKeyID() != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.GetS3AccessKeyID(), cfg.GetS3SecretAccessKey(), ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, errors.Wrap(err, "[storage.NewS3Store] LoadDefaultConfig")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint := cfg.GetS3Endpoint(); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.GetS3Bucket(),
		publicURLBase: strings.TrimSuffix(cfg.GetS3PublicURLBase(), "/"),
		presignExpiry: cfg.GetPresignExpiry(),
	}, nil
}

func (s *S3Store) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	request, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.presignExpiry))
	if err != nil {
		return "", errors.Wrap(err, "[storage.S3Store.PresignUpload]")
	}
	return request.URL, nil
}

func (s *S3Store) PublicURL(key string) string {
	if s.publicURLBase == "" {
		return ""
	}
	return s.publicURLBase + "/" + key
}
