package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/VitalCareServices/clinic-scheduler/internal/config"
)

// AttachmentStore keeps medical-record attachments in an S3 bucket.
// Object keys are opaque; the database row maps them back to records.
type AttachmentStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

func NewAttachmentStore(cfg *config.Config) *AttachmentStore {
	if !cfg.S3Enabled() {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &AttachmentStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.S3Bucket,
	}
}

func (s *AttachmentStore) Upload(
	ctx context.Context,
	recordID uint,
	fileName string,
	contentType string,
	body io.Reader,
) (string, error) {

	key := fmt.Sprintf("records/%d/%s-%s", recordID, uuid.NewString(), fileName)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return key, nil
}

func (s *AttachmentStore) PresignDownload(
	ctx context.Context,
	key string,
) (string, error) {

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
