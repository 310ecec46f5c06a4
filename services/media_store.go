package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/bsd-portfolio/config"
	"github.com/rpupo63/bsd-portfolio/errs"
	"github.com/rs/zerolog/log"
)

// ObjectStorage is the subset of the S3 client used for media
type ObjectStorage interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// MediaStore keeps uploaded files in an S3 compatible bucket
type MediaStore struct {
	client        ObjectStorage
	bucket        string
	publicBaseURL string
	now           func() time.Time
}

// NewMediaStore builds a store from S3_BUCKET, S3_REGION, S3_ENDPOINT and MEDIA_PUBLIC_BASE_URL.
// S3_ENDPOINT is only needed for non-AWS providers (R2, MinIO, Supabase storage).
func NewMediaStore(ctx context.Context, cfg map[string]string) (*MediaStore, error) {
	bucket := config.GetString(cfg, "S3_BUCKET", "")
	if bucket == "" {
		return nil, errs.NewEnvironmentVariableError("S3_BUCKET")
	}
	region := config.GetString(cfg, "S3_REGION", "us-east-1")
	endpoint := config.GetString(cfg, "S3_ENDPOINT", "")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errs.NewConfigError("aws", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	publicBaseURL := config.GetString(cfg, "MEDIA_PUBLIC_BASE_URL", "")
	if publicBaseURL == "" {
		if endpoint != "" {
			publicBaseURL = fmt.Sprintf("%s/%s", strings.TrimSuffix(endpoint, "/"), bucket)
		} else {
			publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}

	log.Info().Str("bucket", bucket).Str("region", region).Msg("Media storage configured")
	return NewMediaStoreWithClient(client, bucket, publicBaseURL), nil
}

// NewMediaStoreWithClient wires a store around an existing client
func NewMediaStoreWithClient(client ObjectStorage, bucket, publicBaseURL string) *MediaStore {
	return &MediaStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// StoredObject describes a file written to the bucket
type StoredObject struct {
	Key string
	URL string
}

// Put uploads body under a fresh key derived from filename
func (s *MediaStore) Put(ctx context.Context, filename, contentType string, body io.Reader, size int64) (StoredObject, error) {
	key := s.objectKey(filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return StoredObject{}, errs.NewStorageUploadError(key, err)
	}

	return StoredObject{Key: key, URL: s.URLFor(key)}, nil
}

// Delete removes an object; a missing object is not an error for S3
func (s *MediaStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errs.NewServiceUnreachableError("object storage", err)
	}
	return nil
}

// URLFor returns the public URL of a stored key
func (s *MediaStore) URLFor(key string) string {
	return s.publicBaseURL + "/" + key
}

// objectKey builds media/<yyyy>/<mm>/<uuid><ext>, keeping only a lower-cased extension of the client's filename
func (s *MediaStore) objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 10 || strings.ContainsAny(ext, " ?#%") {
		ext = ""
	}
	now := s.now().UTC()
	return fmt.Sprintf("media/%04d/%02d/%s%s", now.Year(), int(now.Month()), uuid.NewString(), ext)
}
