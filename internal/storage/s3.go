package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Service stores avatars in Amazon S3 (or compatible APIs).
type S3Service struct {
	client   *s3.Client
	uploader *manager.Uploader
}

func NewS3Service(client *s3.Client) *S3Service {
	return &S3Service{
		client:   client,
		uploader: manager.NewUploader(client),
	}
}

// UploadAvatar writes the attachment under a fresh key and returns its
// public URL. The original filename only contributes its extension.
func (s *S3Service) UploadAvatar(ctx context.Context, body io.Reader, filename string, opts UploadOptions) (string, error) {
	if opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	key := avatarKey(opts.KeyPrefix, filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(opts.Bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    types.ObjectCannedACLPublicRead,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}

	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	return publicURL(key, opts), nil
}

// DeleteByURL removes a previously uploaded avatar. URLs that do not
// resolve to an object in the configured bucket are ignored.
func (s *S3Service) DeleteByURL(ctx context.Context, rawURL string, opts UploadOptions) error {
	key, ok := keyFromURL(rawURL, opts)
	if !ok {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete avatar: %w", err)
	}
	return nil
}

var _ Service = (*S3Service)(nil)

func avatarKey(prefix, filename string) string {
	key := uuid.NewString()
	if ext := strings.ToLower(path.Ext(filename)); ext != "" {
		key += ext
	}
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

func publicURL(key string, opts UploadOptions) string {
	if base := strings.TrimSuffix(opts.PublicBaseURL, "/"); base != "" {
		return base + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", opts.Bucket, opts.Region, key)
}

func keyFromURL(rawURL string, opts UploadOptions) (string, bool) {
	base := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
	}
	if !strings.HasPrefix(rawURL, base+"/") {
		return "", false
	}
	key := strings.TrimPrefix(rawURL, base+"/")
	if key == "" {
		return "", false
	}
	return key, true
}
