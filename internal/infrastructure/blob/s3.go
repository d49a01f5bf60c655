// Package blob stores uploaded photos in S3 (or a MinIO endpoint for local
// development).
package blob

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Config captures the settings for the S3 blob store.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	Endpoint        string // set for MinIO; empty for AWS
	DisableSSL      bool
}

// S3Store implements ports.BlobStore on an S3-compatible bucket.
type S3Store struct {
	client *s3.S3
	bucket string
}

func NewS3Store(cfg Config) (*S3Store, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.DisableSSL {
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("aws session: %w", err)
	}

	return &S3Store{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Upload writes the object and returns its public URL.
func (s *S3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.objectURL(key), nil
}

// Delete removes the object the URL points at. URLs from other buckets are
// rejected rather than silently ignored.
func (s *S3Store) Delete(ctx context.Context, rawURL string) error {
	key, err := s.keyFromURL(rawURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	endpoint := aws.StringValue(s.client.Config.Endpoint)
	if endpoint != "" && !strings.Contains(endpoint, "amazonaws.com") {
		protocol := "https"
		if s.client.Config.DisableSSL != nil && *s.client.Config.DisableSSL {
			protocol = "http"
		}
		endpoint = strings.TrimPrefix(endpoint, "http://")
		endpoint = strings.TrimPrefix(endpoint, "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, endpoint, s.bucket, key)
	}

	region := aws.StringValue(s.client.Config.Region)
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, region, key)
}

func (s *S3Store) keyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse blob url %q: %w", rawURL, err)
	}
	path := strings.TrimPrefix(u.Path, "/")

	// Path-style URLs carry the bucket as the first segment.
	if rest, ok := strings.CutPrefix(path, s.bucket+"/"); ok {
		return rest, nil
	}
	if strings.HasPrefix(u.Host, s.bucket+".") {
		return path, nil
	}
	return "", fmt.Errorf("blob url %q does not belong to bucket %s", rawURL, s.bucket)
}
