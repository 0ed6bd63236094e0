package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// DefaultUploadTimeout bounds a single object upload
const DefaultUploadTimeout = 30 * time.Second

// ErrMissingBucket is returned when an upload is configured without a bucket
var ErrMissingBucket = errors.New("upload bucket not configured")

// UploadConfig holds the S3 destination for rendered images
type UploadConfig struct {
	Bucket    string
	Region    string
	Endpoint  string // Optional S3-compatible endpoint; enables path-style addressing
	AccessKey string // Static credentials; empty falls back to the default AWS chain
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders"
	ACL       string // Optional canned ACL such as "public-read"
	Timeout   time.Duration
}

// Uploader publishes rendered images to an S3 bucket
type Uploader struct {
	client s3iface.S3API
	config UploadConfig
}

// NewUploader creates an uploader backed by a new AWS session
func NewUploader(config UploadConfig) (*Uploader, error) {
	if config.Bucket == "" {
		return nil, ErrMissingBucket
	}

	awsConfig := &aws.Config{}
	if config.Region != "" {
		awsConfig.Region = aws.String(config.Region)
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	if config.AccessKey != "" || config.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("create S3 session: %w", err)
	}
	return NewUploaderWithClient(s3.New(sess), config), nil
}

// NewUploaderWithClient creates an uploader around an existing S3 client
func NewUploaderWithClient(client s3iface.S3API, config UploadConfig) *Uploader {
	if config.Timeout <= 0 {
		config.Timeout = DefaultUploadTimeout
	}
	return &Uploader{client: client, config: config}
}

// Key returns the object key for a local file name
func (u *Uploader) Key(name string) string {
	base := filepath.Base(name)
	if u.config.Prefix == "" {
		return base
	}
	return path.Join(u.config.Prefix, base)
}

// Upload stores data under key and returns the s3:// location
func (u *Uploader) Upload(ctx context.Context, key string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.config.Timeout)
	defer cancel()

	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(ContentType(key)),
	}
	if u.config.ACL != "" {
		input.ACL = aws.String(u.config.ACL)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.config.Bucket, key), nil
}

// UploadImage encodes img in the format implied by name and uploads it
func (u *Uploader) UploadImage(ctx context.Context, name string, img image.Image) (string, error) {
	data, err := Encode(name, img)
	if err != nil {
		return "", err
	}
	return u.Upload(ctx, u.Key(name), data)
}

// ContentType maps an object key's extension to its MIME type
func ContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".bmp":
		return "image/bmp"
	case ppmExt:
		return "image/x-portable-pixmap"
	default:
		return "application/octet-stream"
	}
}
