package output

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records PutObject calls
type fakeS3 struct {
	s3iface.S3API
	inputs      []*s3.PutObjectInput
	bodies      [][]byte
	hadDeadline bool
	err         error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	_, f.hadDeadline = ctx.Deadline()
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, input)
	f.bodies = append(f.bodies, body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestUploader_Upload(t *testing.T) {
	fake := &fakeS3{}
	uploader := NewUploaderWithClient(fake, UploadConfig{Bucket: "renders", ACL: "public-read"})

	location, err := uploader.Upload(context.Background(), "scenes/final.png", []byte("data"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if location != "s3://renders/scenes/final.png" {
		t.Errorf("Unexpected location %q", location)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("Expected 1 PutObject call, got %d", len(fake.inputs))
	}

	input := fake.inputs[0]
	if aws.StringValue(input.Bucket) != "renders" {
		t.Errorf("Unexpected bucket %q", aws.StringValue(input.Bucket))
	}
	if aws.StringValue(input.Key) != "scenes/final.png" {
		t.Errorf("Unexpected key %q", aws.StringValue(input.Key))
	}
	if aws.StringValue(input.ContentType) != "image/png" {
		t.Errorf("Unexpected content type %q", aws.StringValue(input.ContentType))
	}
	if aws.StringValue(input.ACL) != "public-read" {
		t.Errorf("Unexpected ACL %q", aws.StringValue(input.ACL))
	}
	if aws.Int64Value(input.ContentLength) != 4 || string(fake.bodies[0]) != "data" {
		t.Errorf("Unexpected body %q (length %d)", fake.bodies[0], aws.Int64Value(input.ContentLength))
	}
	if !fake.hadDeadline {
		t.Error("Upload should run with a timeout")
	}
}

func TestUploader_UploadError(t *testing.T) {
	sentinel := errors.New("access denied")
	uploader := NewUploaderWithClient(&fakeS3{err: sentinel}, UploadConfig{Bucket: "renders"})

	_, err := uploader.Upload(context.Background(), "a.ppm", []byte("P3"))
	if !errors.Is(err, sentinel) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestUploader_UploadImage(t *testing.T) {
	fake := &fakeS3{}
	uploader := NewUploaderWithClient(fake, UploadConfig{Bucket: "renders", Prefix: "rt", Timeout: time.Second})

	location, err := uploader.UploadImage(context.Background(), "output/final.ppm", TestPattern(3, 2))
	if err != nil {
		t.Fatalf("UploadImage: %v", err)
	}
	if location != "s3://renders/rt/final.ppm" {
		t.Errorf("Unexpected location %q", location)
	}
	if aws.StringValue(fake.inputs[0].ContentType) != "image/x-portable-pixmap" {
		t.Errorf("Unexpected content type %q", aws.StringValue(fake.inputs[0].ContentType))
	}
	if string(fake.bodies[0][:2]) != "P3" {
		t.Errorf("Expected PPM body, got %q", fake.bodies[0])
	}
}

func TestNewUploader_RequiresBucket(t *testing.T) {
	if _, err := NewUploader(UploadConfig{}); !errors.Is(err, ErrMissingBucket) {
		t.Errorf("Expected ErrMissingBucket, got %v", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.png":   "image/png",
		"a.JPG":   "image/jpeg",
		"a.jpeg":  "image/jpeg",
		"a.gif":   "image/gif",
		"a.tiff":  "image/tiff",
		"a.bmp":   "image/bmp",
		"a.ppm":   "image/x-portable-pixmap",
		"a.bin":   "application/octet-stream",
		"noext":   "application/octet-stream",
		"d/e.tif": "image/tiff",
	}
	for key, want := range tests {
		if got := ContentType(key); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", key, got, want)
		}
	}
}
