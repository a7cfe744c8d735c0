package persistent

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/andreyxaxa/Photo-Gallery/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectRepo stores transformed images in a bucket that is served publicly
// under publicBaseURL.
type ObjectRepo struct {
	*s3client.S3Client
	bucket        string
	publicBaseURL string
}

func NewObjectRepo(s3c *s3client.S3Client, bucket, publicBaseURL string) *ObjectRepo {
	return &ObjectRepo{
		S3Client:      s3c,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (r *ObjectRepo) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return fmt.Errorf("ObjectRepo - Put - r.Client.PutObject: %w", err)
	}

	return nil
}

// Delete succeeds for keys that are already gone; S3 DeleteObject is idempotent.
func (r *ObjectRepo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ObjectRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}

func (r *ObjectRepo) PublicURL(key string) string {
	return r.publicBaseURL + "/" + key
}
