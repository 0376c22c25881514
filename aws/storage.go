package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage is the slice of the S3 API the handlers actually use. *s3.Client
// satisfies it; tests substitute an in-memory fake. Embedding the manager's
// client interface keeps the multipart uploader usable with either.
type Storage interface {
	manager.UploadAPIClient

	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ Storage = (*s3.Client)(nil)
