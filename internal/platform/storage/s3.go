package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/leasedesk/rental-portal/internal/platform/config"
)

// S3Storage serves photos from an S3 bucket.
type S3Storage struct {
	client  s3.ListObjectsV2APIClient
	bucket  string
	baseURL string
}

// NewS3 wraps an S3 list client. An empty baseURL falls back to the
// bucket's virtual-hosted URL.
func NewS3(client s3.ListObjectsV2APIClient, bucket, region, baseURL string) *S3Storage {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Storage{client: client, bucket: bucket, baseURL: baseURL}
}

// NewS3FromConfig loads AWS credentials the default way and builds the storage.
func NewS3FromConfig(ctx context.Context, cfg config.Config) (*S3Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.AWSRegion)}
	if cfg.AWSProfile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.AWSProfile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config for s3: %w", err)
	}
	return NewS3(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.AWSRegion, cfg.S3PublicBaseURL), nil
}

func (s *S3Storage) Files(ctx context.Context, dir string) ([]string, error) {
	prefix := strings.Trim(dir, "/") + "/"
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var files []string
	var prefixes int
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3://%s/%s: %w", s.bucket, prefix, err)
		}
		prefixes += len(page.CommonPrefixes)
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				continue
			}
			files = append(files, key)
		}
	}
	if len(files) == 0 && prefixes == 0 {
		return nil, ErrFolderNotFound
	}
	return files, nil
}

func (s *S3Storage) URL(p string) string {
	return joinURL(s.baseURL, p)
}
