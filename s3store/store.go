// Package s3store lists gallery images from an S3 bucket.
package s3store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sagarc03/showroom"
)

// Store implements showroom.ImageStore over ListObjectsV2.
type Store struct {
	client s3.ListObjectsV2APIClient
	bucket string
	region string
}

// New creates a Store. region is only used to render object URLs.
func New(client s3.ListObjectsV2APIClient, bucket, region string) *Store {
	return &Store{client: client, bucket: bucket, region: region}
}

// Options configures the S3 client built by NewFromConfig.
type Options struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the S3 endpoint (LocalStack, MinIO).
	Endpoint     string
	UsePathStyle bool
}

// NewFromConfig builds an S3 client from the default credential chain, or
// from static credentials when both keys are set.
func NewFromConfig(ctx context.Context, opts Options) (*Store, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})

	return New(client, opts.Bucket, opts.Region), nil
}

// List returns the public URL of every object under prefix, in the order S3
// returns them. Continuation tokens are followed until the listing ends.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})

	urls := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range page.Contents {
			urls = append(urls, showroom.ObjectURL(s.bucket, s.region, aws.ToString(obj.Key)))
		}
	}

	return urls, nil
}
