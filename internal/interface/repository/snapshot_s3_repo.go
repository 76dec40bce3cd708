package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/pkg/logger"
)

// ObjectPutter is the part of the S3 client used for exports
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3-compatible snapshot bucket
type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Prefix    string
}

// S3SnapshotExporter writes each fusion result as a JSON object
type S3SnapshotExporter struct {
	client ObjectPutter
	bucket string
	prefix string
	logger logger.Logger
}

// NewS3Client creates an S3 client. A custom endpoint targets S3-compatible storage.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	if opts.Endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL:               opts.Endpoint,
					SigningRegion:     opts.Region,
					HostnameImmutable: true,
				}, nil
			},
		)
		loadOpts = append(loadOpts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// NewS3SnapshotExporter creates a new snapshot exporter
func NewS3SnapshotExporter(client ObjectPutter, bucket, prefix string, logger logger.Logger) repository.SnapshotExporter {
	return &S3SnapshotExporter{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// Export uploads the result under <prefix>/<runID>.json and returns the object location
func (e *S3SnapshotExporter) Export(ctx context.Context, result *entity.FusionResult) (string, error) {
	if result == nil || result.RunID == "" {
		return "", fmt.Errorf("%w: result without run id", entity.ErrMalformedInput)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	key := path.Join(e.prefix, result.RunID+".json")
	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload result: %w", err)
	}

	e.logger.Debug("Uploaded fusion result", "bucket", e.bucket, "key", key, "bytes", len(data))
	return fmt.Sprintf("s3://%s/%s", e.bucket, key), nil
}
