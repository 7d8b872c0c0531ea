package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	applog "github.com/teefour-ai/teefour-api/internal/platform/logging"
)

// S3Config selects the bucket and how to reach it. Endpoint is only needed
// for S3-compatible services such as MinIO. Without static credentials the
// default AWS credential chain is used.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// S3Bucket stores objects in S3 or an S3-compatible service.
type S3Bucket struct {
	bucket string
	client *s3.Client
}

// NewS3Bucket builds an S3 client from cfg. With an empty bucket name the
// returned bucket is disabled and every call fails with ErrDisabled.
func NewS3Bucket(ctx context.Context, cfg S3Config) (*S3Bucket, error) {
	b := &S3Bucket{bucket: strings.TrimSpace(cfg.Bucket)}
	if b.bucket == "" {
		applog.LogWarn(ctx, "S3_BUCKET is not set; document uploads are disabled")
		return b, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	b.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	applog.LogInfo(ctx, "object storage configured",
		zap.String("bucket", b.bucket), zap.String("endpoint", cfg.Endpoint))
	return b, nil
}

// Enabled reports whether a backend is configured.
func (b *S3Bucket) Enabled() bool {
	return b.client != nil
}

func (b *S3Bucket) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if !b.Enabled() {
		return ErrDisabled
	}
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (b *S3Bucket) Get(ctx context.Context, key string) ([]byte, error) {
	if !b.Enabled() {
		return nil, ErrDisabled
	}
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

func (b *S3Bucket) Delete(ctx context.Context, key string) error {
	if !b.Enabled() {
		return ErrDisabled
	}
	_, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket is reachable. A disabled bucket is healthy.
func (b *S3Bucket) Ping(ctx context.Context) error {
	if !b.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := b.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(b.bucket)})
	return err
}

var _ Bucket = (*S3Bucket)(nil)
