package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Provider represents the S3-compatible storage provider
type S3Provider string

const (
	S3ProviderAWS    S3Provider = "aws"
	S3ProviderWasabi S3Provider = "wasabi"
)

// S3Config holds configuration for S3-compatible storage
type S3Config struct {
	Provider        S3Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Wasabi-specific settings
	WasabiEndpoint string // e.g., "s3.ap-southeast-1.wasabisys.com"
}

// WasabiEndpoints maps regions to Wasabi endpoints
var WasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

const defaultWasabiEndpoint = "s3.ap-southeast-1.wasabisys.com"

// S3ConfigFromEnv reads the archive settings. Bucket is empty when archiving
// is not configured.
func S3ConfigFromEnv() S3Config {
	provider := S3ProviderAWS
	if os.Getenv("S3_PROVIDER") == string(S3ProviderWasabi) {
		provider = S3ProviderWasabi
	}

	cfg := S3Config{
		Provider:        provider,
		AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		Region:          os.Getenv("S3_REGION"),
		Bucket:          os.Getenv("CV_ARCHIVE_BUCKET"),
	}

	if provider == S3ProviderWasabi {
		cfg.WasabiEndpoint = wasabiEndpoint(os.Getenv("WASABI_ENDPOINT"), cfg.Region)
	}
	return cfg
}

func wasabiEndpoint(override, region string) string {
	if override != "" {
		return override
	}
	if endpoint, ok := WasabiEndpoints[region]; ok {
		return endpoint
	}
	return defaultWasabiEndpoint
}

// Enabled reports whether a bucket is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// putObjectAPI is the slice of *s3.Client the archive uses.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archive stores raw CV uploads in a bucket.
type S3Archive struct {
	client putObjectAPI
	bucket string
}

// NewS3Archive creates an archive backed by AWS S3 or Wasabi.
func NewS3Archive(ctx context.Context, cfg S3Config) (*S3Archive, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("s3 archive: bucket not configured")
	}
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &S3Archive{client: client, bucket: cfg.Bucket}, nil
}

// NewS3Client creates an S3 client with the given config
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	switch cfg.Provider {
	case S3ProviderWasabi:
		// Wasabi requires custom endpoint and path-style addressing
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.WasabiEndpoint)
			o.UsePathStyle = true
		}), nil
	default:
		return s3.NewFromConfig(awsCfg), nil
	}
}

// Store uploads body under key. Non-seekable bodies are buffered so the
// request can be signed and retried.
func (a *S3Archive) Store(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	seeker, ok := body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("s3 archive: read %s: %w", key, err)
		}
		seeker = bytes.NewReader(data)
		size = int64(len(data))
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        seeker,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := a.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 archive: put %s: %w", key, err)
	}
	return nil
}
