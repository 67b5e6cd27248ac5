package baseline

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/arthur-debert/sfdelta/pkg/errors"
	"github.com/arthur-debert/sfdelta/pkg/logging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// S3Config locates the bucket markers are stored in
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Source reads markers from objects named <prefix>/<key>
type S3Source struct {
	client *minio.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3 creates the client. No request is made until Lookup.
func NewS3(cfg S3Config) (*S3Source, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New(errors.ErrConfiguration, "s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.New(errors.ErrConfiguration, "s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New(errors.ErrConfiguration, "s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfiguration, "cannot create s3 client")
	}

	return &S3Source{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(cfg.Prefix), "/"),
		logger: logging.GetLogger("baseline.s3"),
	}, nil
}

// ObjectKey returns the object name holding key
func (s *S3Source) ObjectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}

func (s *S3Source) Lookup(ctx context.Context, key string) (string, bool, error) {
	object := s.ObjectKey(key)
	s.logger.Debug().Str("bucket", s.bucket).Str("object", object).Msg("Fetching baseline")

	obj, err := s.client.GetObject(ctx, s.bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return s.lookupError(err, object)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return s.lookupError(err, object)
	}
	return strings.TrimSpace(string(data)), true, nil
}

func (s *S3Source) lookupError(err error, object string) (string, bool, error) {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		s.logger.Debug().Str("object", object).Msg("Baseline object not found")
		return "", false, nil
	}
	return "", false, errors.Wrapf(err, errors.ErrBaselineLookup, "cannot read s3://%s/%s", s.bucket, object).
		WithDetail("bucket", s.bucket).
		WithDetail("object", object)
}
