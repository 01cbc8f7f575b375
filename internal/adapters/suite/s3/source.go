package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/olusolaa/api-contract-oracle/internal/adapters/ratelimit"
	"github.com/olusolaa/api-contract-oracle/internal/adapters/suite"
	"github.com/olusolaa/api-contract-oracle/internal/core/domain"
	"github.com/olusolaa/api-contract-oracle/internal/core/ports"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
)

const Scheme = "s3"

//go:generate mockery --name ObjectGetter --output ../../../../mocks --outpkg mocks --case underscore
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Config struct {
	Region string
	RPS    int
}

// Source reads suites stored as S3 objects.
type Source struct {
	client  ObjectGetter
	limiter *ratelimit.Limiter
	logger  ports.Logger
}

type Option func(*Source)

func WithClient(client ObjectGetter) Option {
	return func(s *Source) {
		if client != nil {
			s.client = client
		}
	}
}

func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(s *Source) {
		if limiter != nil {
			s.limiter = limiter
		}
	}
}

// NewSource builds an S3 client from the default AWS credential chain unless
// one is injected.
func NewSource(ctx context.Context, cfg Config, logger ports.Logger, opts ...Option) (*Source, error) {
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil for S3 suite source")
	}
	s := &Source{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = ratelimit.New(cfg.RPS, logger)
	}
	if s.client == nil {
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to load default AWS config")
		}
		s.client = s3.NewFromConfig(awsCfg)
	}
	return s, nil
}

func (s *Source) Scheme() string {
	return Scheme
}

func (s *Source) Load(ctx context.Context, location string) (domain.Suite, error) {
	bucket, key, err := ParseLocation(location)
	if err != nil {
		return domain.Suite{}, err
	}
	if !suite.IsSuiteFile(key) {
		return domain.Suite{}, errors.NewUserFacing(errors.CodeSuiteReadError,
			fmt.Sprintf("unsupported suite object %s", location), "Use a .yaml, .yml or .json suite object.")
	}

	if err := s.limiter.Wait(ctx, s.logger); err != nil {
		return domain.Suite{}, errors.Wrap(err, errors.CodeTimeout, "rate limiter wait aborted")
	}

	s.logger.Debugf(ctx, "Fetching suite object: %s", location)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return domain.Suite{}, classifyError(ctx, bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return domain.Suite{}, classifyError(ctx, bucket, key, err)
	}

	st, err := suite.Decode(ctx, data, location)
	if err != nil {
		return domain.Suite{}, err
	}
	s.logger.Infof(ctx, "Loaded %d cases from %s", len(st.Cases), location)
	return st, nil
}

// ParseLocation splits s3://bucket/key.
func ParseLocation(location string) (string, string, error) {
	rest, ok := strings.CutPrefix(location, Scheme+"://")
	if !ok {
		return "", "", errors.Newf(errors.CodeSuiteReadError, "not an S3 location: %s", location)
	}
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", errors.NewUserFacing(errors.CodeSuiteReadError,
			fmt.Sprintf("invalid S3 location %s", location), "Use the form s3://bucket/key.yaml.")
	}
	return bucket, key, nil
}
