package s3client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const (
	_defaultConnAttempts = 10
	_defaultConnTimeout  = time.Second
	_defaultRegion       = "us-east-1"
)

type S3Client struct {
	connAttempts int
	connTimeout  time.Duration

	endpoint     string
	region       string
	accessKey    string
	secretKey    string
	usePathStyle bool
	createBucket bool

	Bucket string
	Client *s3.Client
}

func New(ctx context.Context, endpoint, accessKey, secretKey, bucket string, opts ...Option) (*S3Client, error) {
	s3c := &S3Client{
		connAttempts: _defaultConnAttempts,
		connTimeout:  _defaultConnTimeout,
		region:       _defaultRegion,
		endpoint:     endpoint,
		accessKey:    accessKey,
		secretKey:    secretKey,
		usePathStyle: true,
		Bucket:       bucket,
	}

	for _, opt := range opts {
		opt(s3c)
	}

	if s3c.Bucket == "" {
		return nil, fmt.Errorf("S3Client - New - bucket is required")
	}

	var err error
	for s3c.connAttempts > 0 {
		err = s3c.connect(ctx)
		if err == nil {
			break
		}

		log.Printf("S3 is trying to connect, attempts left: %d", s3c.connAttempts)

		time.Sleep(s3c.connTimeout)

		s3c.connAttempts--
	}

	if err != nil {
		return nil, fmt.Errorf("S3Client - New - connAttempts == 0: %w", err)
	}

	return s3c, nil
}

func (s *S3Client) connect(ctx context.Context) error {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(s.region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(s.accessKey, s.secretKey, ""),
		),
	)
	if err != nil {
		return fmt.Errorf("S3Client - config.LoadDefaultConfig: %w", err)
	}

	s.Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = s.usePathStyle
		if s.endpoint != "" {
			o.BaseEndpoint = aws.String(s.endpoint)
		}
	})

	// check connection + bucket
	_, err = s.Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.Bucket)})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	if !errors.As(err, &notFound) || !s.createBucket {
		return fmt.Errorf("S3Client - s.Client.HeadBucket: %w", err)
	}

	_, err = s.Client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.Bucket)})
	if err != nil {
		return fmt.Errorf("S3Client - s.Client.CreateBucket: %w", err)
	}

	return nil
}
