package persistent

import (
	"bytes"
	"context"
	"fmt"

	"github.com/andreyxaxa/hr-outbox/pkg/s3client"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type EventArchiveRepo struct {
	*s3client.S3Client
}

func NewEventArchiveRepo(s3c *s3client.S3Client) *EventArchiveRepo {
	return &EventArchiveRepo{s3c}
}

// Put перезаписывает объект по key, поэтому повторная доставка того же события безопасна.
func (r *EventArchiveRepo) Put(ctx context.Context, key string, data []byte) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("EventArchiveRepo - Put - r.Client.PutObject: %w", err)
	}

	return nil
}
