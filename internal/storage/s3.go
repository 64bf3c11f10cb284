package storage

import (
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3FileStorage keeps uploads in an S3 (or S3-compatible) bucket.
type S3FileStorage struct {
	bucket string
	client *s3.Client
}

// NewS3FileStorage builds an S3-backed storage. endpoint may be empty for
// AWS itself or point at a compatible service (MinIO etc.).
func NewS3FileStorage(bucket, region, endpoint, accessKey, secretKey string) (*S3FileStorage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(opt *s3.Options) {
		if endpoint != "" {
			opt.BaseEndpoint = aws.String(endpoint)
			opt.UsePathStyle = true
		}
	})

	return &S3FileStorage{
		bucket: bucket,
		client: client,
	}, nil
}

func (fs *S3FileStorage) SaveByKey(src io.Reader, key, name, contentType string) error {
	_, err := fs.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(fs.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	return err
}

func (fs *S3FileStorage) OpenFileByKey(key string) (io.ReadCloser, error) {
	out, err := fs.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return out.Body, nil
}

func (fs *S3FileStorage) DeleteByKey(key string) error {
	_, err := fs.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(fs.bucket),
		Key:    aws.String(key),
	})
	return err
}
