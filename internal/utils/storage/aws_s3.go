package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"pantrypal/internal/utils"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"image/jpeg", "image/jpg", "image/png", "image/webp"}

var (
	ErrNotConfigured   = errors.New("object storage is not configured")
	ErrFileNotAllowed  = errors.New("file type not allowed")
	ErrEmptyObjectKey  = errors.New("empty object key")
	errMissingFileInfo = errors.New("missing file")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error)
		UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	S3Config struct {
		Bucket    string
		Region    string
		AccessKey string
		SecretKey string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func LoadS3Config() S3Config {
	return S3Config{
		Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		Region:    utils.GetConfig("AWS_S3_REGION"),
		AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
		SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
	}
}

func NewAwsS3(ctx context.Context, cfg S3Config) (AwsS3, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &awsS3{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

func (a *awsS3) UploadFile(ctx context.Context, fileName string, file *multipart.FileHeader, folder string, allowed ...string) (string, error) {
	if file == nil {
		return "", errMissingFileInfo
	}
	objectKey := strings.Trim(folder, "/") + "/" + fileName + strings.ToLower(filepath.Ext(file.Filename))
	return a.put(ctx, objectKey, file, allowed)
}

func (a *awsS3) UpdateFile(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed ...string) (string, error) {
	if objectKey == "" {
		return "", ErrEmptyObjectKey
	}
	return a.put(ctx, objectKey, file, allowed)
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return ErrEmptyObjectKey
	}
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (a *awsS3) GetPublicLinkKey(objectKey string) string {
	return PublicLink(a.bucket, a.region, objectKey)
}

func (a *awsS3) GetObjectKeyFromLink(link string) string {
	return ObjectKeyFromLink(a.bucket, a.region, link)
}

func (a *awsS3) put(ctx context.Context, objectKey string, file *multipart.FileHeader, allowed []string) (string, error) {
	if file == nil {
		return "", errMissingFileInfo
	}
	contentType := file.Header.Get("Content-Type")
	if len(allowed) > 0 && !slices.Contains(allowed, contentType) {
		return "", ErrFileNotAllowed
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", err
	}
	return objectKey, nil
}

func PublicLink(bucket, region, objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, objectKey)
}

// ObjectKeyFromLink returns "" when link does not point into the bucket.
func ObjectKeyFromLink(bucket, region, link string) string {
	prefix := PublicLink(bucket, region, "")
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
