package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/rentlyapp/rently/internal/common"
	"github.com/rentlyapp/rently/internal/logging"
	sc "github.com/rentlyapp/rently/internal/server/config"
)

// maxPhotoSize caps by-link downloads and multipart parts.
const maxPhotoSize = 20 << 20

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	httpGet = http.Get
)

// PhotoService ingests accommodation photos into S3-compatible object
// storage and hands out presigned GET URLs for reading them back.
type PhotoService struct {
	config *sc.Config
	logger logging.Logger
}

func NewPhotoService(config *sc.Config, l logging.Logger) *PhotoService {
	return &PhotoService{
		config: config,
		logger: l.With("module", "photo_service"),
	}
}

// GetRandomStorageKey produces a date-partitioned object key for a new photo.
func GetRandomStorageKey(ext string) string {
	d := time.Now()
	return fmt.Sprintf("photos/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *PhotoService) getClient() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Store writes one photo from r into the bucket and returns its storage key.
// filename is only used for its extension.
func (s *PhotoService) Store(ctx context.Context, r io.Reader, filename string) (string, error) {
	client, err := s.getClient()
	if err != nil {
		s.logger.Error(ctx, "s3 client init failed", "error", err)
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey(path.Ext(filename))

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   io.LimitReader(r, maxPhotoSize),
	})
	if err != nil {
		s.logger.Error(ctx, "photo upload failed", "error", err)
		return "", common.ErrorInternal
	}

	return key, nil
}

// StoreFromLink downloads the image behind link and stores it like Store.
func (s *PhotoService) StoreFromLink(ctx context.Context, link string) (string, error) {
	if !strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://") {
		return "", common.ErrValidation
	}

	resp, err := httpGet(link)
	if err != nil {
		s.logger.Error(ctx, "photo download failed", "link", link, "error", err)
		return "", common.ErrorInternal
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error(ctx, "photo download failed", "link", link, "status", resp.StatusCode)
		return "", common.ErrorInternal
	}

	ext := path.Ext(link)
	if ext == "" {
		ext = ".jpg"
	}

	return s.Store(ctx, resp.Body, "photo"+ext)
}

// PresignedGetURL returns a short-lived URL for reading a stored photo.
func (s *PhotoService) PresignedGetURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", common.ErrValidation
	}

	client, err := s.getClient()
	if err != nil {
		s.logger.Error(ctx, "s3 client init failed", "error", err)
		return "", common.ErrorInternal
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.logger.Error(ctx, "photo presign failed", "key", key, "error", err)
		return "", common.ErrorInternal
	}

	return req.URL, nil
}
