package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/careerkit/internal/common"
	"github.com/dmitrijs2005/careerkit/internal/server/config"
	"github.com/google/uuid"
)

// ResumeContentType is the only document type accepted for uploads.
const ResumeContentType = "application/pdf"

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// PresignedURL is a time-limited URL for one object.
type PresignedURL struct {
	Key       string
	URL       string
	ExpiresAt time.Time
}

// ResumeService hands out presigned S3 URLs for users' resume documents.
// Objects live under resumes/<user-id>/ and a user can only reach their own.
type ResumeService struct {
	config *config.Config
	now    func() time.Time
}

// NewResumeService constructs a ResumeService for the bucket in cfg.
func NewResumeService(cfg *config.Config) *ResumeService {
	return &ResumeService{config: cfg, now: time.Now}
}

func resumePrefix(userID string) string {
	return "resumes/" + userID + "/"
}

// NewResumeKey returns a fresh object key for userID.
func NewResumeKey(userID string) string {
	return fmt.Sprintf("%s%s.pdf", resumePrefix(userID), uuid.New())
}

func (s *ResumeService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// UploadURL returns a presigned PUT for a new resume of userID. An empty
// contentType defaults to PDF; anything else is rejected.
func (s *ResumeService) UploadURL(ctx context.Context, userID, contentType string) (*PresignedURL, error) {
	if contentType == "" {
		contentType = ResumeContentType
	}
	if contentType != ResumeContentType {
		return nil, fmt.Errorf("%w: unsupported content type %q", common.ErrorValidation, contentType)
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	key := NewResumeKey(userID)
	validity := s.config.ResumeURLValidityDuration

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, err
	}

	return &PresignedURL{Key: key, URL: req.URL, ExpiresAt: s.now().Add(validity)}, nil
}

// DownloadURL returns a presigned GET for key, which must belong to userID.
func (s *ResumeService) DownloadURL(ctx context.Context, userID, key string) (*PresignedURL, error) {
	if !strings.HasPrefix(key, resumePrefix(userID)) || strings.Contains(key, "..") {
		return nil, common.ErrorNotFound
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket
	validity := s.config.ResumeURLValidityDuration

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, err
	}

	return &PresignedURL{Key: key, URL: req.URL, ExpiresAt: s.now().Add(validity)}, nil
}
