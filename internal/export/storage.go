package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/joan-ouma/nutrifit-sub000/internal/calendar"
	"github.com/joan-ouma/nutrifit-sub000/internal/model"
)

var (
	ErrDisabled    = errors.New("export storage not configured")
	ErrInvalidName = errors.New("invalid export name")
)

// s3Client is an interface for testability.
type s3Client interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, input *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config holds S3-compatible storage configuration.
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
}

func (c S3Config) complete() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// Object describes an uploaded export.
type Object struct {
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Store uploads CSV exports under a per-user prefix.
type Store struct {
	cfg    S3Config
	client s3Client
	now    func() time.Time
}

// NewStore returns a Store. Without a bucket and credentials it is disabled
// and every call returns ErrDisabled.
func NewStore(cfg S3Config) *Store {
	st := &Store{cfg: cfg, now: time.Now}
	if cfg.complete() {
		st.client = newS3Client(cfg)
	}
	return st
}

func newS3Client(cfg S3Config) *s3.Client {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	opts := s3.Options{
		Region:       region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts)
}

func (s *Store) Enabled() bool {
	return s.client != nil
}

func (s *Store) userPrefix(userID int64) string {
	return fmt.Sprintf("%s%d/", s.cfg.Prefix, userID)
}

// UploadMeals renders meals as CSV and uploads them. The object name embeds
// the date range and a random suffix so repeated exports never collide.
func (s *Store) UploadMeals(ctx context.Context, userID int64, from, to calendar.Date, meals []model.Meal) (*Object, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}

	var buf bytes.Buffer
	if err := WriteMealsCSV(&buf, meals); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("meals-%s-%s-%s.csv", from, to, uuid.NewString())
	key := s.userPrefix(userID) + name
	size := int64(buf.Len())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String("text/csv"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload to s3: %w", err)
	}

	return &Object{
		Key:       key,
		Name:      name,
		Rows:      len(meals),
		SizeBytes: size,
		CreatedAt: s.now().UTC(),
	}, nil
}

// Open streams one of the user's exports back by name.
func (s *Store) Open(ctx context.Context, userID int64, name string) (io.ReadCloser, error) {
	if s.client == nil {
		return nil, ErrDisabled
	}
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || !strings.HasSuffix(name, ".csv") {
		return nil, ErrInvalidName
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(s.userPrefix(userID) + name),
	})
	if err != nil {
		return nil, fmt.Errorf("download from s3: %w", err)
	}
	return result.Body, nil
}
