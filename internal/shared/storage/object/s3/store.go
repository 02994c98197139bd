package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-studio/internal/shared/storage/object"
)

// Options configures the export bucket.
type Options struct {
	Region string
	Bucket string
	// Prefix is prepended to every key, e.g. "resume-studio/prod".
	Prefix string
	// KMSKeyID switches server-side encryption from AES256 to aws:kms.
	KMSKeyID string
	// Endpoint targets an S3-compatible service such as MinIO. Path-style addressing is used when set.
	Endpoint string
}

// api is the subset of the S3 client the store calls.
type api interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store keeps exported PDFs in S3.
type Store struct {
	client api
	opts   Options
}

// New loads the default AWS credential chain and returns a bucket-backed store.
func New(ctx context.Context, opts Options) (*Store, error) {
	opts = opts.normalized()
	if opts.Bucket == "" {
		return nil, errors.New("s3: bucket is required")
	}

	var loaders []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("s3: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newStore(client, opts), nil
}

func newStore(client api, opts Options) *Store {
	return &Store{client: client, opts: opts.normalized()}
}

func (o Options) normalized() Options {
	o.Region = strings.TrimSpace(o.Region)
	o.Bucket = strings.TrimSpace(o.Bucket)
	o.Prefix = strings.Trim(strings.TrimSpace(o.Prefix), "/")
	o.KMSKeyID = strings.TrimSpace(o.KMSKeyID)
	o.Endpoint = strings.TrimRight(strings.TrimSpace(o.Endpoint), "/")
	return o
}

// objectKey joins the configured prefix and key without doubled or leading slashes.
func (s *Store) objectKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.opts.Prefix == "" {
		return key
	}
	return path.Join(s.opts.Prefix, key)
}

// Put uploads the PDF body. Every object is encrypted at rest.
func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}
	body := &sizeReader{r: r}
	in := &s3.PutObjectInput{
		Bucket:               aws.String(s.opts.Bucket),
		Key:                  aws.String(s.objectKey(key)),
		Body:                 body,
		ContentType:          aws.String(contentType),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	}
	if s.opts.KMSKeyID != "" {
		in.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		in.SSEKMSKeyId = aws.String(s.opts.KMSKeyID)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return object.Object{}, fmt.Errorf("s3: put %s/%s: %w", s.opts.Bucket, *in.Key, err)
	}
	return object.Object{Key: key, SizeBytes: body.n, ContentType: contentType}, nil
}

// Open streams the object body. Missing keys report object.ErrNotFound.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := s.objectKey(key)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		var missing *s3types.NoSuchKey
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %s", object.ErrNotFound, key)
		}
		return nil, fmt.Errorf("s3: get %s/%s: %w", s.opts.Bucket, k, err)
	}
	return out.Body, nil
}

// Delete removes the object. S3 treats missing keys as success.
func (s *Store) Delete(ctx context.Context, key string) error {
	k := s.objectKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(k),
	})
	if err != nil {
		return fmt.Errorf("s3: delete %s/%s: %w", s.opts.Bucket, k, err)
	}
	return nil
}

type sizeReader struct {
	r io.Reader
	n int64
}

func (c *sizeReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

var _ object.ObjectStore = (*Store)(nil)
