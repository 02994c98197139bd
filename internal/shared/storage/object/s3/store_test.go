package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/shared/storage/object"
)

type fakeAPI struct {
	objects map[string][]byte
	puts    []*s3.PutObjectInput
	getErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: map[string][]byte{}}
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, in)
	f.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestObjectKeyPrefix(t *testing.T) {
	cases := map[string]struct {
		prefix, key, want string
	}{
		"none":        {"", "exports/ab/x.pdf", "exports/ab/x.pdf"},
		"plain":       {"studio", "exports/ab/x.pdf", "studio/exports/ab/x.pdf"},
		"slashes":     {" /studio/prod/ ", "/exports/ab/x.pdf", "studio/prod/exports/ab/x.pdf"},
		"leading key": {"", "//exports/x.pdf", "exports/x.pdf"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newStore(newFakeAPI(), Options{Bucket: "b", Prefix: tc.prefix})
			assert.Equal(t, tc.want, s.objectKey(tc.key))
		})
	}
}

func TestPutEncryptsAndCountsBytes(t *testing.T) {
	fake := newFakeAPI()
	s := newStore(fake, Options{Bucket: "cv-exports", Prefix: "prod"})

	obj, err := s.Put(context.Background(), "exports/ab/file.pdf", "application/pdf", bytes.NewReader([]byte("%PDF-1.3")))
	require.NoError(t, err)
	assert.Equal(t, int64(8), obj.SizeBytes)
	assert.Equal(t, "exports/ab/file.pdf", obj.Key)

	require.Len(t, fake.puts, 1)
	in := fake.puts[0]
	assert.Equal(t, "cv-exports", aws.ToString(in.Bucket))
	assert.Equal(t, "prod/exports/ab/file.pdf", aws.ToString(in.Key))
	assert.Equal(t, s3types.ServerSideEncryptionAes256, in.ServerSideEncryption)
	assert.Nil(t, in.SSEKMSKeyId)
}

func TestPutUsesKMSKey(t *testing.T) {
	fake := newFakeAPI()
	s := newStore(fake, Options{Bucket: "b", KMSKeyID: " key-1 "})

	_, err := s.Put(context.Background(), "k.pdf", "application/pdf", bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, s3types.ServerSideEncryptionAwsKms, fake.puts[0].ServerSideEncryption)
	assert.Equal(t, "key-1", aws.ToString(fake.puts[0].SSEKMSKeyId))
}

func TestOpenRoundTripAndMissing(t *testing.T) {
	ctx := context.Background()
	s := newStore(newFakeAPI(), Options{Bucket: "b"})

	_, err := s.Put(ctx, "a.pdf", "application/pdf", bytes.NewReader([]byte("body")))
	require.NoError(t, err)

	rc, err := s.Open(ctx, "a.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "body", string(data))

	require.NoError(t, s.Delete(ctx, "a.pdf"))
	_, err = s.Open(ctx, "a.pdf")
	assert.ErrorIs(t, err, object.ErrNotFound)
}

func TestOpenWrapsTransportErrors(t *testing.T) {
	fake := newFakeAPI()
	fake.getErr = errors.New("connection reset")
	s := newStore(fake, Options{Bucket: "b"})

	_, err := s.Open(context.Background(), "a.pdf")
	require.Error(t, err)
	assert.NotErrorIs(t, err, object.ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Options{Region: "eu-west-1", Bucket: "  "})
	assert.Error(t, err)
}
