package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/input"
	"github.com/dmitrymomot/input/integration/storage/s3"
)

type fakeClient struct {
	puts     []*s3aws.PutObjectInput
	bodies   []string
	deletes  []*s3aws.DeleteObjectInput
	putErr   error
	deadline bool
}

func (c *fakeClient) PutObject(ctx context.Context, in *s3aws.PutObjectInput, _ ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error) {
	if c.putErr != nil {
		return nil, c.putErr
	}
	_, c.deadline = ctx.Deadline()
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	c.puts = append(c.puts, in)
	c.bodies = append(c.bodies, string(data))
	return &s3aws.PutObjectOutput{}, nil
}

func (c *fakeClient) DeleteObject(_ context.Context, in *s3aws.DeleteObjectInput, _ ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error) {
	c.deletes = append(c.deletes, in)
	return &s3aws.DeleteObjectOutput{}, nil
}

func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("f", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["f"][0]
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	_, err := s3.New(context.Background(), s3.Config{Region: "us-east-1"}, s3.WithClient(client))
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "b"}, s3.WithClient(client))
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)

	_, err = s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r", Prefix: "../x"}, s3.WithClient(client))
	assert.ErrorIs(t, err, s3.ErrInvalidConfig)
}

func TestStore(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store, err := s3.New(context.Background(),
		s3.Config{Bucket: "uploads", Region: "us-east-1", Prefix: "/incoming/"},
		s3.WithClient(client),
	)
	require.NoError(t, err)

	key, err := store.Store(context.Background(), fileHeader(t, "Photo.JPG", "jpeg-data"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "incoming/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	require.Len(t, client.puts, 1)

	put := client.puts[0]
	assert.Equal(t, "uploads", *put.Bucket)
	assert.Equal(t, key, *put.Key)
	assert.Equal(t, "application/octet-stream", *put.ContentType)
	assert.Equal(t, int64(len("jpeg-data")), *put.ContentLength)
	assert.Equal(t, "jpeg-data", client.bodies[0])
	assert.False(t, client.deadline)
}

func TestStoreUploadTimeout(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store, err := s3.New(context.Background(),
		s3.Config{Bucket: "b", Region: "r", UploadTimeout: time.Minute},
		s3.WithClient(client),
	)
	require.NoError(t, err)

	_, err = store.Store(context.Background(), fileHeader(t, "a.txt", "x"))
	require.NoError(t, err)
	assert.True(t, client.deadline)
}

func TestStoreNilHeader(t *testing.T) {
	t.Parallel()

	store, err := s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r"}, s3.WithClient(&fakeClient{}))
	require.NoError(t, err)

	_, err = store.Store(context.Background(), nil)
	assert.ErrorIs(t, err, s3.ErrNilFileHeader)
}

func TestStoreErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		expect    error
		retryable bool
	}{
		{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, expect: s3.ErrAccessDenied},
		{name: "slow down", err: &smithy.GenericAPIError{Code: "SlowDown"}, expect: s3.ErrServiceUnavailable, retryable: true},
		{name: "request timeout", err: &smithy.GenericAPIError{Code: "RequestTimeout"}, expect: s3.ErrRequestTimeout, retryable: true},
		{name: "no such bucket", err: &types.NoSuchBucket{}, expect: s3.ErrBucketNotFound},
		{name: "deadline", err: context.DeadlineExceeded, expect: s3.ErrOperationTimeout},
		{name: "canceled", err: context.Canceled, expect: s3.ErrOperationCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, err := s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r"}, s3.WithClient(&fakeClient{putErr: tt.err}))
			require.NoError(t, err)

			_, err = store.Store(context.Background(), fileHeader(t, "a.txt", "x"))
			require.ErrorIs(t, err, tt.expect)
			assert.Equal(t, tt.retryable, s3.IsRetryable(err))
		})
	}

	t.Run("unknown error keeps cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		store, err := s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r"}, s3.WithClient(&fakeClient{putErr: cause}))
		require.NoError(t, err)

		_, err = store.Store(context.Background(), fileHeader(t, "a.txt", "x"))
		assert.ErrorIs(t, err, cause)
		assert.False(t, s3.IsRetryable(err))
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store, err := s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r"}, s3.WithClient(client))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), "/uploads/x.txt"))
	require.Len(t, client.deletes, 1)
	assert.Equal(t, "uploads/x.txt", *client.deletes[0].Key)

	assert.ErrorIs(t, store.Delete(context.Background(), ""), s3.ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(context.Background(), "a/../b"), s3.ErrInvalidKey)
}

func TestStoreWithInputManager(t *testing.T) {
	t.Parallel()

	client := &fakeClient{}
	store, err := s3.New(context.Background(), s3.Config{Bucket: "b", Region: "r", Prefix: "up/"}, s3.WithClient(client))
	require.NoError(t, err)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	cfg := input.DefaultConfig()
	cfg.Store = store
	m, err := input.NewFromRequest(req, cfg)
	require.NoError(t, err)

	avatar, ok := m.File("avatar").(input.Params)
	require.True(t, ok)
	require.Len(t, client.puts, 1)
	assert.Equal(t, *client.puts[0].Key, avatar[input.FileTmpName])
	assert.Equal(t, input.UploadErrOK, avatar[input.FileError])
}
