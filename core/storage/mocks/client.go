// Package mocks provides a testify mock of storage.Client with helpers for the
// list, read and upload expectations the loaders need.
package mocks

import (
	"context"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"
)

// Client mocks storage.Client.
type Client struct {
	mock.Mock
}

// ExpectList makes any listing of bucket yield the given keys.
func (m *Client) ExpectList(bucket string, keys ...string) *mock.Call {
	infos := make([]minio.ObjectInfo, len(keys))
	for i, k := range keys {
		infos[i] = minio.ObjectInfo{Key: k}
	}
	return m.On("ListObjects", mock.Anything, bucket, mock.Anything).Return(Objects(infos...))
}

// ExpectGet makes bucket/key read as body.
func (m *Client) ExpectGet(bucket, key, body string) *mock.Call {
	return m.On("GetObject", mock.Anything, bucket, key, mock.Anything).
		Return(io.NopCloser(strings.NewReader(body)), nil)
}

// ExpectPut accepts one upload of bucket/key with any content.
func (m *Client) ExpectPut(bucket, key string) *mock.Call {
	return m.On("PutObject", mock.Anything, bucket, key, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{Bucket: bucket, Key: key}, nil)
}

// Objects returns a closed, buffered listing channel.
func Objects(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func (m *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	args := m.Called(ctx, bucket)
	return args.Bool(0), args.Error(1)
}

func (m *Client) MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error {
	return m.Called(ctx, bucket, opts).Error(0)
}

func (m *Client) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	args := m.Called(ctx, bucket, key, r, size, opts)
	info, _ := args.Get(0).(minio.UploadInfo)
	return info, args.Error(1)
}

func (m *Client) GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	args := m.Called(ctx, bucket, key, opts)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *Client) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	if ch, ok := m.Called(ctx, bucket, opts).Get(0).(<-chan minio.ObjectInfo); ok {
		return ch
	}
	return Objects()
}
