package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/ruteri/pixelprops/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	s3iface.S3API
	objects map[string][]byte
	headErr error
}

func (f *fakeS3) GetObjectWithContext(ctx aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.StringValue(in.Key)]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "The specified key does not exist.", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadBucketWithContext(ctx aws.Context, in *s3.HeadBucketInput, _ ...request.Option) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestS3Source(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"devices/oriole/build.prop": []byte(testBuildProp),
	}}
	ctx := context.Background()

	src := newS3SourceWithClient(client, "props", "/devices/oriole/build.prop", "s3://props/devices/oriole/build.prop", testLogger())
	assert.True(t, src.Available(ctx))

	data, err := src.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, testBuildProp, string(data))

	missing := newS3SourceWithClient(client, "props", "devices/marlin/build.prop", "s3://props/devices/marlin/build.prop", testLogger())
	_, err = missing.Fetch(ctx)
	assert.True(t, errors.Is(err, interfaces.ErrRecordNotFound))

	client.headErr = awserr.New("Forbidden", "access denied", nil)
	assert.False(t, src.Available(ctx))
}
