package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/barkprotocol/blinkshare-platform-sub000/internal/gateways/storage/mock"
)

func TestReportArchiver_Archive(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockObjectPutter(ctrl)
	archiver := NewReportArchiver(client, "blinkshare", "/reconciler/")

	client.EXPECT().PutObject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "blinkshare", *in.Bucket)
			assert.Equal(t, "reconciler/2026/run.json", *in.Key)
			assert.Equal(t, "application/json", *in.ContentType)

			body, err := io.ReadAll(in.Body)
			require.NoError(t, err)
			var decoded map[string]int
			require.NoError(t, json.Unmarshal(body, &decoded))
			assert.Equal(t, 3, decoded["expired"])
			return &s3.PutObjectOutput{}, nil
		})

	key, err := archiver.Archive(context.Background(), "2026/run.json", map[string]int{"expired": 3})
	require.NoError(t, err)
	assert.Equal(t, "reconciler/2026/run.json", key)
}

func TestReportArchiver_UploadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock.NewMockObjectPutter(ctrl)
	archiver := NewReportArchiver(client, "blinkshare", "")

	client.EXPECT().PutObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("access denied"))

	_, err := archiver.Archive(context.Background(), "run.json", struct{}{})
	assert.ErrorContains(t, err, "access denied")
}

func TestReportArchiver_EncodeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	archiver := NewReportArchiver(mock.NewMockObjectPutter(ctrl), "blinkshare", "")

	_, err := archiver.Archive(context.Background(), "run.json", make(chan int))
	assert.ErrorContains(t, err, "failed to encode report")
}
