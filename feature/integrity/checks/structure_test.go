package checks

import (
	"context"
	"errors"
	"testing"

	"game-tracker/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestRequiredFolders(t *testing.T) {
	assert.Equal(t, []string{"snapshots/steam", "snapshots/psn", "snapshots/xbox"}, RequiredFolders("snapshots"))
}

func TestCheckStructure(t *testing.T) {
	folders := RequiredFolders("snapshots")

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "games").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "games", folders)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "games").Return(true, nil)
		ch := make(chan minio.ObjectInfo)
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "games", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		missing, err := CheckStructure(context.Background(), mockClient, "games", folders)
		assert.NoError(t, err)
		assert.Equal(t, folders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "games").Return(true, nil)

		for _, folder := range folders {
			ch := make(chan minio.ObjectInfo, 1)
			ch <- minio.ObjectInfo{Key: folder + "/u1/"}
			close(ch)
			prefix := folder + "/"
			mockClient.On("ListObjects", mock.Anything, "games", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
				return opts.Prefix == prefix
			})).Return((<-chan minio.ObjectInfo)(ch))
		}

		missing, err := CheckStructure(context.Background(), mockClient, "games", folders)
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("List Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "games").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		mockClient.On("ListObjects", mock.Anything, "games", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := CheckStructure(context.Background(), mockClient, "games", folders)
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestFixStructure(t *testing.T) {
	logger := zap.NewNop()
	mockClient := new(mocks.Client)

	mockClient.On("PutObject", mock.Anything, "games", "snapshots/psn/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "games", logger, []string{"snapshots/psn"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}
