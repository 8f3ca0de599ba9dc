package stores

import (
	"context"
	"errors"
	"io"
	"testing"

	"timelog/internal/shared/filestorages"
	"timelog/internal/shared/filestorages/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestFileLocker_AcquireRelease(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	locker := NewFileLocker(fileStorage)
	ctx := context.Background()

	ok, err := locker.Acquire(ctx, "JOB_RUNNING")
	require.NoError(t, err)
	assert.True(t, ok, "first acquire should win")

	ok, err = locker.Acquire(ctx, "JOB_RUNNING")
	require.NoError(t, err)
	assert.False(t, ok, "lock is already held")

	ok, err = locker.Acquire(ctx, "OTHER_JOB_RUNNING")
	require.NoError(t, err)
	assert.True(t, ok, "locks are independent by name")

	require.NoError(t, locker.Release(ctx, "JOB_RUNNING"))

	ok, err = locker.Acquire(ctx, "JOB_RUNNING")
	require.NoError(t, err)
	assert.True(t, ok, "released lock can be acquired again")
}

func TestFileLocker_ReleaseNotHeld(t *testing.T) {
	t.Parallel()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, NewFileLocker(fileStorage).Release(context.Background(), "JOB_RUNNING"))
}

func TestFileLocker_Acquire_UsesCreateIfNotExists(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	locker := NewFileLocker(mockFileStorage)
	ctx := context.Background()

	mockFileStorage.EXPECT().
		Put(ctx, "locks/JOB_RUNNING.lock", gomock.Any(), filestorages.PutOptions{AllowOverwrite: false}).
		DoAndReturn(func(ctx context.Context, key string, r io.Reader, opts filestorages.PutOptions) (*filestorages.PutResult, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Contains(t, string(data), `"name":"JOB_RUNNING"`)
			return &filestorages.PutResult{FileKey: key}, nil
		})

	ok, err := locker.Acquire(ctx, "JOB_RUNNING")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileLocker_StorageErrors(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFileStorage := mocks.NewMockFileStorage(ctrl)
	locker := NewFileLocker(mockFileStorage)
	ctx := context.Background()
	storageErr := errors.New("disk full")

	mockFileStorage.EXPECT().Put(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storageErr)
	ok, err := locker.Acquire(ctx, "JOB_RUNNING")
	assert.False(t, ok)
	assert.ErrorIs(t, err, storageErr)

	mockFileStorage.EXPECT().Delete(ctx, "locks/JOB_RUNNING.lock").Return(storageErr)
	assert.ErrorIs(t, locker.Release(ctx, "JOB_RUNNING"), storageErr)
}
