package job

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlobs struct {
	deleted []string
	err     error
}

func (f *fakeBlobs) Delete(_ context.Context, rawURL string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, rawURL)
	return nil
}

func (f *fakeBlobs) Owns(rawURL string) bool {
	return strings.HasPrefix(rawURL, "https://shop.blob.core.windows.net/sky-takeout/")
}

type fakeRefs struct {
	inUse map[string]bool
	err   error
}

func (f fakeRefs) ImageInUse(_ context.Context, url string) (bool, error) {
	return f.inUse[url], f.err
}

func newTestService(blobs BlobDeleter) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, blobs: blobs, refs: fakeRefs{}}
}

const ownedURL = "https://shop.blob.core.windows.net/sky-takeout/2024/03/a.png"

func TestNewDeleteBlobTask(t *testing.T) {
	task, err := NewDeleteBlobTask(ownedURL)
	require.NoError(t, err)

	assert.Equal(t, TaskDeleteBlob, task.Type())

	var p DeleteBlobPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, ownedURL, p.URL)
}

func TestHandleDeleteBlobTask(t *testing.T) {
	blobs := &fakeBlobs{}
	j := newTestService(blobs)

	task, err := NewDeleteBlobTask(ownedURL)
	require.NoError(t, err)

	require.NoError(t, j.handleDeleteBlobTask(context.Background(), task))
	assert.Equal(t, []string{ownedURL}, blobs.deleted)
}

func TestHandleDeleteBlobTask_ForeignURLSkipsRetry(t *testing.T) {
	blobs := &fakeBlobs{}
	j := newTestService(blobs)

	task, err := NewDeleteBlobTask("https://example.com/cat.png")
	require.NoError(t, err)

	err = j.handleDeleteBlobTask(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, blobs.deleted)
}

func TestHandleDeleteBlobTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestService(&fakeBlobs{})

	err := j.handleDeleteBlobTask(context.Background(), asynq.NewTask(TaskDeleteBlob, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleDeleteBlobTask_StorageErrorRetries(t *testing.T) {
	boom := errors.New("storage unavailable")
	j := newTestService(&fakeBlobs{err: boom})

	task, err := NewDeleteBlobTask(ownedURL)
	require.NoError(t, err)

	err = j.handleDeleteBlobTask(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestEnqueueImageCleanup_IgnoresUnownedURLs(t *testing.T) {
	j := newTestService(&fakeBlobs{})

	// Client is nil: reaching the enqueue call would panic.
	assert.NoError(t, j.EnqueueImageCleanup(context.Background(), ""))
	assert.NoError(t, j.EnqueueImageCleanup(context.Background(), "https://example.com/cat.png"))
}

func TestHandleDeleteBlobTask_StillReferenced(t *testing.T) {
	blobs := &fakeBlobs{}
	j := newTestService(blobs)
	j.UseImageRefs(fakeRefs{inUse: map[string]bool{ownedURL: true}})

	task, err := NewDeleteBlobTask(ownedURL)
	require.NoError(t, err)

	require.NoError(t, j.handleDeleteBlobTask(context.Background(), task))
	assert.Empty(t, blobs.deleted)
}

func TestHandleDeleteBlobTask_ReferenceCheckErrorRetries(t *testing.T) {
	boom := errors.New("db unavailable")
	blobs := &fakeBlobs{}
	j := newTestService(blobs)
	j.UseImageRefs(fakeRefs{err: boom})

	task, err := NewDeleteBlobTask(ownedURL)
	require.NoError(t, err)

	err = j.handleDeleteBlobTask(context.Background(), task)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, blobs.deleted)
}

func TestStart_RequiresImageRefs(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger, blobs: &fakeBlobs{}}

	assert.Error(t, j.Start())
}
