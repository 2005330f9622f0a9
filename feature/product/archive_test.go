package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"product-catalog/core/storage/mocks"
	"product-catalog/feature/product/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestArchive(client *mocks.Client) *Archive {
	a := NewArchive(client, "catalog", "", "/staging/")
	a.now = func() time.Time { return testNow }
	return a
}

func listing(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestArchive_ObjectName(t *testing.T) {
	a := newTestArchive(new(mocks.Client))
	assert.Equal(t, "staging/20240301T120000.000000000Z.json", a.objectName(testNow))

	later := a.objectName(testNow.Add(time.Millisecond))
	assert.Greater(t, later, a.objectName(testNow))
}

func TestArchive_Snapshot(t *testing.T) {
	ctx := context.Background()
	items := []models.SapProduct{sapProduct("A", "C1", 10)}

	t.Run("creates missing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "catalog", mock.Anything).Return(nil)

		var uploaded []byte
		client.On("PutObject", mock.Anything, "catalog", "staging/20240301T120000.000000000Z.json", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
			}).
			Return(minio.UploadInfo{}, nil)

		name, err := newTestArchive(client).Snapshot(ctx, items)
		require.NoError(t, err)
		assert.Equal(t, "staging/20240301T120000.000000000Z.json", name)

		var decoded []models.SapProduct
		require.NoError(t, json.Unmarshal(uploaded, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "A", decoded[0].ProductSapNumber)
		client.AssertExpectations(t)
	})

	t.Run("existing bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		client.On("PutObject", mock.Anything, "catalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil)

		_, err := newTestArchive(client).Snapshot(ctx, items)
		require.NoError(t, err)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("upload failure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog").Return(true, nil)
		client.On("PutObject", mock.Anything, "catalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, errors.New("denied"))

		_, err := newTestArchive(client).Snapshot(ctx, items)
		assert.ErrorContains(t, err, "failed to upload snapshot")
	})
}

func TestArchive_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("picks newest snapshot", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(listing(
			"staging/20240301T120000.000000000Z.json",
			"staging/20240302T080000.000000000Z.json",
			"staging/notes.txt",
			"staging/20240229T230000.000000000Z.json",
		))

		data, err := json.Marshal([]models.SapProduct{sapProduct("B", "C1", 3)})
		require.NoError(t, err)
		client.On("GetObject", mock.Anything, "catalog", "staging/20240302T080000.000000000Z.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(data)), nil)

		items, name, err := newTestArchive(client).Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "staging/20240302T080000.000000000Z.json", name)
		require.Len(t, items, 1)
		assert.Equal(t, "B", items[0].ProductSapNumber)
	})

	t.Run("empty bucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(listing())

		items, name, err := newTestArchive(client).Latest(ctx)
		require.NoError(t, err)
		assert.Empty(t, name)
		assert.Nil(t, items)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("listing error", func(t *testing.T) {
		client := new(mocks.Client)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("access denied")}
		close(ch)
		client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, _, err := newTestArchive(client).Latest(ctx)
		assert.ErrorContains(t, err, "failed to list snapshots")
	})
}

func TestService_StagingArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("archive failure does not fail staging", func(t *testing.T) {
		env := newTestEnv(t)
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalog").Return(false, errors.New("offline"))
		env.service.archive = newTestArchive(client)

		merged, err := env.service.AddProducts(ctx, []models.SapProduct{sapProduct("A", "C1", 1)})
		require.NoError(t, err)
		assert.Len(t, merged, 1)
	})

	t.Run("restore merges the newest snapshot", func(t *testing.T) {
		env := newTestEnv(t)
		data, err := json.Marshal([]models.SapProduct{sapProduct("A", "C1", 1), sapProduct("B", "C1", 2)})
		require.NoError(t, err)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "catalog", mock.Anything).Return(listing("staging/20240301T120000.000000000Z.json"))
		client.On("GetObject", mock.Anything, "catalog", "staging/20240301T120000.000000000Z.json", mock.Anything).
			Return(io.NopCloser(bytes.NewReader(data)), nil)
		env.service.archive = newTestArchive(client)

		n, err := env.service.RestoreStaging(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		cached, err := env.service.GetCacheProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, cached, 2)
	})

	t.Run("restore without archive", func(t *testing.T) {
		env := newTestEnv(t)
		n, err := env.service.RestoreStaging(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
