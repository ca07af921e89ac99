package handlers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/trestle/internal/config"
)

type fakeStore struct {
	buckets map[string]map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{buckets: map[string]map[string][]byte{}}
}

func (f *fakeStore) CreateBucket(_ context.Context, bucket string) error {
	if f.buckets[bucket] == nil {
		f.buckets[bucket] = map[string][]byte{}
	}
	return nil
}

func (f *fakeStore) ListObjects(_ context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	for key := range f.buckets[bucket] {
		if prefix == "" || len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (f *fakeStore) PutObject(_ context.Context, bucket, key string, data []byte) error {
	f.buckets[bucket][key] = data
	return nil
}

func (f *fakeStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	return f.buckets[bucket][key], nil
}

func withFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	withTestDeps(t, nil)

	store := newFakeStore()
	orig := newObjectStore
	t.Cleanup(func() { newObjectStore = orig })
	newObjectStore = func(_ config.ObjectStoreConfig) (ObjectStore, error) { return store, nil }
	return store
}

func TestStorageUploadThenDownload(t *testing.T) {
	store := withFakeStore(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o644))

	require.NoError(t, StorageUpload(context.Background(), "", "results", src, ""))
	assert.Equal(t, []byte("payload"), store.buckets["results"]["data.txt"])

	dest := filepath.Join(dir, "copy.txt")
	require.NoError(t, StorageDownload(context.Background(), "", "results", "data.txt", dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestStorageUpload_MissingFile(t *testing.T) {
	withFakeStore(t)

	err := StorageUpload(context.Background(), "", "results", "/no/such/file", "")
	require.Error(t, err)
}

func TestStorageList(t *testing.T) {
	store := withFakeStore(t)
	store.buckets["results"] = map[string][]byte{
		"run-1/out.log": []byte("a"),
		"run-2/out.log": []byte("b"),
	}

	require.NoError(t, StorageList(context.Background(), "", "results", "run-1/"))
}
