package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/trestle/internal/config"
	"github.com/imamik/trestle/internal/platform/objectstore"
)

// ObjectStore is the subset of the object-store client the storage
// handlers use.
type ObjectStore interface {
	CreateBucket(ctx context.Context, bucketName string) error
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
	PutObject(ctx context.Context, bucketName, key string, data []byte) error
	GetObject(ctx context.Context, bucketName, key string) ([]byte, error)
}

// newObjectStore builds the object-store client; replaced in tests.
var newObjectStore = func(cfg config.ObjectStoreConfig) (ObjectStore, error) {
	return objectstore.NewClient(cfg)
}

// StorageList prints the object keys in a bucket.
func StorageList(ctx context.Context, configPath, bucket, prefix string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := newObjectStore(cfg.ObjectStore)
	if err != nil {
		return err
	}

	keys, err := store.ListObjects(ctx, bucket, prefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	if len(keys) == 0 {
		fmt.Println("(empty)")
	}
	return nil
}

// StorageUpload uploads a local file into a bucket, creating the bucket if
// it does not exist. An empty key defaults to the file's base name.
func StorageUpload(ctx context.Context, configPath, bucket, path, key string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := newObjectStore(cfg.ObjectStore)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if key == "" {
		key = filepath.Base(path)
	}

	if err := store.CreateBucket(ctx, bucket); err != nil {
		return err
	}
	if err := store.PutObject(ctx, bucket, key, data); err != nil {
		return err
	}

	fmt.Printf("Uploaded %s to %s/%s (%d bytes)\n", path, bucket, key, len(data))
	return nil
}

// StorageDownload fetches an object into a local file. An empty destination
// defaults to the key's base name in the working directory.
func StorageDownload(ctx context.Context, configPath, bucket, key, dest string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	store, err := newObjectStore(cfg.ObjectStore)
	if err != nil {
		return err
	}

	data, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return err
	}
	if dest == "" {
		dest = filepath.Base(key)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	fmt.Printf("Downloaded %s/%s to %s (%d bytes)\n", bucket, key, dest, len(data))
	return nil
}
