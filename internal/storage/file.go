package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// FileStore keeps one file per key under a root directory. It is the
// durable local backend, the server side analog of browser localStorage.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root [%s]: %w", root, err)
	}
	log.Debugf("file storage root: %s", root)
	return &FileStore{root: root}, nil
}

func (fs *FileStore) keyPath(key string) string {
	// keys contain dots and arbitrary chars, escape them for the filesystem
	return filepath.Join(fs.root, url.PathEscape(key))
}

func (fs *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	content, err := os.ReadFile(fs.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read key [%s]: %w", key, err)
	}
	return string(content), true, nil
}

func (fs *FileStore) Set(_ context.Context, key, value string) error {
	if err := os.WriteFile(fs.keyPath(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write key [%s]: %w", key, err)
	}
	return nil
}

func (fs *FileStore) Remove(_ context.Context, key string) error {
	if err := os.Remove(fs.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove key [%s]: %w", key, err)
	}
	return nil
}

func (fs *FileStore) Close() error {
	return nil
}
