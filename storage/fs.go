package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

type fsStore struct {
	dir     string
	baseURL string
}

func (s *fsStore) Put(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	key := objectKey(folder, filename)
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", err
	}
	return s.baseURL + "/" + key, nil
}
