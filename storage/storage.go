// Package storage holds uploaded files (advert photos, certificates, avatars)
// behind a backend-agnostic interface. The backend is a tagged union selected
// by configuration: local filesystem or S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	appconfig "atfplatform/backend/config"
)

type Store interface {
	// Put streams r into the backend under a generated key within folder and
	// returns the public URL of the stored object.
	Put(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}

// New selects the backend from config. Unknown types fall back to the
// filesystem store so a misconfigured box still serves uploads locally.
func New(cfg appconfig.Config) (Store, error) {
	switch cfg.StorageType {
	case "s3":
		return newS3Store(cfg)
	default:
		return &fsStore{dir: cfg.UploadDir, baseURL: strings.TrimRight(cfg.PublicBase, "/") + "/uploads"}, nil
	}
}

// SaveUpload is a convenience wrapper for multipart file headers.
func SaveUpload(ctx context.Context, s Store, folder string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.Put(ctx, folder, fh.Filename, f)
}

func objectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 {
		ext = ""
	}
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
}
