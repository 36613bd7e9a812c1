package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	appconfig "atfplatform/backend/config"
)

func TestFSStorePutWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s := &fsStore{dir: dir, baseURL: "https://atfplatform.tw1.ru/uploads"}

	url, err := s.Put(context.Background(), "adverts", "photo.jpg", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if !strings.HasPrefix(url, "https://atfplatform.tw1.ru/uploads/adverts/") {
		t.Fatalf("unexpected url: %s", url)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Fatalf("extension must be preserved: %s", url)
	}

	key := strings.TrimPrefix(url, "https://atfplatform.tw1.ru/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestObjectKeyUniquePerCall(t *testing.T) {
	a := objectKey("avatars", "me.png")
	b := objectKey("avatars", "me.png")
	if a == b {
		t.Fatal("object keys must be unique across calls")
	}
	if !strings.HasPrefix(a, "avatars/") {
		t.Fatalf("folder must prefix the key: %s", a)
	}
}

func TestNewFallsBackToFilesystem(t *testing.T) {
	s, err := New(appconfig.Config{
		StorageType: "bogus",
		UploadDir:   t.TempDir(),
		PublicBase:  "https://atfplatform.tw1.ru",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := s.(*fsStore); !ok {
		t.Fatalf("expected filesystem store, got %T", s)
	}
}
