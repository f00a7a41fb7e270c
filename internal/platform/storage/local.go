package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes to a temp file in the target directory and renames it into
// place so a failed write never leaves a partial file behind.
func (s *LocalStore) Save(ctx context.Context, input SaveInput) (*SaveResult, error) {
	if len(input.Data) == 0 {
		return nil, errors.New("storage: empty file")
	}

	key := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], sanitizeExt(input.Name))
	final := filepath.Join(s.dir, key)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return nil, err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(input.Data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return nil, err
	}

	return &SaveResult{
		Key:  key,
		URL:  s.baseURL + "/" + key,
		Size: int64(len(input.Data)),
	}, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	clean := filepath.Base(key)
	if clean == "." || clean == string(filepath.Separator) {
		return errors.New("storage: invalid key")
	}
	err := os.Remove(filepath.Join(s.dir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) Open(ctx context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filepath.Base(key)))
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
