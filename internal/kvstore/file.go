package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File persists each key as a file under a root directory. It is the default
// backend: a per-installation library on local disk, no external service
// required.
type File struct {
	basePath string
}

// NewFile initializes a File store rooted at basePath, creating it if needed.
func NewFile(basePath string) (*File, error) {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("kvstore: base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: ensure base path: %w", err)
	}
	return &File{basePath: basePath}, nil
}

func (f *File) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := f.pathFor(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kvstore: read %s: %w", key, err)
	}
	return string(data), true, nil
}

func (f *File) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("kvstore: ensure directory: %w", err)
	}
	// Write-then-rename so a crash mid-write cannot corrupt the stored value.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("kvstore: write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("kvstore: commit %s: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

// pathFor maps a namespaced key like "studio:library:v1" to a file path and
// prevents escaping the storage root.
func (f *File) pathFor(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("kvstore: key is required")
	}
	name := strings.ReplaceAll(key, ":", "/")
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimLeft(strings.TrimPrefix(name, "./"), "/")
	cleaned := filepath.Clean(name)
	cleaned = strings.ReplaceAll(cleaned, "\\", "/")
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("kvstore: invalid key %q", key)
	}
	return filepath.Join(f.basePath, filepath.FromSlash(cleaned)+".json"), nil
}

var _ Store = (*File)(nil)
