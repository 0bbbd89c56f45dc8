package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Object is a single blob handed to a Storage backend.
type Object struct {
	Name        string // final file name, already unique
	ContentType string
	Owner       string // used by backends that group objects per uploader
	Body        io.Reader
}

// Storage persists uploaded blobs and returns the URL they are reachable at.
type Storage interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// LocalStorage writes blobs under a directory that the HTTP server exposes
// statically at URLPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

func NewLocalStorage(dir, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStorage{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

func (s *LocalStorage) Dir() string {
	return s.dir
}

func (s *LocalStorage) Put(ctx context.Context, obj Object) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := filepath.Base(obj.Name)
	if name == "." || name == string(filepath.Separator) || name != obj.Name {
		return "", fmt.Errorf("invalid object name %q", obj.Name)
	}

	fullPath := filepath.Join(s.dir, name)
	f, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, obj.Body); err != nil {
		f.Close()
		os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("close file: %w", err)
	}

	return path.Join(s.urlPrefix, name), nil
}
