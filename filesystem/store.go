// Package filesystem provides read-only file access for showroom. It serves
// the static build and implements the local image backend, resolving every
// path through an os.Root so requests cannot escape the directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/sagarc03/showroom"
)

// Store provides file system read operations.
type Store struct {
	root      *os.Root
	urlPrefix string
}

// NewFileStorage creates a new Store with the given root directory.
// urlPrefix is prepended to the paths List returns (for example
// "/automobile/"); it is unused when the store only serves files.
func NewFileStorage(root *os.Root, urlPrefix string) *Store {
	return &Store{root: root, urlPrefix: urlPrefix}
}

// Get opens a regular file for reading. Returns showroom.ErrNotFound if the
// path is invalid, does not exist, or names a directory.
func (s *Store) Get(ctx context.Context, path string) (io.ReadSeekCloser, fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if !showroom.IsValidPath(path) {
		return nil, nil, showroom.ErrNotFound
	}

	f, err := s.root.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, showroom.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, nil, showroom.ErrNotFound
	}

	return f, info, nil
}

// List returns the image files directly under the prefix directory, sorted
// by name, as urlPrefix + the escaped prefix + name. Only .jpg, .jpeg and .png
// files that Get can open are kept. A missing directory returns
// showroom.ErrNotFound.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := strings.TrimSuffix(prefix, "/")
	if dir == "" {
		dir = "."
	}

	entries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, showroom.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read dir: %w", err)
	}

	urls := []string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !showroom.IsImageFile(entry.Name()) {
			continue
		}

		name := prefix + entry.Name()
		if !showroom.IsValidPath(name) {
			continue
		}
		urls = append(urls, s.urlPrefix+(&url.URL{Path: name}).EscapedPath())
	}

	return urls, nil
}
