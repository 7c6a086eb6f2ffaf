// Package storage persists validated media files on the local filesystem,
// partitioned by content type.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"parampara/internal/errors"
	"parampara/internal/model"
)

// subdirFor maps content types to their upload subdirectories.
var subdirFor = map[model.ContentType]string{
	model.ContentTypeImage: "images",
	model.ContentTypeAudio: "audio",
	model.ContentTypeVideo: "videos",
	model.ContentTypeText:  "documents",
}

// StoredFile is the stable reference returned for a persisted file.
type StoredFile struct {
	// Path is relative to the store root and usable as a MediaRef.
	Path string
	// Size is the number of bytes written.
	Size int64
}

// MediaStore writes uploads under a root directory with one subdirectory per
// content type.
type MediaStore struct {
	root string
}

// NewMediaStore ensures the upload root and all content-type subdirectories
// exist and returns the store.
func NewMediaStore(root string) (*MediaStore, error) {
	for _, sub := range subdirFor {
		dir := filepath.Join(root, sub)
		if err := os.MkdirAll(dir, 0o770); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	return &MediaStore{root: root}, nil
}

// Store streams r into a new file under the content type's subdirectory. The
// final name is a UUID plus the original extension, so concurrent uploads of
// identically named files never collide. On any failure, including context
// cancellation mid-stream, the partial file is removed before returning.
func (s *MediaStore) Store(ctx context.Context, contentType model.ContentType, r io.Reader, fileName string) (*StoredFile, error) {
	sub, ok := subdirFor[contentType]
	if !ok {
		return nil, errors.ErrInvalidInput
	}

	name := uuid.New().String() + filepath.Ext(fileName)
	rel := filepath.Join(sub, name)
	dest := filepath.Join(s.root, rel)

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o660)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errors.ErrStorageIO, dest, err)
	}

	written, err := io.Copy(f, &contextReader{ctx: ctx, r: r})
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dest)
		return nil, fmt.Errorf("%w: write %s: %v", errors.ErrStorageIO, dest, err)
	}

	return &StoredFile{Path: rel, Size: written}, nil
}

// Open returns the content of a previously stored file.
func (s *MediaStore) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, path))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", errors.ErrStorageIO, path, err)
	}
	return f, nil
}

// Remove deletes a stored file. Used to compensate when the submission insert
// fails after the file was written.
func (s *MediaStore) Remove(path string) error {
	if err := os.Remove(filepath.Join(s.root, path)); err != nil {
		return fmt.Errorf("%w: remove %s: %v", errors.ErrStorageIO, path, err)
	}
	return nil
}

// contextReader aborts a copy as soon as the request context is cancelled,
// so an abandoned upload cannot keep writing.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
