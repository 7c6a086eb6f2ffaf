// Package upload validates files before any byte reaches storage.
package upload

import (
	"path/filepath"
	"strings"

	"parampara/internal/errors"
	"parampara/internal/model"
)

// DefaultAllowedExtensions maps each content type to its extension allow-list.
func DefaultAllowedExtensions() map[model.ContentType][]string {
	return map[model.ContentType][]string{
		model.ContentTypeImage: {"jpg", "jpeg", "png", "gif", "bmp"},
		model.ContentTypeAudio: {"mp3", "wav", "m4a", "flac", "ogg"},
		model.ContentTypeVideo: {"mp4", "avi", "mov", "wmv", "flv", "webm"},
		model.ContentTypeText:  {"txt", "md", "pdf", "doc", "docx"},
	}
}

// Validator checks declared file size and extension against configured limits.
// It is pure: no filesystem or network access.
type Validator struct {
	maxSize int64
	allowed map[model.ContentType][]string
}

// NewValidator builds a validator with the given size ceiling in bytes.
func NewValidator(maxSize int64) *Validator {
	return &Validator{
		maxSize: maxSize,
		allowed: DefaultAllowedExtensions(),
	}
}

// Validate rejects files that exceed the size ceiling or whose extension is not
// allowed for the content type. The size check runs first: an oversized file is
// rejected regardless of its extension.
func (v *Validator) Validate(fileName string, declaredSize int64, contentType model.ContentType) error {
	if declaredSize < 0 {
		return errors.ErrInvalidInput
	}
	if declaredSize > v.maxSize {
		return errors.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	for _, allowed := range v.allowed[contentType] {
		if ext == allowed {
			return nil
		}
	}
	return errors.ErrUnsupportedFormat
}

// MaxSize returns the configured ceiling in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}
