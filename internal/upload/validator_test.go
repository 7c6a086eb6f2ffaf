package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"parampara/internal/errors"
	"parampara/internal/model"
)

const gib = 1024 * 1024 * 1024

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(5 * gib)

	tests := []struct {
		name        string
		fileName    string
		size        int64
		contentType model.ContentType
		expectedErr error
	}{
		{
			name:        "png accepted for image",
			fileName:    "festival.png",
			size:        2 * 1024 * 1024,
			contentType: model.ContentTypeImage,
			expectedErr: nil,
		},
		{
			name:        "oversized jpg rejected on size before format",
			fileName:    "huge.jpg",
			size:        6 * gib,
			contentType: model.ContentTypeImage,
			expectedErr: errors.ErrFileTooLarge,
		},
		{
			name:        "exe rejected for image",
			fileName:    "malware.exe",
			size:        1024,
			contentType: model.ContentTypeImage,
			expectedErr: errors.ErrUnsupportedFormat,
		},
		{
			name:        "mp3 accepted for audio",
			fileName:    "folk-song.mp3",
			size:        10 * 1024 * 1024,
			contentType: model.ContentTypeAudio,
			expectedErr: nil,
		},
		{
			name:        "wav extension is case insensitive",
			fileName:    "recording.WAV",
			size:        1024,
			contentType: model.ContentTypeAudio,
			expectedErr: nil,
		},
		{
			name:        "image extension not valid for audio",
			fileName:    "recipe.png",
			size:        1024,
			contentType: model.ContentTypeAudio,
			expectedErr: errors.ErrUnsupportedFormat,
		},
		{
			name:        "webm accepted for video",
			fileName:    "dance.webm",
			size:        100 * 1024 * 1024,
			contentType: model.ContentTypeVideo,
			expectedErr: nil,
		},
		{
			name:        "txt accepted for text",
			fileName:    "story.txt",
			size:        512,
			contentType: model.ContentTypeText,
			expectedErr: nil,
		},
		{
			name:        "missing extension rejected",
			fileName:    "noextension",
			size:        512,
			contentType: model.ContentTypeImage,
			expectedErr: errors.ErrUnsupportedFormat,
		},
		{
			name:        "negative declared size rejected",
			fileName:    "odd.png",
			size:        -1,
			contentType: model.ContentTypeImage,
			expectedErr: errors.ErrInvalidInput,
		},
		{
			name:        "exactly at ceiling accepted",
			fileName:    "borderline.mp4",
			size:        5 * gib,
			contentType: model.ContentTypeVideo,
			expectedErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.fileName, tt.size, tt.contentType)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

func TestValidator_CeilingConfigurable(t *testing.T) {
	v := NewValidator(1024)

	assert.ErrorIs(t, v.Validate("small.png", 2048, model.ContentTypeImage), errors.ErrFileTooLarge)
	assert.NoError(t, v.Validate("small.png", 1024, model.ContentTypeImage))
}
