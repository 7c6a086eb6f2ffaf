package model

import "time"

// Category classifies what a submission documents.
type Category string

const (
	CategoryFood    Category = "Food"
	CategoryCulture Category = "Culture"
)

// Categories lists every accepted category.
var Categories = []Category{CategoryFood, CategoryCulture}

// Valid reports whether the category is one of the accepted values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ContentType is the media kind of a submission, distinct from MIME type.
type ContentType string

const (
	ContentTypeText  ContentType = "Text"
	ContentTypeAudio ContentType = "Audio"
	ContentTypeImage ContentType = "Image"
	ContentTypeVideo ContentType = "Video"
)

// ContentTypes lists every accepted content type.
var ContentTypes = []ContentType{ContentTypeText, ContentTypeAudio, ContentTypeImage, ContentTypeVideo}

// Valid reports whether the content type is one of the accepted values.
func (t ContentType) Valid() bool {
	for _, known := range ContentTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Submission is a finalized piece of user-contributed content. Rows are
// created once at submission time and never updated; they are removed only by
// the user-delete cascade.
type Submission struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"not null;index"`
	Title       string      `json:"title" gorm:"size:255;not null"`
	Description string      `json:"description,omitempty" gorm:"type:text"`
	Category    Category    `json:"category" gorm:"type:varchar(20);not null;index"`
	ContentType ContentType `json:"content_type" gorm:"type:varchar(20);not null;index"`
	FilePath    *string     `json:"file_path,omitempty" gorm:"size:512"`
	FileSize    int64       `json:"file_size,omitempty"`
	Transcript  *string     `json:"transcript,omitempty" gorm:"type:text"`
	Language    *string     `json:"language,omitempty" gorm:"size:50"`
	Region      *string     `json:"region,omitempty" gorm:"size:50;index"`
	LocationLat *float64    `json:"location_lat,omitempty"`
	LocationLng *float64    `json:"location_lng,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
