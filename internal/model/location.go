package model

import "time"

// LocationRecord is an append-only record of where a user contributed from.
// Coordinates are optional but must be present together; address-only records
// are allowed. Records are never updated or deleted individually; they go away
// only when the owning user is deleted.
type LocationRecord struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	Address    *string   `json:"address,omitempty" gorm:"type:text"`
	RecordedAt time.Time `json:"recorded_at" gorm:"autoCreateTime"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
