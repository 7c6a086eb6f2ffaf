package model

import "time"

// User represents a registered contributor.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Locations   []LocationRecord `json:"-" gorm:"foreignKey:UserID"`
	Submissions []Submission     `json:"-" gorm:"foreignKey:UserID"`
}
