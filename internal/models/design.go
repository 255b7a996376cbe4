package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Design represents a user-submitted architectural image post.
type Design struct {
	ID       string         `gorm:"primaryKey;size:36" json:"id"`
	UserID   uint           `gorm:"not null;index" json:"user_id"`
	User     User           `gorm:"foreignKey:UserID" json:"user"`
	Title    string         `gorm:"not null" json:"title"`
	ImageURL string         `gorm:"not null" json:"image_url"`
	Category string         `gorm:"not null;index" json:"category"`
	Metadata DesignMetadata `gorm:"serializer:json;type:jsonb" json:"metadata"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// SavesCount is not persisted; computed at query time
	SavesCount int `gorm:"->" json:"saves_count"`
	// Liked indicates whether the current requesting user liked this design (computed)
	Liked bool `gorm:"->" json:"liked"`
	// Saved indicates whether the current requesting user saved this design (computed)
	Saved     bool           `gorm:"->" json:"saved"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate assigns an opaque UUID when none was provided.
func (d *Design) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
