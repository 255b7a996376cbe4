package models

import "time"

// Like is a binary relation between a design and a viewer. Its existence is
// the on state; like counts are derived by counting rows.
type Like struct {
	DesignID  string    `gorm:"primaryKey;size:36" json:"design_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Save is a binary relation marking a design bookmarked by a viewer.
type Save struct {
	DesignID  string    `gorm:"primaryKey;size:36" json:"design_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
