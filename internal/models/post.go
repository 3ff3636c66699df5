// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a short text update, optionally carrying a media reference.
// Deletion is a soft delete: the row stays in storage and is excluded from
// feed, search and by-author listings by the DeletedAt filter.
type Post struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	UserID          uint   `gorm:"not null;index" json:"user_id"`
	User            User   `gorm:"foreignKey:UserID" json:"user"`
	Content         string `gorm:"type:text" json:"content"`
	MediaURL        string `json:"media_url,omitempty"`
	CommentsEnabled bool   `gorm:"not null;default:true" json:"comments_enabled"`
	// LikedAt is only populated on "posts a user liked" listings (computed)
	LikedAt   *time.Time     `gorm:"->;-:migration" json:"liked_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PostUpdate carries the optional fields of a partial post update. Every
// field maps to a fixed column at compile time; unspecified fields keep
// their stored value.
type PostUpdate struct {
	Content         *string `json:"content,omitempty"`
	MediaURL        *string `json:"media_url,omitempty"`
	CommentsEnabled *bool   `json:"comments_enabled,omitempty"`
}

// Changes returns the column/value pairs to apply, keyed by column name.
func (u PostUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if u.Content != nil {
		changes["content"] = *u.Content
	}
	if u.MediaURL != nil {
		changes["media_url"] = *u.MediaURL
	}
	if u.CommentsEnabled != nil {
		changes["comments_enabled"] = *u.CommentsEnabled
	}
	return changes
}
