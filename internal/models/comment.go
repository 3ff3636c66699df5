// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. Threading is a single optional
// self-reference: a reply points at its parent comment. Comments soft-delete
// like posts do.
type Comment struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	User            User           `gorm:"foreignKey:UserID" json:"user"`
	PostID          uint           `gorm:"not null;index" json:"post_id"`
	ParentCommentID *uint          `gorm:"index" json:"parent_comment_id,omitempty"`
	Content         string         `gorm:"type:text;not null" json:"content"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
