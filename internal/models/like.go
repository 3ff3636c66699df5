package models

import (
	"time"
)

// Like records that a user liked a post. The (UserID, PostID) pair is unique
// and inserts use conflict-ignore semantics, so re-liking is a no-op rather
// than an error. Unlike posts and comments, likes are hard-deleted: a like is
// pure relationship existence, there is no history to keep.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user"`
}
