package models

import (
	"time"
)

// Follow is a directed edge in the social graph: follower -> followee.
// The ordered pair is unique, self-follows are rejected before insert, and
// cycles (mutual follows) are valid. Edges are hard-deleted on unfollow.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// FollowEntry is one row of a following/followers listing: the user on the
// other end of the edge plus when the edge was created. Ordering of these
// listings is unspecified.
type FollowEntry struct {
	UserID     uint      `gorm:"column:user_id" json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	FollowedAt time.Time `gorm:"column:followed_at" json:"followed_at"`
}

// FollowStats holds the two follow-graph aggregates for a user. The counts
// come from two independent queries; no snapshot consistency is implied.
type FollowStats struct {
	FollowingCount int64 `json:"followingCount"`
	FollowersCount int64 `json:"followersCount"`
}
