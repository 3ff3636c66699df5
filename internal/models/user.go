// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. Identity fields (ID, Username) are
// immutable after creation; Email and FullName may change via profile update.
// Users are never deleted, so there is no soft-delete column.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `gorm:"not null" json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Posts     []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// UserSummary is the author/liker/follower projection embedded in list
// responses: enough to render a byline, nothing more.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}

// Summary returns the lightweight projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName}
}

// UserProfile is a user plus follow-graph aggregates, as returned by the
// profile endpoint. The two counts come from independent queries and are not
// a transactional snapshot.
type UserProfile struct {
	User
	FollowingCount int64 `gorm:"->" json:"following_count"`
	FollowersCount int64 `gorm:"->" json:"followers_count"`
}

// UserProfileUpdate carries the optional fields of a partial profile update.
// Each field maps to a fixed column; nil means "leave unchanged".
type UserProfileUpdate struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
}

// Changes returns the column/value pairs to apply, keyed by column name.
func (u UserProfileUpdate) Changes() map[string]any {
	changes := map[string]any{}
	if u.Email != nil {
		changes["email"] = *u.Email
	}
	if u.FullName != nil {
		changes["full_name"] = *u.FullName
	}
	return changes
}
