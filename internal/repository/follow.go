// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow-graph data operations
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followeeID uint) (bool, error)
	Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]models.FollowEntry, error)
	Followers(ctx context.Context, userID uint, limit, offset int) ([]models.FollowEntry, error)
	Stats(ctx context.Context, userID uint) (*models.FollowStats, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow records the directed edge idempotently. Re-following is a no-op,
// and two racing requests produce a single row. The returned bool reports
// whether a new edge was created.
func (r *followRepository) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO follows (follower_id, followee_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Unfollow hard-deletes the edge and reports whether one was removed.
func (r *followRepository) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.username, users.full_name, follows.created_at AS followed_at").
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.FollowEntry, error) {
	var entries []models.FollowEntry
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.username, users.full_name, follows.created_at AS followed_at").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// Stats runs the two aggregates as independent queries. The pair is not a
// transactional snapshot; edges added between the two counts can skew one of
// them by a row.
func (r *followRepository) Stats(ctx context.Context, userID uint) (*models.FollowStats, error) {
	var stats models.FollowStats

	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Count(&stats.FollowingCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", userID).
		Count(&stats.FollowersCount).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return &stats, nil
}
