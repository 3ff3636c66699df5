// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	Like(ctx context.Context, userID, postID uint) (bool, error)
	Unlike(ctx context.Context, userID, postID uint) (bool, error)
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	Likers(ctx context.Context, postID uint, limit, offset int) ([]models.UserSummary, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like records the like idempotently. The conflict-ignore insert makes a
// repeat like (including two racing requests) a no-op instead of a duplicate
// key error. The returned bool reports whether a new row was created; false
// means the like already existed.
func (r *likeRepository) Like(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, post_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		userID, postID,
	)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Unlike hard-deletes the like row and reports whether one was removed.
func (r *likeRepository) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *likeRepository) Likers(ctx context.Context, postID uint, limit, offset int) ([]models.UserSummary, error) {
	var likers []models.UserSummary
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.full_name").
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at DESC, likes.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&likers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likers, nil
}
