// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// ErrPostNotCommentable is returned by CommentRepository.Create when the
// target post is missing, deleted, or has comments disabled at insert time.
// The guard and the insert are a single statement, so a post deleted or
// locked between the handler's visibility check and the write still cannot
// gain a comment.
var ErrPostNotCommentable = errors.New("post does not accept comments")

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
	Update(ctx context.Context, id, userID uint, content string) error
	Delete(ctx context.Context, id, userID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment with a conditional write: the row only lands if
// the post still exists, is not soft-deleted, and accepts comments.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	row := r.db.WithContext(ctx).Raw(
		`INSERT INTO comments (user_id, post_id, parent_comment_id, content, created_at, updated_at)
		 SELECT ?, posts.id, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
		 FROM posts
		 WHERE posts.id = ? AND posts.deleted_at IS NULL AND posts.comments_enabled
		 RETURNING id, created_at, updated_at`,
		comment.UserID, comment.ParentCommentID, comment.Content, comment.PostID,
	).Row()
	if row == nil {
		return models.NewInternalError(errors.New("comment insert returned no row"))
	}
	if err := row.Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotCommentable
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

// ListByPost returns a post's comments oldest first, so a thread reads in
// chronological order.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Update rewrites the comment body when the comment is owned by userID. A
// zero-row result means absent or not owned; both surface as not found.
func (r *commentRepository) Update(ctx context.Context, id, userID uint, content string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("content", content)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}

// Delete soft-deletes a comment owned by userID; same zero-row semantics as Update.
func (r *commentRepository) Delete(ctx context.Context, id, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Comment", id)
	}
	return nil
}
