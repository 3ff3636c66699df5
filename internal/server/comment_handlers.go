package server

import (
	"errors"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		PostID          uint   `json:"post_id"`
		ParentCommentID *uint  `json:"parent_comment_id"`
		Content         string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}
	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post, err := s.postRepo.GetByID(c.Context(), req.PostID)
	if err != nil || post.DeletedAt.Valid {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", req.PostID))
	}
	if !post.CommentsEnabled {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Comments are disabled for this post"))
	}

	if req.ParentCommentID != nil {
		parent, parentErr := s.commentRepo.GetByID(c.Context(), *req.ParentCommentID)
		if parentErr != nil {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Comment", *req.ParentCommentID))
		}
		if parent.PostID != req.PostID {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Parent comment belongs to a different post"))
		}
	}

	comment := &models.Comment{
		UserID:          userID,
		PostID:          req.PostID,
		ParentCommentID: req.ParentCommentID,
		Content:         req.Content,
	}

	if createErr := s.commentRepo.Create(c.Context(), comment); createErr != nil {
		// The insert re-checks the post state, so a concurrent delete or a
		// comment toggle between our read and the write lands here.
		if errors.Is(createErr, repository.ErrPostNotCommentable) {
			current, curErr := s.postRepo.GetByID(c.Context(), req.PostID)
			if curErr == nil && !current.DeletedAt.Valid && !current.CommentsEnabled {
				return models.RespondWithError(c, fiber.StatusForbidden,
					models.NewForbiddenError("Comments are disabled for this post"))
			}
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Post", req.PostID))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	observability.CommentsCreated.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"comment": comment})
}

// GetPostComments handles GET /api/comments/post/:postId
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	comments, err := s.commentRepo.ListByPost(c.Context(), postID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	total, err := s.commentRepo.CountForPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"comments":      comments,
		"commentsCount": total,
		"pagination":    p.Meta(len(comments)),
	})
}

// GetUserComments handles GET /api/comments/user/:userId
func (s *Server) GetUserComments(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	comments, err := s.commentRepo.ListByUser(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"comments":   comments,
		"pagination": p.Meta(len(comments)),
	})
}

// UpdateComment handles PUT /api/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateCommentContent(req.Content); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if err := s.commentRepo.Update(c.Context(), commentID, userID, req.Content); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentRepo.Delete(c.Context(), commentID, userID); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
