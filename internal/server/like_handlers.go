package server

import (
	"ripple/internal/models"
	"ripple/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// LikePost handles POST /api/likes
func (s *Server) LikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		PostID uint `json:"post_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("post_id is required"))
	}

	post, err := s.postRepo.GetByID(c.Context(), req.PostID)
	if err != nil || post.DeletedAt.Valid {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", req.PostID))
	}

	created, err := s.likeRepo.Like(c.Context(), userID, req.PostID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	likesCount, err := s.likeRepo.CountForPost(c.Context(), req.PostID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if !created {
		return c.JSON(fiber.Map{
			"message":    "Post already liked",
			"likesCount": likesCount,
		})
	}

	observability.LikeEvents.WithLabelValues("like").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Post liked",
		"likesCount": likesCount,
	})
}

// UnlikePost handles DELETE /api/likes/:postId
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	removed, err := s.likeRepo.Unlike(c.Context(), userID, postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !removed {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Like", postID))
	}

	observability.LikeEvents.WithLabelValues("unlike").Inc()

	likesCount, err := s.likeRepo.CountForPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message":    "Post unliked",
		"likesCount": likesCount,
	})
}

// GetPostLikes handles GET /api/likes/post/:postId
func (s *Server) GetPostLikes(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	users, err := s.likeRepo.Likers(c.Context(), postID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	likesCount, err := s.likeRepo.CountForPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"likesCount": likesCount,
		"pagination": p.Meta(len(users)),
	})
}

// GetUserLikes handles GET /api/likes/user/:userId
func (s *Server) GetUserLikes(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	posts, err := s.postRepo.LikedBy(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": p.Meta(len(posts)),
	})
}
