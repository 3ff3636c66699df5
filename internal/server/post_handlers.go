package server

import (
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Content         string `json:"content"`
		MediaURL        string `json:"media_url"`
		CommentsEnabled *bool  `json:"comments_enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.ValidatePostContent(req.Content, req.MediaURL); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	post := &models.Post{
		UserID:          userID,
		Content:         req.Content,
		MediaURL:        req.MediaURL,
		CommentsEnabled: true,
	}
	if req.CommentsEnabled != nil {
		post.CommentsEnabled = *req.CommentsEnabled
	}

	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	observability.PostsCreated.Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

// ListPosts handles GET /api/posts. Public browse across all authors,
// newest first.
func (s *Server) ListPosts(c *fiber.Ctx) error {
	p := parsePagination(c)
	posts, err := s.postRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": p.Meta(len(posts)),
	})
}

// GetFeed handles GET /api/posts/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	p := parsePagination(c)
	posts, err := s.postRepo.Feed(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": p.Meta(len(posts)),
	})
}

// GetMyPosts handles GET /api/posts/my
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	p := parsePagination(c)
	posts, err := s.postRepo.GetByUserID(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": p.Meta(len(posts)),
	})
}

// SearchPosts handles GET /api/posts/search
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c)
	posts, err := s.postRepo.Search(c.Context(), query, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": p.Meta(len(posts)),
	})
}

// GetUserPosts handles GET /api/posts/user/:userId
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	p := parsePagination(c)
	posts, err := s.postRepo.GetByUserID(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"posts":      posts,
		"pagination": p.Meta(len(posts)),
	})
}

// GetPost handles GET /api/posts/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}
	if post.DeletedAt.Valid {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Post", postID))
	}

	resp := fiber.Map{"post": post}
	if viewerID, ok := s.optionalUserID(c); ok {
		liked, likedErr := s.likeRepo.IsLiked(c.Context(), viewerID, postID)
		if likedErr == nil {
			resp["liked"] = liked
		}
	}

	return c.JSON(resp)
}

// UpdatePost handles PUT /api/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	var req models.PostUpdate
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Content != nil || req.MediaURL != nil {
		content := ""
		if req.Content != nil {
			content = *req.Content
		}
		mediaURL := ""
		if req.MediaURL != nil {
			mediaURL = *req.MediaURL
		}
		if err := validation.ValidatePostContent(content, mediaURL); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(err.Error()))
		}
	}

	// A zero-row update means the post is missing or belongs to someone else.
	// Both cases report not found so ownership is never revealed.
	if err := s.postRepo.Update(c.Context(), postID, userID, req); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"post": post})
}

// DeletePost handles DELETE /api/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postRepo.Delete(c.Context(), postID, userID); err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
			return models.RespondWithError(c, fiber.StatusNotFound, err)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}
