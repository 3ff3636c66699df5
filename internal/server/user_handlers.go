package server

import (
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", userID))
	}

	stats, err := s.followRepo.Stats(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	profile := models.UserProfile{
		User:           *user,
		FollowingCount: stats.FollowingCount,
		FollowersCount: stats.FollowersCount,
	}

	return c.JSON(fiber.Map{"user": profile})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.UserProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var fieldErrors []string
	if req.Email != nil {
		if err := validation.ValidateEmail(*req.Email); err != nil {
			fieldErrors = append(fieldErrors, err.Error())
		}
	}
	if req.FullName != nil {
		if err := validation.ValidateFullName(*req.FullName); err != nil {
			fieldErrors = append(fieldErrors, err.Error())
		}
	}
	if len(fieldErrors) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(fieldErrors))
	}

	if err := s.userRepo.UpdateProfile(c.Context(), userID, req); err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			switch appErr.Code {
			case models.CodeValidation:
				return models.RespondWithError(c, fiber.StatusConflict, err)
			case models.CodeNotFound:
				return models.RespondWithError(c, fiber.StatusNotFound, err)
			}
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// SearchUsers handles POST /api/users/search
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Query string `json:"query"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Search query is required"))
	}

	p := parsePagination(c)
	users, err := s.userRepo.Search(c.Context(), req.Query, userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": p.Meta(len(users)),
	})
}

// FollowUser handles POST /api/users/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		FolloweeID uint `json:"followeeId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.FolloweeID == userID {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot follow yourself"))
	}

	followee, err := s.userRepo.GetByID(c.Context(), req.FolloweeID)
	if err != nil || followee == nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("User", req.FolloweeID))
	}

	created, err := s.followRepo.Follow(c.Context(), userID, req.FolloweeID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	message := "Already following"
	if created {
		message = "Now following"
		observability.FollowEvents.WithLabelValues("follow").Inc()
	}

	return c.JSON(fiber.Map{
		"message":  message,
		"username": followee.Username,
	})
}

// UnfollowUser handles DELETE /api/users/unfollow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		FolloweeID uint `json:"followeeId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	removed, err := s.followRepo.Unfollow(c.Context(), userID, req.FolloweeID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if !removed {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Follow", req.FolloweeID))
	}

	observability.FollowEvents.WithLabelValues("unfollow").Inc()

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowing handles GET /api/users/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	p := parsePagination(c)
	entries, err := s.followRepo.Following(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"following":  entries,
		"pagination": p.Meta(len(entries)),
	})
}

// GetFollowers handles GET /api/users/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	p := parsePagination(c)
	entries, err := s.followRepo.Followers(c.Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"followers":  entries,
		"pagination": p.Meta(len(entries)),
	})
}

// GetFollowStats handles GET /api/users/stats
func (s *Server) GetFollowStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	stats, err := s.followRepo.Stats(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(stats)
}
