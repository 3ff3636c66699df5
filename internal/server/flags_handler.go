package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetFeatureFlags evaluates every configured flag for the caller. Anonymous
// callers get the anonymous bucket, so percentage rollouts read as off.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	userID, _ := s.optionalUserID(c)
	return c.JSON(fiber.Map{
		"flags": s.flags.Snapshot(userID),
	})
}
