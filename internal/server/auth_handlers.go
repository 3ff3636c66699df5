package server

import (
	"fmt"
	"strconv"
	"time"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// Collect every field violation rather than stopping at the first.
	var fieldErrors []string
	if err := validation.ValidateUsername(req.Username); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if err := validation.ValidateFullName(req.FullName); err != nil {
		fieldErrors = append(fieldErrors, err.Error())
	}
	if len(fieldErrors) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError(fieldErrors))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		FullName: req.FullName,
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		// Username collisions surface here rather than in the email pre-check.
		if appErr, ok := createErr.(*models.AppError); ok && appErr.Code == models.CodeValidation {
			return models.RespondWithError(c, fiber.StatusConflict, createErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.AuthEvents.WithLabelValues("register", "success").Inc()

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		observability.AuthEvents.WithLabelValues("login", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		observability.AuthEvents.WithLabelValues("login", "failure").Inc()
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	observability.AuthEvents.WithLabelValues("login", "success").Inc()

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetProfile handles GET /api/auth/profile
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"user": user})
}

// generateToken creates a JWT token for the given user ID and username.
// Tokens live for 24 hours and cannot be revoked server-side; the only way to
// end a session early is client-side token deletion.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "ripple-api",
		"aud":      "ripple-client",
		"exp":      now.Add(24 * time.Hour).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
