package handlers

import (
	"errors"
	"log"

	"jualsampah/internal/models"
	"jualsampah/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for collector authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleLogin handles collector login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respondBodyError(c, err)
	}

	token, err := h.authService.Login(req)
	if err != nil {
		var validationErrs services.ValidationErrors
		switch {
		case errors.As(err, &validationErrs):
			return c.Status(fiber.StatusBadRequest).JSON(validationErrs)
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Printf("Failed login for collector %s", req.Username)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication failed",
			})
		default:
			log.Printf("Error during login for collector %s: %v", req.Username, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": msgInternalError})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
