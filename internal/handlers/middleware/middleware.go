package middleware

import (
	"roaddogs/config"
	"roaddogs/internal/logger"
	"roaddogs/internal/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Middleware struct {
	authService *services.AuthService
	config      config.Config
	log         logger.Logger
}

func New(authService *services.AuthService, config config.Config) Middleware {
	return Middleware{
		authService: authService,
		config:      config,
		log:         logger.New("middleware"),
	}
}

// RequireSession resolves the bearer token to a reviewer session and puts it
// in locals, or rejects with 401.
func (m Middleware) RequireSession(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "missing session token"})
	}

	session, err := m.authService.Resolve(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid or expired session"})
	}

	c.Locals("session", *session)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
