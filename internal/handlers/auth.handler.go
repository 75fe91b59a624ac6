package handlers

import (
	"errors"
	"roaddogs/internal/app"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"
	"roaddogs/internal/services"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authService *services.AuthService
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		authService: app.AuthService,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	session, err := h.authService.Authenticate(c.Context(), loginRequest.Username, loginRequest.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "invalid credentials"})
	}
	if err != nil {
		log.Er("failed to authenticate", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to authenticate"})
	}

	return c.JSON(fiber.Map{"message": "success", "token": session.Token, "username": session.Username})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return c.JSON(fiber.Map{"message": "success"})
	}

	if err := h.authService.Revoke(c.Context(), strings.TrimPrefix(header, "Bearer ")); err != nil {
		log.Er("failed to revoke session", err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}
