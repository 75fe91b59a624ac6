package handlers

import (
	"roaddogs/internal/app"
	adminController "roaddogs/internal/controllers/admin"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		controller: *app.AdminController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireSession)
	admin.Get("/applications", h.listApplications)
	admin.Get("/applications/:id", h.getApplication)
	admin.Patch("/applications/:id/status", h.updateStatus)
}

func (h *AdminHandler) listApplications(c *fiber.Ctx) error {
	log := h.log.Function("listApplications")

	applications, err := h.controller.ListApplications(c.Context())
	if err != nil {
		log.Er("failed to list applications", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to list applications"})
	}

	return c.JSON(fiber.Map{"message": "success", "applications": applications})
}

func (h *AdminHandler) getApplication(c *fiber.Ctx) error {
	log := h.log.Function("getApplication")

	id := c.Params("id")
	detail, err := h.controller.GetApplication(c.Context(), id)
	if err != nil {
		log.Er("failed to get application", err, "id", id)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "application not found"})
	}

	return c.JSON(fiber.Map{
		"message":     "success",
		"application": detail.Application,
		"documents":   detail.Documents,
	})
}

func (h *AdminHandler) updateStatus(c *fiber.Ctx) error {
	log := h.log.Function("updateStatus")

	session := c.Locals("session").(Session)

	var request UpdateStatusRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse status update request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse status update request"})
	}

	if !request.Status.Valid() {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "invalid application status"})
	}

	id := c.Params("id")
	application, err := h.controller.UpdateStatus(c.Context(), session, id, request.Status, request.Notes)
	if err != nil {
		log.Er("failed to update application status", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to update application status"})
	}

	return c.JSON(fiber.Map{"message": "success", "application": application})
}
