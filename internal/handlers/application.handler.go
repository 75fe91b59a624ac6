package handlers

import (
	"errors"
	"io"
	"roaddogs/internal/app"
	applicationController "roaddogs/internal/controllers/application"
	"roaddogs/internal/forms"
	"roaddogs/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	Handler
	controller applicationController.ApplicationController
}

func NewApplicationHandler(app app.App, router fiber.Router) *ApplicationHandler {
	log := logger.New("handlers").File("application_handler")
	return &ApplicationHandler{
		controller: *app.ApplicationController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ApplicationHandler) Register() {
	applications := h.router.Group("/applications")
	applications.Post("/", h.startSession)
	applications.Get("/:token", h.getSession)
	applications.Patch("/:token", h.setValues)
	applications.Post("/:token/advance", h.advance)
	applications.Post("/:token/retreat", h.retreat)
	applications.Put("/:token/files/:slot", h.attachFile)
	applications.Delete("/:token/files/:slot", h.removeFile)
	applications.Post("/:token/submit", h.submit)
}

type attachmentInfo struct {
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

type sessionSnapshot struct {
	Token         string                            `json:"token"`
	CurrentStep   int                               `json:"currentStep"`
	TotalSteps    int                               `json:"totalSteps"`
	Values        forms.ApplicationValues           `json:"values"`
	Files         map[forms.FileSlot]attachmentInfo `json:"files"`
	State         forms.SubmissionState             `json:"state"`
	SubmitError   string                            `json:"submitError,omitempty"`
	ApplicationID string                            `json:"applicationId,omitempty"`
}

func snapshot(session *forms.Session) sessionSnapshot {
	files := make(map[forms.FileSlot]attachmentInfo, len(session.Files))
	for slot, attachment := range session.Files {
		files[slot] = attachmentInfo{
			Filename: attachment.Filename,
			Size:     len(attachment.Data),
		}
	}

	return sessionSnapshot{
		Token:         session.Token,
		CurrentStep:   session.CurrentStep,
		TotalSteps:    forms.TotalSteps,
		Values:        session.Values,
		Files:         files,
		State:         session.State,
		SubmitError:   session.SubmitError,
		ApplicationID: session.ApplicationID,
	}
}

func (h *ApplicationHandler) startSession(c *fiber.Ctx) error {
	session := h.controller.StartSession()
	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "session": snapshot(session)})
}

func (h *ApplicationHandler) getSession(c *fiber.Ctx) error {
	session, err := h.controller.GetSession(c.Params("token"))
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "session": snapshot(session)})
}

func (h *ApplicationHandler) setValues(c *fiber.Ctx) error {
	log := h.log.Function("setValues")

	var patch forms.ValuesPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Er("failed to parse values patch", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse form values"})
	}

	session, err := h.controller.SetValues(c.Params("token"), patch)
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "session": snapshot(session)})
}

func (h *ApplicationHandler) advance(c *fiber.Ctx) error {
	session, fieldErrors, err := h.controller.Advance(c.Params("token"))
	if err != nil {
		return sessionError(c, err)
	}

	if !fieldErrors.Ok() {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "validation failed", "errors": fieldErrors, "session": snapshot(session)})
	}

	return c.JSON(fiber.Map{"message": "success", "session": snapshot(session)})
}

func (h *ApplicationHandler) retreat(c *fiber.Ctx) error {
	session, err := h.controller.Retreat(c.Params("token"))
	if err != nil {
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success", "session": snapshot(session)})
}

func (h *ApplicationHandler) attachFile(c *fiber.Ctx) error {
	log := h.log.Function("attachFile")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "missing file upload"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Er("failed to open uploaded file", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to read file upload"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Er("failed to read uploaded file", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to read file upload"})
	}

	slot := forms.FileSlot(c.Params("slot"))
	if err := h.controller.AttachFile(c.Params("token"), slot, fileHeader.Filename, data); err != nil {
		switch {
		case errors.Is(err, forms.ErrSessionNotFound), errors.Is(err, forms.ErrSessionExpired),
			errors.Is(err, applicationController.ErrAlreadySubmitted):
			return sessionError(c, err)
		case errors.Is(err, applicationController.ErrUnknownFileSlot):
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "unknown document slot"})
		default:
			// Intake rejection, reported next to the upload control.
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *ApplicationHandler) removeFile(c *fiber.Ctx) error {
	slot := forms.FileSlot(c.Params("slot"))
	if err := h.controller.RemoveFile(c.Params("token"), slot); err != nil {
		if errors.Is(err, applicationController.ErrUnknownFileSlot) {
			return c.Status(fiber.StatusNotFound).
				JSON(fiber.Map{"message": "unknown document slot"})
		}
		return sessionError(c, err)
	}

	return c.JSON(fiber.Map{"message": "success"})
}

func (h *ApplicationHandler) submit(c *fiber.Ctx) error {
	log := h.log.Function("submit")

	application, fieldErrors, err := h.controller.Submit(c.Context(), c.Params("token"))
	if err != nil {
		switch {
		case errors.Is(err, applicationController.ErrSubmissionFailed):
			return c.Status(fiber.StatusBadGateway).
				JSON(fiber.Map{"message": applicationController.SubmitFailedMessage})
		case errors.Is(err, applicationController.ErrNotOnFinalStep):
			return c.Status(fiber.StatusConflict).
				JSON(fiber.Map{"message": "complete all steps before submitting"})
		default:
			return sessionError(c, err)
		}
	}

	if !fieldErrors.Ok() {
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(fiber.Map{"message": "validation failed", "errors": fieldErrors})
	}

	log.Info("application submitted", "applicationID", application.ID)
	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "applicationId": application.ID})
}

func sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, forms.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "form session not found"})
	case errors.Is(err, forms.ErrSessionExpired):
		return c.Status(fiber.StatusGone).
			JSON(fiber.Map{"message": "form session expired"})
	case errors.Is(err, applicationController.ErrAlreadySubmitted):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"message": "application already submitted"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": err.Error()})
	}
}
