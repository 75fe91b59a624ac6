package adminController

import (
	"context"
	"roaddogs/config"
	"roaddogs/internal/events"
	"roaddogs/internal/logger"
	"roaddogs/internal/repositories"
	"roaddogs/internal/storage"
	"time"

	. "roaddogs/internal/models"

	"github.com/google/uuid"
)

// AdminController backs the review console: list applications newest-first,
// show one with time-limited document links, and move it through the status
// workflow.
type AdminController struct {
	applicationRepo repositories.ApplicationRepository
	store           storage.ObjectStore
	eventBus        *events.EventBus
	Config          config.Config
	log             logger.Logger
}

func New(
	applicationRepo repositories.ApplicationRepository,
	store storage.ObjectStore,
	eventBus *events.EventBus,
	config config.Config,
) *AdminController {
	return &AdminController{
		applicationRepo: applicationRepo,
		store:           store,
		eventBus:        eventBus,
		Config:          config,
		log:             logger.New("AdminController"),
	}
}

// DocumentLinks carries the signed download URLs for one application's
// documents; a nil entry means no document was stored in that slot.
type DocumentLinks struct {
	IDDocument         *string `json:"idDocument,omitempty"`
	HealthInsurance    *string `json:"healthInsurance,omitempty"`
	LiabilityInsurance *string `json:"liabilityInsurance,omitempty"`
}

type ApplicationDetail struct {
	Application *RiderApplication `json:"application"`
	Documents   DocumentLinks     `json:"documents"`
}

func (c *AdminController) ListApplications(ctx context.Context) ([]*RiderApplication, error) {
	applications, err := c.applicationRepo.GetAll(ctx)
	if err != nil {
		return nil, c.log.Function("ListApplications").
			Err("failed to list applications", err)
	}

	return applications, nil
}

// GetApplication resolves the stored document references into 1-hour signed
// URLs. When signing fails the raw reference is returned instead so the
// console still shows something actionable.
func (c *AdminController) GetApplication(ctx context.Context, id string) (*ApplicationDetail, error) {
	application, err := c.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ApplicationDetail{
		Application: application,
		Documents: DocumentLinks{
			IDDocument:         c.signDocument(ctx, application.IDDocumentURL),
			HealthInsurance:    c.signDocument(ctx, application.HealthInsuranceDocumentURL),
			LiabilityInsurance: c.signDocument(ctx, application.LiabilityInsuranceDocumentURL),
		},
	}

	return detail, nil
}

func (c *AdminController) signDocument(ctx context.Context, reference *string) *string {
	if reference == nil || *reference == "" {
		return nil
	}

	url, err := c.store.SignedURL(ctx, *reference, storage.SignedURLTTL)
	if err != nil {
		// Fall back to the raw reference.
		c.log.Function("signDocument").
			Warn("failed to sign document URL", "reference", *reference, "error", err)
		return reference
	}

	return &url
}

// UpdateStatus sets any of the four statuses with an optional note. The
// workflow is deliberately permissive: any status may follow any other.
func (c *AdminController) UpdateStatus(
	ctx context.Context,
	reviewer Session,
	id string,
	status ApplicationStatus,
	notes *string,
) (*RiderApplication, error) {
	log := c.log.Function("UpdateStatus")

	application, err := c.applicationRepo.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return nil, err
	}

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "application",
		Channel:   "admin",
		Action:    "reviewed",
		UserID:    reviewer.UserID,
		Data:      map[string]any{"applicationId": id, "status": string(status)},
		Timestamp: time.Now(),
	}
	if err := c.eventBus.Publish("broadcast", event); err != nil {
		log.Warn("failed to publish review event", "applicationID", id, "error", err)
	}

	log.Info("application status updated", "applicationID", id, "status", status, "reviewer", reviewer.Username)
	return application, nil
}
