package applicationController

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"roaddogs/config"
	"roaddogs/internal/events"
	"roaddogs/internal/forms"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"
	"roaddogs/internal/repositories"
	"roaddogs/internal/storage"
	"roaddogs/internal/utils"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SubmitFailedMessage is the single user-facing message for a persistence
// failure; the session keeps its values and files so the applicant can retry.
const SubmitFailedMessage = "There was an error submitting your application. Please try again."

var (
	ErrNotOnFinalStep   = errors.New("submission is only available on the final step")
	ErrAlreadySubmitted = errors.New("application already submitted")
	ErrUnknownFileSlot  = errors.New("unknown document slot")
	ErrSubmissionFailed = errors.New(SubmitFailedMessage)
)

// ApplicationController orchestrates the five-step form: one session per
// applicant, per-step validation gating, and the terminal submit pipeline.
type ApplicationController struct {
	sessions        *forms.SessionStore
	applicationRepo repositories.ApplicationRepository
	store           storage.ObjectStore
	eventBus        *events.EventBus
	now             func() time.Time
	log             logger.Logger
}

func New(
	applicationRepo repositories.ApplicationRepository,
	store storage.ObjectStore,
	eventBus *events.EventBus,
	config config.Config,
) *ApplicationController {
	return &ApplicationController{
		sessions:        forms.NewSessionStore(time.Duration(config.FormTTLMinutes) * time.Minute),
		applicationRepo: applicationRepo,
		store:           store,
		eventBus:        eventBus,
		now:             time.Now,
		log:             logger.New("ApplicationController"),
	}
}

func (c *ApplicationController) StartSession() *forms.Session {
	session := c.sessions.Create()
	c.log.Function("StartSession").Info("form session started", "token", session.Token)
	return session
}

func (c *ApplicationController) GetSession(token string) (*forms.Session, error) {
	return c.sessions.Get(token)
}

// SetValues merges a partial update into the session record. Values survive
// navigation in both directions; nothing is reset between steps.
func (c *ApplicationController) SetValues(token string, patch forms.ValuesPatch) (*forms.Session, error) {
	session, err := c.sessions.Get(token)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.State == forms.SubmissionSubmitted {
		return nil, ErrAlreadySubmitted
	}

	session.Values.Apply(patch)
	session.UpdatedAt = c.now()

	return session, nil
}

// Advance validates the current step against the full record. On success the
// cursor moves forward (below the final step); on failure it stays put and
// the field errors are returned for rendering.
func (c *ApplicationController) Advance(token string) (*forms.Session, forms.FieldErrors, error) {
	session, err := c.sessions.Get(token)
	if err != nil {
		return nil, nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.State == forms.SubmissionSubmitted {
		return nil, nil, ErrAlreadySubmitted
	}

	fieldErrors := forms.ValidateStep(session.CurrentStep, session.Values, c.now())
	if !fieldErrors.Ok() {
		return session, fieldErrors, nil
	}

	if session.CurrentStep < forms.TotalSteps {
		session.CurrentStep++
	}
	session.UpdatedAt = c.now()

	return session, nil, nil
}

// Retreat never validates; moving backward is always allowed.
func (c *ApplicationController) Retreat(token string) (*forms.Session, error) {
	session, err := c.sessions.Get(token)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.CurrentStep > 1 {
		session.CurrentStep--
	}
	session.UpdatedAt = c.now()

	return session, nil
}

// AttachFile accepts a document into a named slot after the intake checks.
// Replacing an existing attachment is allowed until submission.
func (c *ApplicationController) AttachFile(token string, slot forms.FileSlot, filename string, data []byte) error {
	log := c.log.Function("AttachFile")

	if !slot.Valid() {
		return ErrUnknownFileSlot
	}

	session, err := c.sessions.Get(token)
	if err != nil {
		return err
	}

	if err := forms.CheckFile(filename, int64(len(data))); err != nil {
		return err
	}

	session.Lock()
	defer session.Unlock()

	if session.State == forms.SubmissionSubmitted {
		return ErrAlreadySubmitted
	}

	session.Files[slot] = &forms.Attachment{
		Filename:    filename,
		ContentType: forms.ContentTypeForExt(filename),
		Data:        data,
	}
	session.UpdatedAt = c.now()

	log.Info("file attached", "slot", slot, "filename", filename, "size", len(data))
	return nil
}

func (c *ApplicationController) RemoveFile(token string, slot forms.FileSlot) error {
	if !slot.Valid() {
		return ErrUnknownFileSlot
	}

	session, err := c.sessions.Get(token)
	if err != nil {
		return err
	}

	session.Lock()
	defer session.Unlock()

	if session.State == forms.SubmissionSubmitted {
		return ErrAlreadySubmitted
	}

	delete(session.Files, slot)
	session.UpdatedAt = c.now()

	return nil
}

// Submit runs the terminal pipeline: upload each attachment independently
// (a failed upload degrades to an absent reference, it never aborts), derive
// the age, merge everything into one record with status pending, and insert
// it. A persistence failure leaves the session intact for retry.
func (c *ApplicationController) Submit(ctx context.Context, token string) (*RiderApplication, forms.FieldErrors, error) {
	log := c.log.Function("Submit")

	session, err := c.sessions.Get(token)
	if err != nil {
		return nil, nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.State == forms.SubmissionSubmitted {
		return nil, nil, ErrAlreadySubmitted
	}

	if session.CurrentStep != forms.TotalSteps {
		return nil, nil, ErrNotOnFinalStep
	}

	now := c.now()
	fieldErrors := forms.ValidateAll(session.Values, now)
	if !fieldErrors.Ok() {
		return nil, fieldErrors, nil
	}

	session.State = forms.SubmissionSubmitting

	references := c.uploadDocuments(ctx, session.Files)

	age, _ := utils.CalculateAge(session.Values.DateOfBirth, now)

	application := buildRecord(session.Values, age, references)

	if err := c.applicationRepo.Create(ctx, application); err != nil {
		session.State = forms.SubmissionFailed
		session.SubmitError = SubmitFailedMessage
		log.Er("failed to persist application", err, "email", application.Email)
		return nil, nil, ErrSubmissionFailed
	}

	session.State = forms.SubmissionSubmitted
	session.ApplicationID = application.ID
	session.SubmitError = ""
	// Attachments are uploaded or abandoned at this point, release the bytes.
	for slot := range session.Files {
		session.Files[slot].Data = nil
	}
	session.UpdatedAt = now

	c.publishSubmitted(application)

	log.Info("application submitted", "applicationID", application.ID)
	return application, nil, nil
}

type documentReferences struct {
	idDocument         *string
	healthInsurance    *string
	liabilityInsurance *string
}

// uploadDocuments runs the three slot uploads concurrently. Each writes only
// its own slot, so completion order is irrelevant; a failure leaves that
// reference nil.
func (c *ApplicationController) uploadDocuments(ctx context.Context, files map[forms.FileSlot]*forms.Attachment) documentReferences {
	var refs documentReferences
	var wg sync.WaitGroup

	targets := []struct {
		slot forms.FileSlot
		dest **string
	}{
		{forms.SlotIDDocument, &refs.idDocument},
		{forms.SlotHealthInsuranceDocument, &refs.healthInsurance},
		{forms.SlotLiabilityInsuranceDocument, &refs.liabilityInsurance},
	}

	for _, target := range targets {
		attachment, ok := files[target.slot]
		if !ok || attachment == nil {
			continue
		}

		wg.Add(1)
		go func(slot forms.FileSlot, attachment *forms.Attachment, dest **string) {
			defer wg.Done()
			if reference := c.uploadOne(ctx, slot, attachment); reference != "" {
				*dest = &reference
			}
		}(target.slot, attachment, target.dest)
	}

	wg.Wait()
	return refs
}

func (c *ApplicationController) uploadOne(ctx context.Context, slot forms.FileSlot, attachment *forms.Attachment) string {
	log := c.log.Function("uploadOne")

	ext := strings.ToLower(filepath.Ext(attachment.Filename))
	key := fmt.Sprintf("%s/%s%s", slot.Folder(), uuid.New().String(), ext)

	reference, err := c.store.Upload(ctx, key, attachment.Data, attachment.ContentType)
	if err != nil {
		// Degrade to an absent document, never abort the submission.
		log.Er("document upload failed", err, "slot", slot, "key", key)
		return ""
	}

	return reference
}

func (c *ApplicationController) publishSubmitted(application *RiderApplication) {
	event := events.Event{
		ID:        uuid.New().String(),
		Type:      "application",
		Channel:   "admin",
		Action:    "submitted",
		Data:      map[string]any{"applicationId": application.ID},
		Timestamp: time.Now(),
	}

	if err := c.eventBus.Publish("broadcast", event); err != nil {
		c.log.Function("publishSubmitted").
			Warn("failed to publish submission event", "applicationID", application.ID, "error", err)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func buildRecord(v forms.ApplicationValues, age int, refs documentReferences) *RiderApplication {
	return &RiderApplication{
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		Email:         v.Email,
		Phone:         v.Phone,
		DateOfBirth:   v.DateOfBirth,
		Age:           age,
		AddressStreet: v.AddressStreet,
		AddressCity:   v.AddressCity,
		AddressState:  v.AddressState,
		AddressZip:    v.AddressZip,
		IDNumber:      v.IDNumber,

		EmergencyContactName:         v.EmergencyContactName,
		EmergencyContactPhone:        v.EmergencyContactPhone,
		EmergencyContactRelationship: v.EmergencyContactRelationship,

		HasFelonyConviction:      v.HasFelonyConviction,
		FelonyDetails:            optional(v.FelonyDetails),
		IsOnProbationParole:      v.IsOnProbationParole,
		ProbationParoleDetails:   optional(v.ProbationParoleDetails),
		IsBannedFromCarrier:      v.IsBannedFromCarrier,
		BannedCarrierDetails:     optional(v.BannedCarrierDetails),
		HasMedicalConditions:     v.HasMedicalConditions,
		MedicalConditionsDetails: optional(v.MedicalConditionsDetails),
		CanSitExtendedPeriods:    v.CanSitExtendedPeriods,
		HasMotionSickness:        v.HasMotionSickness,
		TakesMedications:         v.TakesMedications,
		MedicationsDetails:       optional(v.MedicationsDetails),

		WhyCompanionRider:        v.WhyCompanionRider,
		HasTraveledLongDistances: v.HasTraveledLongDistances,
		LongDistanceExperience:   optional(v.LongDistanceExperience),
		OvernightComfortLevel:    v.OvernightComfortLevel,
		ConfinedSpacesComfort:    v.ConfinedSpacesComfort,
		UnderstandsNotRomantic:   v.UnderstandsNotRomantic,

		ConductAcknowledged: v.ConductAcknowledged,
		ConductSignature:    v.ConductSignature,
		ConductDate:         v.ConductDate,

		HealthInsuranceName:      v.HealthInsuranceName,
		HealthInsurancePolicy:    v.HealthInsurancePolicy,
		HealthInsuranceStart:     v.HealthInsuranceStart,
		HealthInsuranceEnd:       v.HealthInsuranceEnd,
		LiabilityInsuranceName:   optional(v.LiabilityInsuranceName),
		LiabilityInsurancePolicy: optional(v.LiabilityInsurancePolicy),
		LiabilityInsuranceStart:  optional(v.LiabilityInsuranceStart),
		LiabilityInsuranceEnd:    optional(v.LiabilityInsuranceEnd),

		IDDocumentURL:                 refs.idDocument,
		HealthInsuranceDocumentURL:    refs.healthInsurance,
		LiabilityInsuranceDocumentURL: refs.liabilityInsurance,

		ApplicationStatus: StatusPending,
	}
}
