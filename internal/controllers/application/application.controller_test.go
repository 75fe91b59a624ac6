package applicationController

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"roaddogs/config"
	"roaddogs/internal/database"
	"roaddogs/internal/events"
	"roaddogs/internal/forms"
	. "roaddogs/internal/models"
	"roaddogs/internal/repositories"
	"roaddogs/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeStore stands in for object storage; uploads whose key starts with a
// failing prefix simulate a transport error.
type fakeStore struct {
	mu           sync.Mutex
	uploads      map[string][]byte
	failPrefixes []string
}

func newFakeStore(failPrefixes ...string) *fakeStore {
	return &fakeStore{
		uploads:      make(map[string][]byte),
		failPrefixes: failPrefixes,
	}
}

func (s *fakeStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, prefix := range s.failPrefixes {
		if strings.HasPrefix(key, prefix) {
			return "", errors.New("simulated transport error")
		}
	}

	s.uploads[key] = data
	return key, nil
}

func (s *fakeStore) SignedURL(ctx context.Context, reference string, ttl time.Duration) (string, error) {
	return "https://signed.example/" + reference, nil
}

func (s *fakeStore) uploadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.uploads)
}

// flakyRepository fails a configurable number of Create calls before
// delegating, to exercise the retry path.
type flakyRepository struct {
	repositories.ApplicationRepository
	failures int
}

func (r *flakyRepository) Create(ctx context.Context, application *RiderApplication) error {
	if r.failures > 0 {
		r.failures--
		return errors.New("simulated insert failure")
	}
	return r.ApplicationRepository.Create(ctx, application)
}

func newTestRepository(t *testing.T) repositories.ApplicationRepository {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&RiderApplication{}))

	return repositories.NewApplication(database.DB{SQL: gormDB})
}

func newTestController(t *testing.T, repo repositories.ApplicationRepository, store *fakeStore) *ApplicationController {
	t.Helper()
	bus := events.New(nil, config.Config{})
	return New(repo, store, bus, config.Config{FormTTLMinutes: 60})
}

func validValues() forms.ApplicationValues {
	return forms.ApplicationValues{
		FirstName:                    "Jane",
		LastName:                     "Doe",
		Email:                        "jane.doe@example.com",
		Phone:                        "5551234567",
		DateOfBirth:                  "1990-03-10",
		AddressStreet:                "123 Main Street",
		AddressCity:                  "Austin",
		AddressState:                 "TX",
		AddressZip:                   "78701",
		IDNumber:                     "TX1234567",
		EmergencyContactName:         "John Doe",
		EmergencyContactPhone:        "5557654321",
		EmergencyContactRelationship: "spouse",
		CanSitExtendedPeriods:        true,
		WhyCompanionRider:            strings.Repeat("The open road has always called to me. ", 2),
		OvernightComfortLevel:        "comfortable",
		ConfinedSpacesComfort:        true,
		UnderstandsNotRomantic:       true,
		ConductAcknowledged:          true,
		ConductSignature:             "Jane Doe",
		ConductDate:                  "2025-06-01",
		HealthInsuranceName:          "Acme Health",
		HealthInsurancePolicy:        "POL-99881",
		HealthInsuranceStart:         "2025-01-01",
		HealthInsuranceEnd:           "2025-12-31",
	}
}

// driveToFinalStep fills the record and advances through every gate.
func driveToFinalStep(t *testing.T, controller *ApplicationController) *forms.Session {
	t.Helper()

	session := controller.StartSession()
	session.Values = validValues()

	for step := 1; step < forms.TotalSteps; step++ {
		_, fieldErrors, err := controller.Advance(session.Token)
		require.NoError(t, err)
		require.True(t, fieldErrors.Ok(), "step %d unexpectedly failed: %v", step, fieldErrors)
	}

	require.Equal(t, forms.TotalSteps, session.CurrentStep)
	return session
}

func TestAdvance_ValidationGatesStep(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())

	session := controller.StartSession()

	// A fresh session fails the personal step and stays on step 1.
	_, fieldErrors, err := controller.Advance(session.Token)
	require.NoError(t, err)
	assert.False(t, fieldErrors.Ok())
	assert.Contains(t, fieldErrors, "first_name")
	assert.Equal(t, 1, session.CurrentStep)
}

func TestNavigation_PreservesValues(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())

	session := controller.StartSession()
	session.Values = validValues()

	// Forward to step 3.
	for i := 0; i < 2; i++ {
		_, fieldErrors, err := controller.Advance(session.Token)
		require.NoError(t, err)
		require.True(t, fieldErrors.Ok())
	}
	require.Equal(t, 3, session.CurrentStep)

	// Back to step 2, then forward again.
	_, err := controller.Retreat(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, session.CurrentStep)

	_, fieldErrors, err := controller.Advance(session.Token)
	require.NoError(t, err)
	require.True(t, fieldErrors.Ok())
	assert.Equal(t, 3, session.CurrentStep)

	// Nothing entered on any step was discarded.
	assert.Equal(t, "Jane", session.Values.FirstName)
	assert.NotEmpty(t, session.Values.WhyCompanionRider)
	assert.Equal(t, "Acme Health", session.Values.HealthInsuranceName)
}

func TestRetreat_StopsAtFirstStep(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())
	session := controller.StartSession()

	_, err := controller.Retreat(session.Token)
	require.NoError(t, err)
	assert.Equal(t, 1, session.CurrentStep)
}

func TestSubmit_RequiresFinalStep(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())
	session := controller.StartSession()

	_, _, err := controller.Submit(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrNotOnFinalStep)
}

func TestSubmit_NoFiles(t *testing.T) {
	repo := newTestRepository(t)
	controller := newTestController(t, repo, newFakeStore())

	session := driveToFinalStep(t, controller)

	application, fieldErrors, err := controller.Submit(context.Background(), session.Token)
	require.NoError(t, err)
	require.True(t, fieldErrors.Ok())
	require.NotNil(t, application)

	assert.Nil(t, application.IDDocumentURL)
	assert.Nil(t, application.HealthInsuranceDocumentURL)
	assert.Nil(t, application.LiabilityInsuranceDocumentURL)
	assert.Equal(t, StatusPending, application.ApplicationStatus)
	assert.Equal(t, forms.SubmissionSubmitted, session.State)
}

func TestSubmit_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	controller := newTestController(t, repo, newFakeStore())

	session := driveToFinalStep(t, controller)

	application, _, err := controller.Submit(context.Background(), session.Token)
	require.NoError(t, err)

	listed, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)

	persisted := listed[0]
	assert.Equal(t, application.ID, persisted.ID)
	assert.Equal(t, "Jane", persisted.FirstName)
	assert.Equal(t, "Doe", persisted.LastName)
	assert.Equal(t, "jane.doe@example.com", persisted.Email)
	assert.Equal(t, "1990-03-10", persisted.DateOfBirth)
	assert.Equal(t, "comfortable", persisted.OvernightComfortLevel)
	assert.Equal(t, StatusPending, persisted.ApplicationStatus)

	expectedAge, ok := utils.CalculateAge("1990-03-10", time.Now())
	require.True(t, ok)
	assert.Equal(t, expectedAge, persisted.Age)
}

func TestSubmit_PartialUploadFailure(t *testing.T) {
	repo := newTestRepository(t)
	// Identity uploads fail, everything else succeeds.
	store := newFakeStore(forms.SlotIDDocument.Folder() + "/")
	controller := newTestController(t, repo, store)

	session := driveToFinalStep(t, controller)

	require.NoError(t, controller.AttachFile(session.Token, forms.SlotIDDocument, "license.jpg", []byte("jpg-bytes")))
	require.NoError(t, controller.AttachFile(session.Token, forms.SlotHealthInsuranceDocument, "card.pdf", []byte("pdf-bytes")))

	application, fieldErrors, err := controller.Submit(context.Background(), session.Token)
	require.NoError(t, err)
	require.True(t, fieldErrors.Ok())

	assert.Nil(t, application.IDDocumentURL)
	require.NotNil(t, application.HealthInsuranceDocumentURL)
	assert.True(t, strings.HasPrefix(*application.HealthInsuranceDocumentURL, "health-insurance/"))
	assert.Nil(t, application.LiabilityInsuranceDocumentURL)

	// Exactly one object landed in storage and exactly one row was written.
	assert.Equal(t, 1, store.uploadCount())
	listed, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSubmit_PersistenceFailureAllowsRetry(t *testing.T) {
	repo := &flakyRepository{ApplicationRepository: newTestRepository(t), failures: 1}
	controller := newTestController(t, repo, newFakeStore())

	session := driveToFinalStep(t, controller)
	require.NoError(t, controller.AttachFile(session.Token, forms.SlotHealthInsuranceDocument, "card.pdf", []byte("pdf-bytes")))

	_, _, err := controller.Submit(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Equal(t, forms.SubmissionFailed, session.State)

	// Nothing was lost: the values and the attachment survive the failure.
	assert.Equal(t, "Jane", session.Values.FirstName)
	require.Contains(t, session.Files, forms.SlotHealthInsuranceDocument)
	assert.NotEmpty(t, session.Files[forms.SlotHealthInsuranceDocument].Data)

	application, fieldErrors, err := controller.Submit(context.Background(), session.Token)
	require.NoError(t, err)
	require.True(t, fieldErrors.Ok())
	assert.Equal(t, StatusPending, application.ApplicationStatus)
	assert.Equal(t, forms.SubmissionSubmitted, session.State)
}

func TestSubmit_SecondSubmitRejected(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())

	session := driveToFinalStep(t, controller)

	_, _, err := controller.Submit(context.Background(), session.Token)
	require.NoError(t, err)

	_, _, err = controller.Submit(context.Background(), session.Token)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmit_ValidatesFullRecord(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())

	session := driveToFinalStep(t, controller)

	// Sabotage an earlier step after passing its gate.
	empty := ""
	_, err := controller.SetValues(session.Token, forms.ValuesPatch{FirstName: &empty})
	require.NoError(t, err)

	application, fieldErrors, err := controller.Submit(context.Background(), session.Token)
	require.NoError(t, err)
	assert.Nil(t, application)
	assert.Contains(t, fieldErrors, "first_name")
	assert.Equal(t, forms.TotalSteps, session.CurrentStep)
}

func TestAttachFile_IntakeRules(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())
	session := controller.StartSession()

	err := controller.AttachFile(session.Token, forms.SlotIDDocument, "malware.exe", []byte("x"))
	assert.Error(t, err)

	err = controller.AttachFile(session.Token, forms.SlotIDDocument, "big.pdf", make([]byte, forms.MaxFileSizeBytes+1))
	assert.Error(t, err)

	err = controller.AttachFile(session.Token, forms.FileSlot("resume"), "cv.pdf", []byte("x"))
	assert.ErrorIs(t, err, ErrUnknownFileSlot)

	err = controller.AttachFile(session.Token, forms.SlotIDDocument, "license.png", []byte("png-bytes"))
	assert.NoError(t, err)

	require.NoError(t, controller.RemoveFile(session.Token, forms.SlotIDDocument))
	assert.NotContains(t, session.Files, forms.SlotIDDocument)
}

func TestSessionLifecycle_UnknownToken(t *testing.T) {
	controller := newTestController(t, newTestRepository(t), newFakeStore())

	_, _, err := controller.Advance("missing")
	assert.ErrorIs(t, err, forms.ErrSessionNotFound)

	_, err = controller.Retreat("missing")
	assert.ErrorIs(t, err, forms.ErrSessionNotFound)

	_, _, err = controller.Submit(context.Background(), "missing")
	assert.ErrorIs(t, err, forms.ErrSessionNotFound)
}
