package adminController

import (
	"context"
	"errors"
	"testing"
	"time"

	"roaddogs/config"
	"roaddogs/internal/database"
	"roaddogs/internal/events"
	. "roaddogs/internal/models"
	"roaddogs/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeSigner struct {
	signErr bool
}

func (s *fakeSigner) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return key, nil
}

func (s *fakeSigner) SignedURL(ctx context.Context, reference string, ttl time.Duration) (string, error) {
	if s.signErr {
		return "", errors.New("simulated signing failure")
	}
	return "https://signed.example/" + reference, nil
}

func newAdminFixture(t *testing.T, signer *fakeSigner) (*AdminController, repositories.ApplicationRepository) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&RiderApplication{}))

	repo := repositories.NewApplication(database.DB{SQL: gormDB})
	bus := events.New(nil, config.Config{})

	return New(repo, signer, bus, config.Config{}), repo
}

func storedApplication(t *testing.T, repo repositories.ApplicationRepository, idRef, healthRef *string) *RiderApplication {
	t.Helper()

	application := &RiderApplication{
		FirstName:                  "Jane",
		LastName:                   "Doe",
		Email:                      "jane@example.com",
		Phone:                      "5551234567",
		DateOfBirth:                "1990-03-10",
		Age:                        35,
		WhyCompanionRider:          "Long haul trips with my uncle got me hooked on the road.",
		OvernightComfortLevel:      "comfortable",
		ConductSignature:           "Jane Doe",
		ConductDate:                "2025-06-01",
		HealthInsuranceName:        "Acme Health",
		HealthInsurancePolicy:      "POL-99881",
		IDDocumentURL:              idRef,
		HealthInsuranceDocumentURL: healthRef,
		ApplicationStatus:          StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), application))
	return application
}

func TestGetApplication_SignsStoredDocuments(t *testing.T) {
	controller, repo := newAdminFixture(t, &fakeSigner{})

	idRef := "id-documents/abc.jpg"
	application := storedApplication(t, repo, &idRef, nil)

	detail, err := controller.GetApplication(context.Background(), application.ID)
	require.NoError(t, err)

	require.NotNil(t, detail.Documents.IDDocument)
	assert.Equal(t, "https://signed.example/id-documents/abc.jpg", *detail.Documents.IDDocument)
	assert.Nil(t, detail.Documents.HealthInsurance)
	assert.Nil(t, detail.Documents.LiabilityInsurance)
}

// A signing failure degrades to the raw stored reference, never an error.
func TestGetApplication_SignFailureFallsBack(t *testing.T) {
	controller, repo := newAdminFixture(t, &fakeSigner{signErr: true})

	idRef := "id-documents/abc.jpg"
	application := storedApplication(t, repo, &idRef, nil)

	detail, err := controller.GetApplication(context.Background(), application.ID)
	require.NoError(t, err)

	require.NotNil(t, detail.Documents.IDDocument)
	assert.Equal(t, idRef, *detail.Documents.IDDocument)
}

func TestGetApplication_Unknown(t *testing.T) {
	controller, _ := newAdminFixture(t, &fakeSigner{})

	_, err := controller.GetApplication(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}

func TestListApplications(t *testing.T) {
	controller, repo := newAdminFixture(t, &fakeSigner{})

	storedApplication(t, repo, nil, nil)
	storedApplication(t, repo, nil, nil)

	listed, err := controller.ListApplications(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestUpdateStatus(t *testing.T) {
	controller, repo := newAdminFixture(t, &fakeSigner{})
	application := storedApplication(t, repo, nil, nil)

	reviewer := Session{Token: "tok", UserID: "user-1", Username: "reviewer"}
	notes := "Looks solid."

	updated, err := controller.UpdateStatus(context.Background(), reviewer, application.ID, StatusApproved, &notes)
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, updated.ApplicationStatus)
	require.NotNil(t, updated.ReviewedAt)
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, notes, *updated.AdminNotes)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	controller, repo := newAdminFixture(t, &fakeSigner{})
	application := storedApplication(t, repo, nil, nil)

	reviewer := Session{Token: "tok", UserID: "user-1", Username: "reviewer"}

	_, err := controller.UpdateStatus(context.Background(), reviewer, application.ID, ApplicationStatus("archived"), nil)
	assert.Error(t, err)
}
