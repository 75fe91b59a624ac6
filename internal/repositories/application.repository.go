package repositories

import (
	"context"
	"roaddogs/internal/database"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	APPLICATION_CACHE_EXPIRY = 24 * time.Hour
)

type ApplicationRepository interface {
	GetByID(ctx context.Context, id string) (*RiderApplication, error)
	Create(ctx context.Context, application *RiderApplication) error
	GetAll(ctx context.Context) ([]*RiderApplication, error)
	GetByStatus(ctx context.Context, status ApplicationStatus) ([]*RiderApplication, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus, notes *string) (*RiderApplication, error)
}

type applicationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewApplication(db database.DB) ApplicationRepository {
	return &applicationRepository{
		db:  db,
		log: logger.New("applicationRepository"),
	}
}

func (r *applicationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := database.TransactionFromContext(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*RiderApplication, error) {
	log := r.log.Function("GetByID")

	var application RiderApplication
	if err := r.getCacheByID(ctx, id, &application); err == nil {
		return &application, nil
	}

	if err := r.getDBByID(ctx, id, &application); err != nil {
		return nil, err
	}

	if err := r.addApplicationToCache(ctx, &application); err != nil {
		log.Warn("failed to add application to cache", "applicationID", id, "error", err)
	}

	return &application, nil
}

func (r *applicationRepository) Create(ctx context.Context, application *RiderApplication) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(application).Error; err != nil {
		return log.Err("failed to create application", err, "email", application.Email)
	}

	if err := r.addApplicationToCache(ctx, application); err != nil {
		log.Warn("failed to add application to cache", "applicationID", application.ID, "error", err)
	}

	return nil
}

func (r *applicationRepository) GetAll(ctx context.Context) ([]*RiderApplication, error) {
	log := r.log.Function("GetAll")

	var applications []*RiderApplication
	if err := r.getDB(ctx).Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, log.Err("failed to get all applications", err)
	}

	return applications, nil
}

func (r *applicationRepository) GetByStatus(ctx context.Context, status ApplicationStatus) ([]*RiderApplication, error) {
	log := r.log.Function("GetByStatus")

	var applications []*RiderApplication
	if err := r.getDB(ctx).Where("application_status = ?", status).
		Order("created_at DESC").Find(&applications).Error; err != nil {
		return nil, log.Err("failed to get applications by status", err, "status", status)
	}

	return applications, nil
}

func (r *applicationRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status ApplicationStatus,
	notes *string,
) (*RiderApplication, error) {
	log := r.log.Function("UpdateStatus")

	if !status.Valid() {
		return nil, log.Error("invalid application status", "status", status)
	}

	var application RiderApplication
	if err := r.getDBByID(ctx, id, &application); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]any{
		"application_status": status,
		"reviewed_at":        now,
	}
	if notes != nil {
		updates["admin_notes"] = *notes
	}

	if err := r.getDB(ctx).Model(&application).Updates(updates).Error; err != nil {
		return nil, log.Err("failed to update application status", err, "id", id, "status", status)
	}

	application.ApplicationStatus = status
	application.ReviewedAt = &now
	if notes != nil {
		application.AdminNotes = notes
	}

	if err := r.addApplicationToCache(ctx, &application); err != nil {
		log.Warn("failed to update application in cache", "applicationID", id, "error", err)
	}

	return &application, nil
}

func (r *applicationRepository) getCacheByID(ctx context.Context, applicationID string, application *RiderApplication) error {
	found, err := database.NewCacheBuilder(r.db.Cache.Application, applicationID).
		WithContext(ctx).
		Get(application)
	if err != nil {
		return r.log.Function("getCacheByID").
			Err("failed to get application from cache", err, "applicationID", applicationID)
	}

	if !found {
		return r.log.Function("getCacheByID").
			Error("application not found in cache", "applicationID", applicationID)
	}

	return nil
}

func (r *applicationRepository) addApplicationToCache(ctx context.Context, application *RiderApplication) error {
	if err := database.NewCacheBuilder(r.db.Cache.Application, application.ID).
		WithStruct(application).
		WithTTL(APPLICATION_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addApplicationToCache").
			Err("failed to add application to cache", err, "applicationID", application.ID)
	}
	return nil
}

func (r *applicationRepository) getDBByID(ctx context.Context, applicationID string, application *RiderApplication) error {
	log := r.log.Function("getDBByID")

	id, err := uuid.Parse(applicationID)
	if err != nil {
		return log.Err("failed to parse applicationID", err, "applicationID", applicationID)
	}

	if err := r.getDB(ctx).First(application, "id = ?", id.String()).Error; err != nil {
		return log.Err("failed to get application by id", err, "id", applicationID)
	}

	return nil
}
