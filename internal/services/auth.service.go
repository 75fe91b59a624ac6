package services

import (
	"context"
	"errors"
	"roaddogs/config"
	"roaddogs/internal/database"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"
	"roaddogs/internal/repositories"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
)

// AuthService verifies reviewer credentials against stored bcrypt hashes and
// hands out opaque session tokens kept in the session cache.
type AuthService struct {
	db         database.DB
	userRepo   repositories.UserRepository
	sessionTTL time.Duration
	log        logger.Logger
}

func NewAuthService(db database.DB, userRepo repositories.UserRepository, config config.Config) *AuthService {
	ttl := time.Duration(config.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &AuthService{
		db:         db,
		userRepo:   userRepo,
		sessionTTL: ttl,
		log:        logger.New("AuthService"),
	}
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	log := s.log.Function("Authenticate")

	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrUserNotFound) {
		// Burn a comparison anyway so missing and wrong-password lookups
		// take comparable time.
		_ = bcrypt.CompareHashAndPassword(
			[]byte("$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZBlhSmUIc9CKAUOM0pvLW0ehQ9eTkW"),
			[]byte(password),
		)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, log.Err("failed to look up user", err, "username", username)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token:    uuid.New().String(),
		UserID:   user.ID,
		Username: user.Username,
	}

	if err := database.NewCacheBuilder(s.db.Cache.Session, session.Token).
		WithStruct(session).
		WithTTL(s.sessionTTL).
		WithContext(ctx).
		Set(); err != nil {
		return nil, log.Err("failed to store session", err, "userID", user.ID)
	}

	log.Info("reviewer authenticated", "username", user.Username)
	return session, nil
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session Session
	found, err := database.NewCacheBuilder(s.db.Cache.Session, token).
		WithContext(ctx).
		Get(&session)
	if err != nil {
		return nil, s.log.Function("Resolve").Err("failed to get session", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

func (s *AuthService) Revoke(ctx context.Context, token string) error {
	if err := database.NewCacheBuilder(s.db.Cache.Session, token).
		WithContext(ctx).
		Delete(); err != nil {
		return s.log.Function("Revoke").Err("failed to revoke session", err)
	}
	return nil
}

// HashPassword is used by seeding and account creation.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
