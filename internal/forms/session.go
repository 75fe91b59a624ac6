package forms

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "idle"
	SubmissionSubmitting SubmissionState = "submitting"
	SubmissionSubmitted  SubmissionState = "submitted"
	SubmissionFailed     SubmissionState = "failed"
)

var (
	ErrSessionNotFound = errors.New("form session not found")
	ErrSessionExpired  = errors.New("form session expired")
)

// Session is one applicant's in-progress form: the step cursor, the full
// value record, and the attachments held in memory until submission. A
// session is owned by a single applicant; the store lock only guards the
// lookup table.
type Session struct {
	Token         string
	CurrentStep   int
	Values        ApplicationValues
	Files         map[FileSlot]*Attachment
	State         SubmissionState
	SubmitError   string
	ApplicationID string
	UpdatedAt     time.Time

	mu sync.Mutex
}

// Lock serializes operations on one session so a retried submit cannot race
// a concurrent field update.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// SessionStore keeps live form sessions in memory. Attachments never leave
// process memory before upload, so the store is not cache-backed.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (st *SessionStore) Create() *Session {
	now := st.now()
	session := &Session{
		Token:       uuid.New().String(),
		CurrentStep: 1,
		Values:      DefaultValues(now),
		Files:       make(map[FileSlot]*Attachment),
		State:       SubmissionIdle,
		UpdatedAt:   now,
	}

	st.mu.Lock()
	st.sweepLocked(now)
	st.sessions[session.Token] = session
	st.mu.Unlock()

	return session
}

func (st *SessionStore) Get(token string) (*Session, error) {
	st.mu.RLock()
	session, ok := st.sessions[token]
	st.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if st.now().Sub(session.UpdatedAt) > st.ttl {
		st.mu.Lock()
		delete(st.sessions, token)
		st.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return session, nil
}

func (st *SessionStore) Delete(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// sweepLocked drops expired sessions; called with the write lock held.
func (st *SessionStore) sweepLocked(now time.Time) {
	for token, session := range st.sessions {
		if now.Sub(session.UpdatedAt) > st.ttl {
			delete(st.sessions, token)
		}
	}
}
