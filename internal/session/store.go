// Package session holds the process-wide authentication state: the bearer
// token and the current user, hydrated from persisted storage and owned
// exclusively by the auth mutations. The only legal transitions are
// Anonymous -> Authenticated (login/register) and Authenticated ->
// Anonymous (logout or detected token expiry).
package session

import (
	"log/slog"
	"sync"
	"time"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
	"afisha/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Store is the single owner of the session state. Reads are synchronous;
// writes happen only through Set and Clear.
type Store struct {
	mu           sync.RWMutex
	token        string
	user         *entity.User
	selectedCity string

	storage service.StateStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore creates an unhydrated session store. Call Init before use.
func NewStore(storage service.StateStorage, logger *slog.Logger) *Store {
	return &Store{
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// Init hydrates the store from persisted local state. Absent or unreadable
// state, or a token that is already expired, starts the process Anonymous.
// The persisted copy is untrusted; authorization stays with the backend.
func (s *Store) Init() error {
	state, err := s.storage.Load()
	if err != nil {
		if errors.Is(err, service.ErrStateNotFound) {
			return nil
		}

		return errors.Wrap(err, "hydrate session state")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.selectedCity = state.SelectedCity

	if state.Token == "" || state.User == nil {
		return nil
	}
	if tokenExpired(state.Token, s.now()) {
		s.logger.Info("Persisted token already expired, starting anonymous")

		return nil
	}

	s.token = state.Token
	s.user = state.User

	return nil
}

// Set installs a new authenticated session. The state is persisted first;
// if persistence fails, the in-memory store is left untouched so callers
// observe the transition atomically or not at all.
func (s *Store) Set(token string, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &service.ClientState{
		Token:        token,
		User:         user,
		SelectedCity: s.selectedCity,
	}
	if err := s.storage.Save(next); err != nil {
		return errors.Wrap(err, "persist session")
	}

	s.token = token
	s.user = user

	return nil
}

// Clear resets the store to Anonymous and wipes the persisted token and
// user. The selected city survives logout; it is not viewer-scoped.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil

	next := &service.ClientState{SelectedCity: s.selectedCity}
	if err := s.storage.Save(next); err != nil {
		return errors.Wrap(err, "persist cleared session")
	}

	return nil
}

// Token returns the bearer token, empty when Anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Current returns the logged-in user, nil when Anonymous.
func (s *Store) Current() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.user
}

// Authenticated reports whether a session is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != "" && s.user != nil
}

// Role returns the viewer's role, RoleGuest when Anonymous.
func (s *Store) Role() entity.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return entity.RoleGuest
	}

	return s.user.Role
}

// SelectedCity returns the persisted city slug, empty when none chosen.
func (s *Store) SelectedCity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selectedCity
}

// SetSelectedCity persists the chosen city slug alongside the session.
func (s *Store) SetSelectedCity(slug string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := &service.ClientState{
		Token:        s.token,
		User:         s.user,
		SelectedCity: slug,
	}
	if err := s.storage.Save(next); err != nil {
		return errors.Wrap(err, "persist selected city")
	}

	s.selectedCity = slug

	return nil
}

// tokenExpired inspects the JWT exp claim without verifying the signature;
// the client has no signing secret and only needs to avoid presenting a
// token the backend is guaranteed to reject.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens are passed through; the backend decides.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(now)
}
