package service

import (
	"afisha/internal/domain/entity"
	"afisha/internal/errors"
)

// ErrStateNotFound is returned when no client state has been persisted yet.
var ErrStateNotFound = errors.New("client state not found")

// ClientState is the persisted, tab-scoped slice of client data: the bearer
// token, the serialized user, and the selected city slug. Everything in it
// is untrusted on load; the backend stays the source of truth.
type ClientState struct {
	Token        string       `json:"token,omitempty"`
	User         *entity.User `json:"user,omitempty"`
	SelectedCity string       `json:"selectedCity,omitempty"`
}

// StateStorage persists the ClientState between runs, the counterpart of
// browser-local storage. Logout does not remove the file: the session
// store saves an empty-token state so the selected city survives.
type StateStorage interface {
	// Load reads the persisted state; ErrStateNotFound when absent.
	Load() (*ClientState, error)

	// Save atomically replaces the persisted state.
	Save(state *ClientState) error
}
