package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
	"afisha/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (service.StateStorage, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")

	return NewFileStore(path, slog.New(slog.NewTextHandler(os.Stderr, nil))), path
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, _ := newTestStore(t)

	state := &service.ClientState{
		Token:        "token-123",
		User:         &entity.User{ID: "u1", Email: "aidar@example.kz", Name: "Айдар", Role: entity.RoleUser},
		SelectedCity: "almaty",
	}
	require.NoError(t, store.Save(state))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, state.Token, loaded.Token)
	assert.Equal(t, state.User.Email, loaded.User.Email)
	assert.Equal(t, "almaty", loaded.SelectedCity)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load()
	assert.True(t, errors.Is(err, service.ErrStateNotFound))
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	store, path := newTestStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.Load()
	assert.True(t, errors.Is(err, service.ErrStateNotFound), "corrupt state must read as absent")
}

func TestFileStore_SaveEmptyState(t *testing.T) {
	store, _ := newTestStore(t)
	require.NoError(t, store.Save(&service.ClientState{Token: "t", SelectedCity: "almaty"}))
	require.NoError(t, store.Save(&service.ClientState{SelectedCity: "almaty"}))

	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
	assert.Equal(t, "almaty", state.SelectedCity)
}
