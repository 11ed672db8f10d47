package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"afisha/config"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testClient(t *testing.T, token string, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.API.Timeout = 2 * time.Second
	cfg.API.UserAgent = "afisha-go-test"

	return NewClient(cfg, testLogger(), func() string { return token })
}

func writeEnvelope(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func dataEnvelope(t *testing.T, data any) envelope {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)

	return envelope{Success: true, Code: http.StatusOK, Data: raw}
}

func TestClient_AttachesTokenAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string

	client := testClient(t, "token-123", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(headerRequestID)
		writeEnvelope(w, http.StatusOK, dataEnvelope(t, map[string]string{"id": "c-1"}))
	}))

	var out map[string]string
	require.NoError(t, client.get(context.Background(), "/cities/{slug}", nil, map[string]string{"slug": "almaty"}, &out))

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "c-1", out["id"])
}

func TestClient_AnonymousSkipsAuthorizationHeader(t *testing.T) {
	var gotAuth string

	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, dataEnvelope(t, []string{}))
	}))

	var out []string
	require.NoError(t, client.get(context.Background(), "/cities", nil, nil, &out))
	assert.Empty(t, gotAuth)
}

func TestClient_BusinessCodeMapsToSentinel(t *testing.T) {
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, envelope{
			Success: false,
			Code:    http.StatusUnauthorized,
			Message: "invalid credentials",
			Error:   &errorInfo{Code: "INVALID_CREDENTIALS", Details: "email either@example.kz"},
		})
	}))

	err := client.post(context.Background(), "/auth/login", map[string]string{}, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.True(t, domainerrors.IsValidation(err))

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "email either@example.kz", appErr.Details())
}

func TestClient_BareStatusMapsToSentinel(t *testing.T) {
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, envelope{Success: false, Code: http.StatusUnauthorized})
	}))

	err := client.get(context.Background(), "/favorites/check", nil, nil, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestClient_UnknownErrorKeepsServerMessage(t *testing.T) {
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(w, http.StatusInternalServerError, envelope{
			Success: false,
			Code:    http.StatusInternalServerError,
			Message: "Плановые работы до 06:00",
		})
	}))

	err := client.get(context.Background(), "/events", nil, nil, nil)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode())
	assert.Equal(t, "Плановые работы до 06:00", appErr.Message())
	assert.Equal(t, domainerrors.KindTransport, appErr.Kind())
}

func TestClient_NonJSONBodyIsMalformed(t *testing.T) {
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))

	var out []string
	err := client.get(context.Background(), "/cities", nil, nil, &out)
	assert.True(t, errors.Is(err, domainerrors.ErrMalformedResponse))
}

func TestClient_TimeoutMapsToRequestTimeout(t *testing.T) {
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	client.rest.SetTimeout(50 * time.Millisecond)

	err := client.get(context.Background(), "/cities", nil, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrRequestTimeout))
	assert.Equal(t, domainerrors.KindTransport, domainerrors.KindOf(err))
}

func TestClient_ConnectionRefusedIsNetworkUnavailable(t *testing.T) {
	cfg := &config.Config{}
	cfg.API.BaseURL = "http://127.0.0.1:1"
	cfg.API.Timeout = time.Second
	cfg.API.UserAgent = "afisha-go-test"
	client := NewClient(cfg, testLogger(), nil)

	err := client.get(context.Background(), "/cities", nil, nil, nil)
	assert.True(t, errors.Is(err, domainerrors.ErrNetworkUnavailable))
}

func TestCatalogAccessor_ForwardsEventFilter(t *testing.T) {
	var gotQuery map[string][]string

	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		writeEnvelope(w, http.StatusOK, dataEnvelope(t, []map[string]string{{"id": "e-1", "title": "Концерт"}}))
	}))

	events, err := NewCatalogAccessor(client).Events(context.Background(), service.EventFilter{
		CitySlug: "almaty",
		Category: "concerts",
		Featured: true,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Концерт", events[0].Title)

	assert.Equal(t, []string{"almaty"}, gotQuery["cityId"])
	assert.Equal(t, []string{"concerts"}, gotQuery["category"])
	assert.Equal(t, []string{"true"}, gotQuery["featured"])
}

func TestViewerAccessor_ToggleFavoriteReturnsNewState(t *testing.T) {
	client := testClient(t, "token", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/favorites/toggle", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "e-7", body["eventId"])

		writeEnvelope(w, http.StatusOK, dataEnvelope(t, favoriteState{IsFavorite: true}))
	}))

	favorite, err := NewViewerAccessor(client).ToggleFavorite(context.Background(), "e-7")
	require.NoError(t, err)
	assert.True(t, favorite)
}

func TestAuthAccessor_LoginDecodesSession(t *testing.T) {
	client := testClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "aida@example.kz", body.Email)

		writeEnvelope(w, http.StatusOK, dataEnvelope(t, map[string]any{
			"token": "jwt-abc",
			"user": map[string]string{
				"id":    "u-1",
				"email": "aida@example.kz",
				"name":  "Аида",
				"role":  "user",
			},
		}))
	}))

	session, err := NewAuthAccessor(client).Login(context.Background(), "aida@example.kz", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, "Аида", session.User.Name)
	assert.True(t, session.Authenticated())
}

func TestPublishingAccessor_DeleteEvent(t *testing.T) {
	client := testClient(t, "token", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/business/events/e-9", r.URL.Path)
		writeEnvelope(w, http.StatusOK, envelope{Success: true, Code: http.StatusOK})
	}))

	require.NoError(t, NewPublishingAccessor(client).DeleteEvent(context.Background(), "e-9"))
}
