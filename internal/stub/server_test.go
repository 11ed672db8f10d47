package stub_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"afisha/config"
	"afisha/internal/domain/entity"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/errors"
	"afisha/internal/infra/api"
	"afisha/internal/stub"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	client  *api.Client
	token   string
	catalog service.CatalogAccessor
	viewer  service.ViewerAccessor
	auth    service.AuthAccessor
}

func stubConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.UserAgent = "afisha-go-test"
	cfg.Stub = &config.StubConfig{JWTSecret: "test-secret", TokenTTL: time.Hour}

	return cfg
}

func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	server, err := stub.NewServer(cfg, logger)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	cfg.API.BaseURL = ts.URL

	f := &fixture{}
	f.client = api.NewClient(cfg, logger, func() string { return f.token })
	f.catalog = api.NewCatalogAccessor(f.client)
	f.viewer = api.NewViewerAccessor(f.client)
	f.auth = api.NewAuthAccessor(f.client)

	return f
}

func (f *fixture) signIn(t *testing.T, email string) *entity.User {
	t.Helper()

	session, err := f.auth.Login(context.Background(), email, "secret123")
	require.NoError(t, err)
	f.token = session.Token

	return session.User
}

func TestStub_AnonymousCatalog(t *testing.T) {
	f := newFixture(t, stubConfig())
	ctx := context.Background()

	cities, err := f.catalog.Cities(ctx)
	require.NoError(t, err)
	require.Len(t, cities, 3)

	city, err := f.catalog.CityBySlug(ctx, "almaty")
	require.NoError(t, err)
	assert.Equal(t, "Алматы", city.Name)

	// Pending submissions never appear in the public list.
	events, err := f.catalog.Events(ctx, service.EventFilter{CitySlug: "almaty"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, event := range events {
		assert.True(t, event.Status.Public())
		assert.False(t, event.IsFavorite)
	}

	free, err := f.catalog.Events(ctx, service.EventFilter{Category: "sport"})
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.True(t, free[0].Free())
	assert.Equal(t, "Бесплатно", free[0].FormatPrice())
}

func TestStub_UnknownCityIs404(t *testing.T) {
	f := newFixture(t, stubConfig())

	_, err := f.catalog.CityBySlug(context.Background(), "atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestStub_AnonymousFavoriteProbeRejected(t *testing.T) {
	f := newFixture(t, stubConfig())

	_, err := f.viewer.CheckFavorite(context.Background(), "event-jazz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestStub_LoginAndFavoriteRoundtrip(t *testing.T) {
	f := newFixture(t, stubConfig())
	ctx := context.Background()

	user := f.signIn(t, "aida@example.kz")
	assert.Equal(t, entity.RoleUser, user.Role)

	favorite, err := f.viewer.ToggleFavorite(ctx, "event-jazz")
	require.NoError(t, err)
	assert.True(t, favorite)

	checked, err := f.viewer.CheckFavorite(ctx, "event-jazz")
	require.NoError(t, err)
	assert.True(t, checked)

	// The viewer-decorated event carries the flag and the bumped count.
	events, err := f.catalog.Events(ctx, service.EventFilter{Category: "concerts"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.True(t, events[0].IsFavorite)
	assert.Equal(t, 42, events[0].SaveCount)

	favorite, err = f.viewer.ToggleFavorite(ctx, "event-jazz")
	require.NoError(t, err)
	assert.False(t, favorite)
}

func TestStub_InvalidCredentials(t *testing.T) {
	f := newFixture(t, stubConfig())

	_, err := f.auth.Login(context.Background(), "aida@example.kz", "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestStub_RegisterRejectsTakenEmail(t *testing.T) {
	f := newFixture(t, stubConfig())

	_, err := f.auth.Register(context.Background(), service.RegisterRequest{
		Email:    "aida@example.kz",
		Password: "secret123",
		Name:     "Аида 2",
		Role:     entity.RoleUser,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestStub_CommunityMembership(t *testing.T) {
	f := newFixture(t, stubConfig())
	ctx := context.Background()
	f.signIn(t, "aida@example.kz")

	joined, err := f.viewer.JoinCommunity(ctx, "comm-runners")
	require.NoError(t, err)
	assert.True(t, joined.IsMember)
	assert.Equal(t, 129, joined.MembersCount)

	// Idempotent: joining again does not bump the count.
	joined, err = f.viewer.JoinCommunity(ctx, "comm-runners")
	require.NoError(t, err)
	assert.Equal(t, 129, joined.MembersCount)

	left, err := f.viewer.LeaveCommunity(ctx, "comm-runners")
	require.NoError(t, err)
	assert.False(t, left.IsMember)
	assert.Equal(t, 128, left.MembersCount)
}

func TestStub_CollaborationRespond(t *testing.T) {
	f := newFixture(t, stubConfig())
	ctx := context.Background()
	f.signIn(t, "daniyar@example.kz")

	updated, err := f.viewer.RespondToCollaboration(ctx, "collab-festival", "Предоставим кейтеринг на 500 гостей.")
	require.NoError(t, err)
	assert.True(t, updated.HasResponded)
	assert.Equal(t, 3, updated.ResponseCount)

	// Closed postings reject responses.
	_, err = f.viewer.RespondToCollaboration(ctx, "collab-closed", "Мы готовы.")
	require.Error(t, err)
	assert.True(t, domainerrors.IsValidation(err))
}

func TestStub_PublishingQuotaAndModeration(t *testing.T) {
	f := newFixture(t, stubConfig())
	ctx := context.Background()
	publishing := api.NewPublishingAccessor(f.client)

	draft := service.EventDraft{
		Title:    "Новое событие",
		Category: "culture",
		Date:     "2026-10-01",
		Time:     "19:00",
		Location: "Qonaq House",
		CitySlug: "astana",
	}

	// Free tier with an exhausted quota.
	f.signIn(t, "zarina@example.kz")
	_, err := publishing.CreateEvent(ctx, draft)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrQuotaExceeded))

	// Premium owner still has room; the new event awaits moderation.
	f.signIn(t, "daniyar@example.kz")
	created, err := publishing.CreateEvent(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, entity.ModerationPending, created.Status)

	events, err := f.catalog.Events(ctx, service.EventFilter{CitySlug: "astana"})
	require.NoError(t, err)
	for _, event := range events {
		assert.NotEqual(t, created.ID, event.ID)
	}
}

func TestStub_ProviderConfigurationErrors(t *testing.T) {
	f := newFixture(t, stubConfig())
	ctx := context.Background()
	f.signIn(t, "daniyar@example.kz")

	upload := api.NewUploadAccessor(f.client)
	_, err := upload.Config(ctx, "events")
	require.Error(t, err)
	assert.True(t, domainerrors.IsConfiguration(err))

	assist := api.NewAssistAccessor(f.client)
	_, err = assist.ImageIdeas(ctx, "джазовый вечер")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAssistNotConfigured))
}

func TestStub_ConfiguredProviders(t *testing.T) {
	cfg := stubConfig()
	cfg.Upload = &config.UploadProviderConfig{CloudName: "afisha-dev", APIKey: "key", APISecret: "secret", BaseFolder: "afisha"}
	cfg.Assist = &config.AssistProviderConfig{APIKey: "key", Model: "imagegen-2"}

	f := newFixture(t, cfg)
	ctx := context.Background()
	f.signIn(t, "daniyar@example.kz")

	upload := api.NewUploadAccessor(f.client)
	uploadCfg, err := upload.Config(ctx, "events")
	require.NoError(t, err)
	assert.Equal(t, "afisha-dev", uploadCfg.CloudName)
	assert.Equal(t, "afisha/events", uploadCfg.Folder)
	assert.NotEmpty(t, uploadCfg.Signature)

	assist := api.NewAssistAccessor(f.client)
	ideas, err := assist.ImageIdeas(ctx, "джазовый вечер")
	require.NoError(t, err)
	assert.Len(t, ideas, 3)

	// Free tier is gated server-side as well.
	f.signIn(t, "zarina@example.kz")
	_, err = assist.ImageIdeas(ctx, "выставка")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPremiumRequired))
}

func TestStub_ExpiredTokenIsSessionExpired(t *testing.T) {
	cfg := stubConfig()
	cfg.Stub.TokenTTL = -time.Minute

	f := newFixture(t, cfg)
	f.signIn(t, "aida@example.kz")

	_, err := f.viewer.CheckFavorite(context.Background(), "event-jazz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired))
}
