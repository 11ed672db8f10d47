package impl

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"afisha/config"
	"afisha/internal/cache"
	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
	"afisha/internal/infra/storage"
	"afisha/internal/session"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.API.BaseURL = "http://localhost:0"
	cfg.Cache.ReferenceTTL = 10 * time.Minute
	cfg.Cache.VolatileTTL = 5 * time.Minute

	return cfg
}

func newTestSession(t *testing.T) *session.Store {
	t.Helper()

	store := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"), testLogger())
	sess := session.NewStore(store, testLogger())
	require.NoError(t, sess.Init())

	return sess
}

func signIn(t *testing.T, sess *session.Store, user *entity.User) {
	t.Helper()
	require.NoError(t, sess.Set("opaque-test-token", user))
}

func regularUser() *entity.User {
	return &entity.User{ID: "u-1", Email: "aida@example.kz", Name: "Аида", Role: entity.RoleUser}
}

func businessUser() *entity.User {
	return &entity.User{ID: "b-1", Email: "owner@example.kz", Name: "Данияр", Role: entity.RoleBusiness}
}

// --- accessor fakes ---

type fakeAuthAccessor struct {
	session *entity.Session
	err     error
	calls   int
}

func (f *fakeAuthAccessor) Login(_ context.Context, _, _ string) (*entity.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.session, nil
}

func (f *fakeAuthAccessor) Register(_ context.Context, _ service.RegisterRequest) (*entity.Session, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.session, nil
}

type fakeViewerAccessor struct {
	favorite       bool
	checkCalls     int
	toggleCalls    int
	communities    []*entity.Community
	communityCalls int
	joined         *entity.Community
	collabs        []*entity.Collaboration
	responded      *entity.Collaboration
	err            error
}

func (f *fakeViewerAccessor) CheckFavorite(_ context.Context, _ string) (bool, error) {
	f.checkCalls++
	if f.err != nil {
		return false, f.err
	}

	return f.favorite, nil
}

func (f *fakeViewerAccessor) ToggleFavorite(_ context.Context, _ string) (bool, error) {
	f.toggleCalls++
	if f.err != nil {
		return false, f.err
	}
	f.favorite = !f.favorite

	return f.favorite, nil
}

func (f *fakeViewerAccessor) Communities(_ context.Context, _ service.CommunityFilter) ([]*entity.Community, error) {
	f.communityCalls++

	return f.communities, f.err
}

func (f *fakeViewerAccessor) JoinCommunity(_ context.Context, _ string) (*entity.Community, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.joined, nil
}

func (f *fakeViewerAccessor) LeaveCommunity(_ context.Context, _ string) (*entity.Community, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.joined, nil
}

func (f *fakeViewerAccessor) Collaborations(_ context.Context, _ service.CollaborationFilter) ([]*entity.Collaboration, error) {
	return f.collabs, f.err
}

func (f *fakeViewerAccessor) RespondToCollaboration(_ context.Context, _, _ string) (*entity.Collaboration, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.responded, nil
}

type fakeCatalogAccessor struct {
	cities     []*entity.City
	events     []*entity.Event
	event      *entity.Event
	cityCalls  int
	eventCalls int
	err        error
}

func (f *fakeCatalogAccessor) Cities(_ context.Context) ([]*entity.City, error) {
	f.cityCalls++

	return f.cities, f.err
}

func (f *fakeCatalogAccessor) CityBySlug(_ context.Context, slug string) (*entity.City, error) {
	for _, city := range f.cities {
		if city.Slug == slug {
			return city, nil
		}
	}

	return nil, f.err
}

func (f *fakeCatalogAccessor) Events(_ context.Context, _ service.EventFilter) ([]*entity.Event, error) {
	f.eventCalls++

	return f.events, f.err
}

func (f *fakeCatalogAccessor) EventByID(_ context.Context, _ string) (*entity.Event, error) {
	return f.event, f.err
}

func (f *fakeCatalogAccessor) Businesses(_ context.Context, _ service.BusinessFilter) ([]*entity.Business, error) {
	return nil, f.err
}

func (f *fakeCatalogAccessor) Promotions(_ context.Context, _ service.PromotionFilter) ([]*entity.Promotion, error) {
	return nil, f.err
}

type fakePublishingAccessor struct {
	business       *entity.Business
	created        *entity.Event
	createCalls    int
	businessCalls  int
	promotion      *entity.Promotion
	promotionCalls int
	err            error
}

func (f *fakePublishingAccessor) MyBusiness(_ context.Context) (*entity.Business, error) {
	f.businessCalls++

	return f.business, f.err
}

func (f *fakePublishingAccessor) CreateEvent(_ context.Context, _ service.EventDraft) (*entity.Event, error) {
	f.createCalls++
	if f.err != nil {
		return nil, f.err
	}

	return f.created, nil
}

func (f *fakePublishingAccessor) UpdateEvent(_ context.Context, _ string, _ service.EventDraft) (*entity.Event, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.created, nil
}

func (f *fakePublishingAccessor) DeleteEvent(_ context.Context, _ string) error {
	return f.err
}

func (f *fakePublishingAccessor) CreatePromotion(_ context.Context, _ service.PromotionDraft) (*entity.Promotion, error) {
	f.promotionCalls++
	if f.err != nil {
		return nil, f.err
	}

	return f.promotion, nil
}

type fakeAssistAccessor struct {
	ideas []string
	calls int
	err   error
}

func (f *fakeAssistAccessor) ImageIdeas(_ context.Context, _ string) ([]string, error) {
	f.calls++

	return f.ideas, f.err
}

type fakeUploadAccessor struct {
	cfg   *service.UploadConfig
	calls int
	err   error
}

func (f *fakeUploadAccessor) Config(_ context.Context, _ string) (*service.UploadConfig, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.cfg, nil
}

func newTestCache() *cache.Store {
	return cache.NewStore(testLogger())
}
