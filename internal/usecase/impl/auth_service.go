package impl

import (
	"context"
	"log/slog"

	"afisha/internal/cache"
	"afisha/internal/domain/entity"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/session"
	"afisha/internal/usecase"
	"afisha/internal/validate"

	"github.com/pkg/errors"
)

// authService implements the AuthUsecase interface.
type authService struct {
	auth   service.AuthAccessor
	store  *cache.Store
	sess   *session.Store
	logger *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(
	auth service.AuthAccessor,
	store *cache.Store,
	sess *session.Store,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return &authService{
		auth:   auth,
		store:  store,
		sess:   sess,
		logger: logger,
	}
}

// Login exchanges credentials for a session. The session store and the
// cache are only touched after the exchange succeeds; a failure leaves
// both exactly as they were.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*entity.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	authSession, err := srv.auth.Login(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "login failed")
	}

	return srv.adopt(authSession)
}

// Register creates an account and signs the new user in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	role := entity.Role(input.Role)
	if input.Role == "" {
		role = entity.RoleUser
	}

	authSession, err := srv.auth.Register(ctx, service.RegisterRequest{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
		Role:     role,
	})
	if err != nil {
		return nil, errors.Wrap(err, "registration failed")
	}

	return srv.adopt(authSession)
}

// adopt installs a fresh session: persist first, then seed the cache with
// the current user so the profile screen renders without a network call.
func (srv *authService) adopt(authSession *entity.Session) (*entity.User, error) {
	if authSession.User == nil || authSession.Token == "" {
		return nil, errors.Wrap(domainerrors.ErrMalformedResponse, "auth response missing token or user")
	}

	if err := srv.sess.Set(authSession.Token, authSession.User); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	srv.store.Put(currentUserKey(authSession.User.ID), authSession.User)
	srv.logger.Info("session established", "userID", authSession.User.ID, "role", authSession.User.Role)

	return authSession.User, nil
}

// Logout drops the session and every cached entry. Viewer-scoped flags
// must not survive into the next session, and wholesale invalidation is
// the cheapest way to guarantee that.
func (srv *authService) Logout(_ context.Context) error {
	if err := srv.sess.Clear(); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}

	srv.store.InvalidateAll()
	srv.logger.Info("session cleared")

	return nil
}

func (srv *authService) CurrentUser() *entity.User {
	return srv.sess.Current()
}

// HandleAuthFailure reacts to a backend authentication rejection. The
// persisted token is evidently no longer honored, so the session and all
// cached viewer state are dropped.
func (srv *authService) HandleAuthFailure(err error) bool {
	if err == nil {
		return false
	}
	if !errors.Is(err, domainerrors.ErrUnauthorized) && !errors.Is(err, domainerrors.ErrSessionExpired) {
		return false
	}
	if !srv.sess.Authenticated() {
		return false
	}

	srv.logger.Warn("session rejected by backend, signing out", "error", err)

	if clearErr := srv.sess.Clear(); clearErr != nil {
		srv.logger.Error("failed to clear rejected session", "error", clearErr)
	}
	srv.store.InvalidateAll()

	return true
}
