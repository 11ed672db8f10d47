// Package stub is an in-memory rendition of the Afisha backend used for
// local development and integration tests. It serves the same endpoint
// table and response envelope as production over a seeded demo dataset.
package stub

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"afisha/config"
	"afisha/internal/domain/entity"
	"afisha/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 24 * time.Hour

const ctxUserKey = "stub.user"

// Server hosts the stub API.
type Server struct {
	cfg    *config.StubConfig
	upload *config.UploadProviderConfig
	assist *config.AssistProviderConfig
	logger *slog.Logger
	echo   *echo.Echo
	state  *state
	tokens *tokenIssuer
}

// NewServer builds a fully seeded stub from config.
func NewServer(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	if cfg.Stub == nil {
		return nil, errors.New("stub server requires the stub config section")
	}
	if cfg.Stub.JWTSecret == "" {
		return nil, errors.New("stub server requires stub.jwtSecret")
	}

	ttl := cfg.Stub.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Use(slogecho.New(logger))
	echoServer.Use(middleware.Recover())
	echoServer.Use(middleware.CORS())

	st := newState()
	seed(st, time.Now(), hashPassword)

	srv := &Server{
		cfg:    cfg.Stub,
		upload: cfg.Upload,
		assist: cfg.Assist,
		logger: logger,
		echo:   echoServer,
		state:  st,
		tokens: newTokenIssuer(cfg.Stub.JWTSecret, ttl),
	}
	srv.registerRoutes()

	return srv, nil
}

// Handler exposes the stub for httptest-driven integration tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Serve blocks on the configured port until Shutdown.
func (s *Server) Serve() error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.Port))
	s.logger.Info("Starting stub API server", slog.String("hostPort", hostPort))

	if err := s.echo.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve stub API")
	}

	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down stub API server")

	return errors.WithStack(s.echo.Shutdown(ctx))
}

func (s *Server) registerRoutes() {
	e := s.echo
	e.Use(s.identity)

	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)

	e.GET("/cities", s.listCities)
	e.GET("/cities/:slug", s.getCity)
	e.GET("/events", s.listEvents)
	e.GET("/events/:id", s.getEvent)
	e.GET("/businesses", s.listBusinesses)
	e.GET("/promotions", s.listPromotions)
	e.GET("/communities", s.listCommunities)
	e.GET("/collaborations", s.listCollaborations)

	authed := e.Group("", s.requireAuth)
	authed.GET("/favorites/check", s.checkFavorite)
	authed.POST("/favorites/toggle", s.toggleFavorite)
	authed.POST("/communities/:id/join", s.joinCommunity)
	authed.POST("/communities/:id/leave", s.leaveCommunity)
	authed.POST("/collaborations/:id/respond", s.respondToCollaboration)
	authed.GET("/upload/config", s.uploadConfig)
	authed.POST("/ai/image-ideas", s.imageIdeas)

	business := e.Group("/business", s.requireAuth, s.requireBusiness)
	business.GET("/me", s.myBusiness)
	business.POST("/events", s.createEvent)
	business.PUT("/events/:id", s.updateEvent)
	business.DELETE("/events/:id", s.deleteEvent)
	business.POST("/promotions", s.createPromotion)
}

// identity resolves the bearer token into a user when one is presented.
// Anonymous requests pass through; a presented-but-invalid token is
// rejected here so expired sessions fail uniformly on every endpoint.
func (s *Server) identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return next(c)
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return unauthorized(c, "malformed authorization header")
		}

		userID, err := s.tokens.verify(token)
		if err != nil {
			return fail(c, http.StatusUnauthorized, "SESSION_EXPIRED", "session expired", err.Error())
		}

		s.state.mu.Lock()
		user := s.state.byID[userID]
		s.state.mu.Unlock()
		if user == nil {
			return unauthorized(c, "unknown user")
		}
		c.Set(ctxUserKey, user)

		return next(c)
	}
}

func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentUser(c) == nil {
			return unauthorized(c, "")
		}

		return next(c)
	}
}

func (s *Server) requireBusiness(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := currentUser(c)
		if user == nil || !user.Role.CanPublish() {
			return fail(c, http.StatusForbidden, "BUSINESS_REQUIRED", "business account required", "")
		}

		return next(c)
	}
}

func currentUser(c echo.Context) *entity.User {
	user, _ := c.Get(ctxUserKey).(*entity.User)

	return user
}

func viewerOf(c echo.Context) string {
	if user := currentUser(c); user != nil {
		return user.ID
	}

	return ""
}

func hashPassword(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err) // only reachable with an invalid cost constant
	}

	return hash
}
