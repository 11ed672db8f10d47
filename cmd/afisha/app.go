package main

import (
	"log/slog"

	"afisha/config"
	"afisha/internal/cache"
	"afisha/internal/infra/api"
	logs "afisha/internal/infra/log"
	"afisha/internal/infra/qr"
	"afisha/internal/infra/storage"
	"afisha/internal/session"
	"afisha/internal/usecase"
	"afisha/internal/usecase/impl"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const shareCodeSize = 256

// app wires the SDK together for the command line: config, persisted
// session, shared cache and the operation layer on top.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	session *session.Store

	catalog  usecase.CatalogUsecase
	auth     usecase.AuthUsecase
	favorite usecase.FavoriteUsecase
	comms    usecase.CommunityUsecase
	collabs  usecase.CollaborationUsecase
	publish  usecase.PublishingUsecase
	upload   usecase.UploadUsecase
	assist   usecase.AssistUsecase
	share    usecase.ShareUsecase
}

func newApp() (*app, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment as-is")
	}

	cfg, err := config.New()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	logger, err := logs.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build logger")
	}

	statePath, err := cfg.StatePath()
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve state path")
	}

	sess := session.NewStore(storage.NewFileStore(statePath, logger), logger)
	if err := sess.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to restore session")
	}

	client := api.NewClient(cfg, logger, sess.Token)
	store := cache.NewStore(logger)

	catalogAccessor := api.NewCatalogAccessor(client)
	viewerAccessor := api.NewViewerAccessor(client)
	publishing := impl.NewPublishingService(cfg, api.NewPublishingAccessor(client), store, sess, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		session:  sess,
		catalog:  impl.NewCatalogService(cfg, catalogAccessor, store, sess, logger),
		auth:     impl.NewAuthService(api.NewAuthAccessor(client), store, sess, logger),
		favorite: impl.NewFavoriteService(cfg, viewerAccessor, store, sess, logger),
		comms:    impl.NewCommunityService(cfg, viewerAccessor, store, sess, logger),
		collabs:  impl.NewCollaborationService(cfg, viewerAccessor, store, sess, logger),
		publish:  publishing,
		upload:   impl.NewUploadService(api.NewUploadAccessor(client), sess, logger),
		assist:   impl.NewAssistService(api.NewAssistAccessor(client), publishing, sess, logger),
		share:    impl.NewShareService(qr.NewShareCodeService(cfg.API.BaseURL, shareCodeSize, "M")),
	}, nil
}
