package main

import (
	"context"
	"log/slog"
	"os"

	"afisha/config"
	logs "afisha/internal/infra/log"
	"afisha/internal/stub"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Server *stub.Server
	Logger *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		newConfig,
		logs.New,
		stub.NewServer,
	)
}

func newConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment as-is")
	}

	return config.New()
}

func startServer(params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := params.Server.Serve(); err != nil {
					params.Logger.Error("Failed to start stub server", slog.Any("error", err))
					os.Exit(1)
				}
			}()

			return nil
		},
		OnStop: params.Server.Shutdown,
	})
}
