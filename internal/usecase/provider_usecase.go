package usecase

import (
	"context"

	"afisha/internal/domain/service"
)

// UploadUsecase hands out signed upload configurations. An absent upload
// provider is a configuration error, not a transport one, so the caller
// can fall back to plain URL entry.
type UploadUsecase interface {
	UploadConfig(ctx context.Context, folder string) (*service.UploadConfig, error)
}

// AssistUsecase requests AI image ideas. Gated on the premium tier before
// any network call is made.
type AssistUsecase interface {
	ImageIdeas(ctx context.Context, prompt string) ([]string, error)
}

// ShareUsecase produces shareable artifacts for an event.
type ShareUsecase interface {
	EventShareURL(eventID string) string
	EventShareQR(eventID string) ([]byte, error)
}
