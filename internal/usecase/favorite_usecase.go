package usecase

import "context"

// FavoriteUsecase manages the viewer's saved events.
type FavoriteUsecase interface {
	// IsFavorite answers from cache when possible; an anonymous viewer is
	// answered false without any network call.
	IsFavorite(ctx context.Context, eventID string) (bool, error)
	// Toggle flips the favorite bit with exactly one backend call and
	// returns the new state.
	Toggle(ctx context.Context, eventID string) (bool, error)
}
