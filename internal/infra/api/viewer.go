package api

import (
	"context"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
)

type viewerAccessor struct {
	client *Client
}

// NewViewerAccessor creates the accessor for viewer-scoped state.
func NewViewerAccessor(client *Client) service.ViewerAccessor {
	return &viewerAccessor{client: client}
}

type favoriteState struct {
	IsFavorite bool `json:"isFavorite"`
}

func (a *viewerAccessor) CheckFavorite(ctx context.Context, eventID string) (bool, error) {
	var state favoriteState
	query := map[string]string{"eventId": eventID}
	if err := a.client.get(ctx, "/favorites/check", query, nil, &state); err != nil {
		return false, err
	}

	return state.IsFavorite, nil
}

func (a *viewerAccessor) ToggleFavorite(ctx context.Context, eventID string) (bool, error) {
	body := map[string]string{"eventId": eventID}

	var state favoriteState
	if err := a.client.post(ctx, "/favorites/toggle", body, nil, &state); err != nil {
		return false, err
	}

	return state.IsFavorite, nil
}

func (a *viewerAccessor) Communities(ctx context.Context, filter service.CommunityFilter) ([]*entity.Community, error) {
	query := map[string]string{}
	if filter.CitySlug != "" {
		query["cityId"] = filter.CitySlug
	}

	var communities []*entity.Community
	if err := a.client.get(ctx, "/communities", query, nil, &communities); err != nil {
		return nil, err
	}

	return communities, nil
}

func (a *viewerAccessor) JoinCommunity(ctx context.Context, communityID string) (*entity.Community, error) {
	var community entity.Community
	params := map[string]string{"id": communityID}
	if err := a.client.post(ctx, "/communities/{id}/join", nil, params, &community); err != nil {
		return nil, err
	}

	return &community, nil
}

func (a *viewerAccessor) LeaveCommunity(ctx context.Context, communityID string) (*entity.Community, error) {
	var community entity.Community
	params := map[string]string{"id": communityID}
	if err := a.client.post(ctx, "/communities/{id}/leave", nil, params, &community); err != nil {
		return nil, err
	}

	return &community, nil
}

func (a *viewerAccessor) Collaborations(ctx context.Context, filter service.CollaborationFilter) ([]*entity.Collaboration, error) {
	query := map[string]string{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	var collaborations []*entity.Collaboration
	if err := a.client.get(ctx, "/collaborations", query, nil, &collaborations); err != nil {
		return nil, err
	}

	return collaborations, nil
}

func (a *viewerAccessor) RespondToCollaboration(ctx context.Context, collabID, message string) (*entity.Collaboration, error) {
	body := map[string]string{"message": message}

	var collaboration entity.Collaboration
	params := map[string]string{"id": collabID}
	if err := a.client.post(ctx, "/collaborations/{id}/respond", body, params, &collaboration); err != nil {
		return nil, err
	}

	return &collaboration, nil
}
