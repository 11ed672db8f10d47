package api

import (
	"context"

	"afisha/internal/domain/service"
)

type uploadAccessor struct {
	client *Client
}

// NewUploadAccessor creates the accessor for signed upload configurations.
func NewUploadAccessor(client *Client) service.UploadAccessor {
	return &uploadAccessor{client: client}
}

func (a *uploadAccessor) Config(ctx context.Context, folder string) (*service.UploadConfig, error) {
	query := map[string]string{}
	if folder != "" {
		query["folder"] = folder
	}

	var cfg service.UploadConfig
	if err := a.client.get(ctx, "/upload/config", query, nil, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type assistAccessor struct {
	client *Client
}

// NewAssistAccessor creates the accessor for AI image-idea generation.
func NewAssistAccessor(client *Client) service.AssistAccessor {
	return &assistAccessor{client: client}
}

type imageIdeasResponse struct {
	Ideas []string `json:"ideas"`
}

func (a *assistAccessor) ImageIdeas(ctx context.Context, prompt string) ([]string, error) {
	body := map[string]string{"prompt": prompt}

	var out imageIdeasResponse
	if err := a.client.post(ctx, "/ai/image-ideas", body, nil, &out); err != nil {
		return nil, err
	}

	return out.Ideas, nil
}
