// Package advice drafts posting advice and content with a generative text
// model.
package advice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/maheshrc27/socialflow/internal/transfer"
	"google.golang.org/genai"
)

var ErrEmptyResponse = errors.New("model returned no content")

// Generator is implemented by Client.
type Generator interface {
	Advice(ctx context.Context, platform, niche string) (transfer.Advice, error)
	CampaignIdeas(ctx context.Context, niche string) ([]transfer.CampaignIdea, error)
	GeneratePosts(ctx context.Context, req transfer.GenerateRequest) ([]transfer.GeneratedPost, error)
}

// ContentModel is the generation call of *genai.Models.
type ContentModel interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	models ContentModel
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return NewClientWithModel(client.Models, model), nil
}

// NewClientWithModel wraps an existing content model.
func NewClientWithModel(models ContentModel, model string) *Client {
	return &Client{models: models, model: model}
}

func (c *Client) Advice(ctx context.Context, platform, niche string) (transfer.Advice, error) {
	prompt := fmt.Sprintf(`You are a social media strategist. Give strategic advice for %s in the %q niche.
Answer as a JSON object with three string arrays:
"bestTimes" (best times to post), "tips" (ways to raise engagement), "contentIdeas" (fresh content ideas).`,
		platform, niche)

	var out transfer.Advice
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		return transfer.Advice{}, err
	}
	out.Platform = platform
	return out, nil
}

func (c *Client) CampaignIdeas(ctx context.Context, niche string) ([]transfer.CampaignIdea, error) {
	prompt := fmt.Sprintf(`Suggest 5 major marketing campaigns across the year for the %q niche.
Answer as a JSON array of objects with "name", "description", "month" (1-12) and "color" (hex code).`, niche)

	var out []transfer.CampaignIdea
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GeneratePosts(ctx context.Context, req transfer.GenerateRequest) ([]transfer.GeneratedPost, error) {
	prompt := fmt.Sprintf(`Create a content program of %d posts for %s in the %q niche,
between %s and %s. Spread the dates evenly.
Answer as a JSON array of objects with "title", "content" and "date" (ISO 8601).`,
		req.Count, req.Platform, req.Niche,
		req.StartDate.Format(time.DateOnly), req.EndDate.Format(time.DateOnly))

	var out []transfer.GeneratedPost
	if err := c.generateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string, out any) error {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}
