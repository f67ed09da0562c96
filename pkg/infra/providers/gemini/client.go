package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devfest-tools/modgate/pkg/infra/providers"
	"github.com/valyala/fasthttp"
)

const (
	defaultModel = "gemini-1.5-flash"
	baseURL      = "https://generativelanguage.googleapis.com/v1beta/models"

	requestTimeout = 60 * time.Second
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

type client struct {
	httpClient *fasthttp.Client
}

func NewGeminiClient(httpClient *fasthttp.Client) providers.Client {
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			ReadTimeout:  requestTimeout,
			WriteTimeout: requestTimeout,
		}
	}
	return &client{
		httpClient: httpClient,
	}
}

// Ask calls the generateContent endpoint. The API key travels as a query
// parameter; the generated text is nested under candidates/content/parts.
func (c *client) Ask(
	ctx context.Context,
	config *providers.Config,
	prompt string,
) (*providers.CompletionResponse, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	model := config.Model
	if model == "" {
		model = defaultModel
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     config.Temperature,
			MaxOutputTokens: config.MaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fmt.Sprintf("%s/%s:generateContent?key=%s", baseURL, model, config.APIKey))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(requestTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d", resp.StatusCode())
	}

	var generated generateResponse
	if err := json.Unmarshal(resp.Body(), &generated); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(generated.Candidates) == 0 || len(generated.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no completions returned")
	}

	responseText := generated.Candidates[0].Content.Parts[0].Text
	if responseText == "" {
		return nil, fmt.Errorf("no completions returned")
	}

	return &providers.CompletionResponse{
		ID:       fmt.Sprintf("gemini-%d", time.Now().UnixNano()),
		Model:    model,
		Response: responseText,
		Usage: providers.Usage{
			PromptTokens:     generated.UsageMetadata.PromptTokenCount,
			CompletionTokens: generated.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      generated.UsageMetadata.TotalTokenCount,
		},
	}, nil
}
