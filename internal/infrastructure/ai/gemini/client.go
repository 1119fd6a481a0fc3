// Package gemini provides the Google Gemini integration for image and text
// analysis. The adapter only moves prompts and raw text across the wire;
// structure is recovered by the domain parser.
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stylelens/v1/internal/ports/outbound"
	"go.uber.org/zap"
)

// Config holds the client configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client implements the VisionService interface against the Gemini
// generateContent REST API.
type Client struct {
	cfg    Config
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new Gemini client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.Named("gemini"),
	}
}

// Gemini API structures.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// AnalyzeImage sends the analysis prompt plus one image and returns the
// model's raw reply.
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, image outbound.ImagePayload) (string, error) {
	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	req := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MIMEType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image.Data),
				}},
			},
		}},
	}

	return c.generate(ctx, req)
}

// ExtractText sends a text-only prompt and returns the model's raw reply.
func (c *Client) ExtractText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{
			Parts: []part{{Text: prompt}},
		}},
	}

	return c.generate(ctx, req)
}

// generate performs one generateContent call and flattens the reply parts
// into a single text.
func (c *Client) generate(ctx context.Context, reqBody generateRequest) (string, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("API error %d (%s): %s", genResp.Error.Code, genResp.Error.Status, genResp.Error.Message)
	}

	if len(genResp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates returned")
	}

	var text string
	for _, p := range genResp.Candidates[0].Content.Parts {
		text += p.Text
	}

	c.logger.Debug("Gemini call completed",
		zap.String("model", c.cfg.Model),
		zap.Duration("duration", time.Since(start)),
		zap.Int("reply_bytes", len(text)),
	)

	return text, nil
}
