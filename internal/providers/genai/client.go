// Package genai is a thin REST client for the Gemini generateContent
// endpoint, shaped for image output: one prompt, up to two inline reference
// images, one image back.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash-image"

	// MaxInputImages is the number of reference images a request carries;
	// extras are dropped.
	MaxInputImages = 2
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client performs Gemini generateContent calls over plain HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// InputImage is a reference image attached to the prompt.
type InputImage struct {
	Data     []byte
	MIMEType string
}

// GenerateRequest carries everything one generation call needs. AspectRatio
// is honored only for text-only generation; with reference images the model
// follows the inputs.
type GenerateRequest struct {
	Prompt      string
	Images      []InputImage
	AspectRatio string
}

// GeneratedImage is the single image payload extracted from the response.
type GeneratedImage struct {
	Data     []byte
	MIMEType string
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType,omitempty"`
	Data     string `json:"data,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiImageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string           `json:"responseModalities,omitempty"`
	ImageConfig        *geminiImageConfig `json:"imageConfig,omitempty"`
}

type geminiGenerateContentRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. A nil HTTP client
// gets a reusable one with a generation-sized timeout.
func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("genai: api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		model:      model,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

// GenerateImage runs one generation call and returns the first inline image
// of the first candidate that carries one.
func (c *Client) GenerateImage(ctx context.Context, req GenerateRequest) (GeneratedImage, error) {
	if c == nil {
		return GeneratedImage{}, errors.New("genai: client not configured")
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return GeneratedImage{}, errors.New("genai: prompt is required")
	}

	parts := []geminiPart{{Text: prompt}}
	for i, img := range req.Images {
		if i >= MaxInputImages {
			break
		}
		if len(img.Data) == 0 {
			continue
		}
		mimeType := img.MIMEType
		if mimeType == "" {
			mimeType = "image/png"
		}
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(img.Data),
		}})
	}

	payload := geminiGenerateContentRequest{
		Contents:         []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}
	if len(parts) == 1 && req.AspectRatio != "" {
		payload.GenerationConfig.ImageConfig = &geminiImageConfig{AspectRatio: req.AspectRatio}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return GeneratedImage{}, fmt.Errorf("genai: encode request: %w", err)
	}
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return GeneratedImage{}, fmt.Errorf("genai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return GeneratedImage{}, fmt.Errorf("genai: call model: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error.Message != "" {
			return GeneratedImage{}, fmt.Errorf("genai: %s (http %d)", apiErr.Error.Message, resp.StatusCode)
		}
		return GeneratedImage{}, fmt.Errorf("genai: http %d", resp.StatusCode)
	}

	var out geminiGenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return GeneratedImage{}, fmt.Errorf("genai: decode response: %w", err)
	}

	for _, candidate := range out.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return GeneratedImage{}, fmt.Errorf("genai: decode image payload: %w", err)
			}
			mimeType := part.InlineData.MimeType
			if mimeType == "" {
				mimeType = "image/png"
			}
			c.logger.Debug().
				Str("model", c.model).
				Int("bytes", len(data)).
				Dur("elapsed", time.Since(started)).
				Msg("image generated")
			return GeneratedImage{Data: data, MIMEType: mimeType}, nil
		}
	}
	return GeneratedImage{}, errors.New("genai: response contained no image")
}
