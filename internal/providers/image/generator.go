package image

import (
	"context"
	"fmt"
	"strings"

	"studio/internal/domain"
	"studio/internal/providers/genai"
)

// GenerateRequest is the domain-side shape of one generation: the user's
// prompt, an optional style preset, an optional aspect ratio for text-only
// runs, and up to two reference images.
type GenerateRequest struct {
	Prompt      string
	Style       string
	AspectRatio string
	Images      []domain.ImageInput
}

// Result is the single generated image.
type Result struct {
	Data     []byte
	MIMEType string
}

// Generator turns a prompt into one image.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (Result, error)
}

// GeminiGenerator implements Generator on top of the Gemini client. Any
// provider failure, including an imageless response, surfaces as a single
// wrapped domain.ErrGenerationFailed; there are no partial results and no
// automatic retries.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return Result{}, domain.ErrInvalidPrompt
	}
	styled, err := ApplyStyle(prompt, req.Style)
	if err != nil {
		return Result{}, err
	}
	if req.AspectRatio != "" && !ValidAspectRatio(req.AspectRatio) {
		return Result{}, fmt.Errorf("%w: unsupported aspect ratio %q", domain.ErrGenerationFailed, req.AspectRatio)
	}

	images := make([]genai.InputImage, 0, len(req.Images))
	for i, img := range req.Images {
		if i >= genai.MaxInputImages {
			break
		}
		images = append(images, genai.InputImage{Data: img.Data, MIMEType: img.MIMEType})
	}

	out, err := g.client.GenerateImage(ctx, genai.GenerateRequest{
		Prompt:      styled,
		Images:      images,
		AspectRatio: req.AspectRatio,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	mimeType := out.MIMEType
	if mimeType == "" {
		mimeType = domain.DefaultMIMEType
	}
	return Result{Data: out.Data, MIMEType: mimeType}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
