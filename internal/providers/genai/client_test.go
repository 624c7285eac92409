package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func imageResponse(data []byte, mimeType string) geminiGenerateContentResponse {
	var resp geminiGenerateContentResponse
	resp.Candidates = []geminiCandidate{{
		Content: geminiContent{Parts: []geminiPart{
			{Text: "here you go"},
			{InlineData: &geminiInlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(data)}},
		}},
	}}
	return resp
}

func TestGenerateImageTextOnly(t *testing.T) {
	want := []byte{0x89, 0x50, 0x4e, 0x47}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Fatalf("unexpected api key header: %s", got)
		}
		if !strings.HasSuffix(r.URL.Path, "/models/gemini-2.5-flash-image:generateContent") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var payload geminiGenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(payload.Contents) != 1 || len(payload.Contents[0].Parts) != 1 {
			t.Fatalf("unexpected contents: %+v", payload.Contents)
		}
		if payload.Contents[0].Parts[0].Text != "a red cat" {
			t.Fatalf("prompt mismatch: %s", payload.Contents[0].Parts[0].Text)
		}
		if payload.GenerationConfig == nil || payload.GenerationConfig.ImageConfig == nil {
			t.Fatalf("expected image config for text-only generation")
		}
		if payload.GenerationConfig.ImageConfig.AspectRatio != "16:9" {
			t.Fatalf("aspect ratio mismatch: %s", payload.GenerationConfig.ImageConfig.AspectRatio)
		}
		_ = json.NewEncoder(w).Encode(imageResponse(want, "image/png"))
	}))
	defer ts.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got, err := client.GenerateImage(context.Background(), GenerateRequest{Prompt: "a red cat", AspectRatio: "16:9"})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if string(got.Data) != string(want) {
		t.Fatalf("payload mismatch: %v", got.Data)
	}
	if got.MIMEType != "image/png" {
		t.Fatalf("unexpected mime type: %s", got.MIMEType)
	}
}

func TestGenerateImageWithReferences(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload geminiGenerateContentRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		parts := payload.Contents[0].Parts
		// prompt + two inline images; the third reference must be dropped
		if len(parts) != 3 {
			t.Fatalf("expected 3 parts, got %d", len(parts))
		}
		if parts[1].InlineData == nil || parts[1].InlineData.MimeType != "image/jpeg" {
			t.Fatalf("first reference mismatch: %+v", parts[1])
		}
		if payload.GenerationConfig.ImageConfig != nil {
			t.Fatalf("aspect ratio must not be sent with reference images")
		}
		_ = json.NewEncoder(w).Encode(imageResponse([]byte("img"), "image/png"))
	}))
	defer ts.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	req := GenerateRequest{
		Prompt:      "blend these",
		AspectRatio: "16:9",
		Images: []InputImage{
			{Data: []byte("one"), MIMEType: "image/jpeg"},
			{Data: []byte("two"), MIMEType: "image/png"},
			{Data: []byte("three"), MIMEType: "image/png"},
		},
	}
	if _, err := client.GenerateImage(context.Background(), req); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
}

func TestGenerateImageAPIFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer ts.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.GenerateImage(context.Background(), GenerateRequest{Prompt: "a cat"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected api error message, got %v", err)
	}
}

func TestGenerateImageEmptyResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp geminiGenerateContentResponse
		resp.Candidates = []geminiCandidate{{Content: geminiContent{Parts: []geminiPart{{Text: "sorry"}}}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer ts.Close()

	client, err := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.GenerateImage(context.Background(), GenerateRequest{Prompt: "a cat"}); err == nil {
		t.Fatal("expected error when response has no image")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error for missing api key")
	}
}
