// Package translation turns outgoing message text into the bilingual
// {en, ja} body stored on every message. Translation is best-effort: any
// failure falls back to mirroring the original text so sending is never
// blocked.
package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"obnavi/backend/internal/logger"
	"obnavi/backend/internal/models"
)

// Translator produces a bilingual message body from raw input text.
type Translator interface {
	Translate(ctx context.Context, text string) models.MessageContent
}

// HTTPTranslator calls an external translation API. The API contract is a
// POST of {text, target} returning {translation}.
type HTTPTranslator struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPTranslator builds a translator against the configured endpoint.
func NewHTTPTranslator(baseURL, apiKey string) *HTTPTranslator {
	return &HTTPTranslator{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// Translate fills both language slots. The source language is detected by
// the provider; each direction degrades independently to the original text.
func (t *HTTPTranslator) Translate(ctx context.Context, text string) models.MessageContent {
	content := models.MessageContent{EN: text, JA: text}
	if t.BaseURL == "" {
		return content
	}

	if en, err := t.translateTo(ctx, text, "en"); err == nil {
		content.EN = en
	} else {
		logger.Log.Warnf("translation to en failed: %v", err)
	}
	if ja, err := t.translateTo(ctx, text, "ja"); err == nil {
		content.JA = ja
	} else {
		logger.Log.Warnf("translation to ja failed: %v", err)
	}
	return content
}

func (t *HTTPTranslator) translateTo(ctx context.Context, text, target string) (string, error) {
	body, err := json.Marshal(map[string]string{"text": text, "target": target})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.APIKey)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API returned %d", resp.StatusCode)
	}

	var out struct {
		Translation string `json:"translation"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Translation == "" {
		return "", fmt.Errorf("empty translation")
	}
	return out.Translation, nil
}

// Noop mirrors input text into both slots. Used when no translation API is
// configured and in tests.
type Noop struct{}

// Translate implements Translator.
func (Noop) Translate(_ context.Context, text string) models.MessageContent {
	return models.MessageContent{EN: text, JA: text}
}
