package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImageEngine renders activity illustrations through the images endpoint and
// hands back the hosted URL.
type ImageEngine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func NewImage(key, model string) *ImageEngine {
	return &ImageEngine{
		APIKey: key,
		Model:  model,
		// Image renders routinely take longer than chat completions.
		httpc: &http.Client{Timeout: 120 * time.Second},
	}
}

func (e *ImageEngine) GenerateImage(ctx context.Context, style string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	body := map[string]any{
		"model":  e.Model,
		"prompt": style,
		"n":      1,
		"size":   "1024x1024",
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", "https://api.openai.com/v1/images/generations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai image %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Data) == 0 || out.Data[0].URL == "" {
		return "", fmt.Errorf("openai image: empty data")
	}
	return out.Data[0].URL, nil
}
