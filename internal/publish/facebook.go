package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Facebook публикует посты на странице через Graph API.
type Facebook struct {
	BaseURL string
	pageID  string
	token   string
	http    *http.Client
}

func NewFacebook(pageID, token string) *Facebook {
	return &Facebook{
		BaseURL: "https://graph.facebook.com/v19.0",
		pageID:  pageID,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type facebookPost struct {
	Message string `json:"message"`
}

type facebookResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (f *Facebook) Publish(ctx context.Context, content string) (PublishResult, error) {
	body, err := json.Marshal(facebookPost{Message: content})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/feed", f.BaseURL, f.pageID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)

	resp, err := f.http.Do(req)
	if err != nil {
		return PublishResult{}, fmt.Errorf("graph api request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	var fb facebookResponse
	if err := json.Unmarshal(respBody, &fb); err != nil {
		return PublishResult{}, fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if fb.Error != nil {
		return PublishResult{}, fmt.Errorf("graph api error %d: %s", fb.Error.Code, fb.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return PublishResult{}, fmt.Errorf("graph api status %d: %s", resp.StatusCode, string(respBody))
	}

	return PublishResult{
		PostID: fb.ID,
		URL:    "https://www.facebook.com/" + fb.ID,
	}, nil
}
