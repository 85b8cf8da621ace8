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

// Twitter публикует твиты через API v2.
type Twitter struct {
	BaseURL string
	token   string
	http    *http.Client
}

func NewTwitter(token string) *Twitter {
	return &Twitter{
		BaseURL: "https://api.twitter.com/2",
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type tweetRequest struct {
	Text string `json:"text"`
}

type tweetResponse struct {
	Data *struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (tw *Twitter) Publish(ctx context.Context, content string) (PublishResult, error) {
	body, err := json.Marshal(tweetRequest{Text: content})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", tw.BaseURL+"/tweets", bytes.NewReader(body))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tw.token)

	resp, err := tw.http.Do(req)
	if err != nil {
		return PublishResult{}, fmt.Errorf("twitter api request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	var tr tweetResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return PublishResult{}, fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		if tr.Detail != "" {
			return PublishResult{}, fmt.Errorf("twitter api error: %s", tr.Detail)
		}
		return PublishResult{}, fmt.Errorf("twitter api status %d: %s", resp.StatusCode, string(respBody))
	}
	if tr.Data == nil {
		return PublishResult{}, fmt.Errorf("twitter api returned no tweet data")
	}

	return PublishResult{
		PostID: tr.Data.ID,
		URL:    "https://twitter.com/i/web/status/" + tr.Data.ID,
	}, nil
}
