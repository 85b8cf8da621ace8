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

// GoogleBusiness публикует записи в профиле компании через localPosts API.
type GoogleBusiness struct {
	BaseURL  string
	account  string
	location string
	token    string
	http     *http.Client
}

func NewGoogleBusiness(account, location, token string) *GoogleBusiness {
	return &GoogleBusiness{
		BaseURL:  "https://mybusiness.googleapis.com/v4",
		account:  account,
		location: location,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

type localPost struct {
	LanguageCode string `json:"languageCode"`
	Summary      string `json:"summary"`
	TopicType    string `json:"topicType"`
}

type localPostResponse struct {
	Name      string `json:"name,omitempty"`
	State     string `json:"state,omitempty"`
	SearchURL string `json:"searchUrl,omitempty"`
	Error     *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

func (g *GoogleBusiness) Publish(ctx context.Context, content string) (PublishResult, error) {
	body, err := json.Marshal(localPost{
		LanguageCode: "en-US",
		Summary:      content,
		TopicType:    "STANDARD",
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/accounts/%s/locations/%s/localPosts", g.BaseURL, g.account, g.location)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.http.Do(req)
	if err != nil {
		return PublishResult{}, fmt.Errorf("local posts request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	var lp localPostResponse
	if err := json.Unmarshal(respBody, &lp); err != nil {
		return PublishResult{}, fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if lp.Error != nil {
		return PublishResult{}, fmt.Errorf("local posts error %s: %s", lp.Error.Status, lp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return PublishResult{}, fmt.Errorf("local posts status %d: %s", resp.StatusCode, string(respBody))
	}

	return PublishResult{
		PostID: lp.Name,
		URL:    lp.SearchURL,
	}, nil
}
