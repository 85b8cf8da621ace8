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

// LinkedIn публикует посты через UGC Posts API от имени организации
// или участника (author — URN).
type LinkedIn struct {
	BaseURL string
	author  string
	token   string
	http    *http.Client
}

func NewLinkedIn(author, token string) *LinkedIn {
	return &LinkedIn{
		BaseURL: "https://api.linkedin.com/v2",
		author:  author,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type linkedinShareText struct {
	Text string `json:"text"`
}

type linkedinShareContent struct {
	ShareCommentary    linkedinShareText `json:"shareCommentary"`
	ShareMediaCategory string            `json:"shareMediaCategory"`
}

type linkedinPost struct {
	Author          string                          `json:"author"`
	LifecycleState  string                          `json:"lifecycleState"`
	SpecificContent map[string]linkedinShareContent `json:"specificContent"`
	Visibility      map[string]string               `json:"visibility"`
}

type linkedinResponse struct {
	ID               string `json:"id"`
	Message          string `json:"message,omitempty"`
	ServiceErrorCode int    `json:"serviceErrorCode,omitempty"`
}

func (l *LinkedIn) Publish(ctx context.Context, content string) (PublishResult, error) {
	post := linkedinPost{
		Author:         l.author,
		LifecycleState: "PUBLISHED",
		SpecificContent: map[string]linkedinShareContent{
			"com.linkedin.ugc.ShareContent": {
				ShareCommentary:    linkedinShareText{Text: content},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	body, err := json.Marshal(post)
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.BaseURL+"/ugcPosts", bytes.NewReader(body))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := l.http.Do(req)
	if err != nil {
		return PublishResult{}, fmt.Errorf("ugc api request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return PublishResult{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var le linkedinResponse
		if json.Unmarshal(respBody, &le) == nil && le.Message != "" {
			return PublishResult{}, fmt.Errorf("ugc api error %d: %s", le.ServiceErrorCode, le.Message)
		}
		return PublishResult{}, fmt.Errorf("ugc api status %d: %s", resp.StatusCode, string(respBody))
	}

	var created linkedinResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return PublishResult{}, fmt.Errorf("failed to parse response: %w", err)
	}
	id := created.ID
	if id == "" {
		// LinkedIn возвращает URN поста и в заголовке.
		id = resp.Header.Get("X-Restli-Id")
	}

	return PublishResult{
		PostID: id,
		URL:    "https://www.linkedin.com/feed/update/" + id,
	}, nil
}
