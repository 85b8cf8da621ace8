package fetcher_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"synapse/internal/fetcher"
	"synapse/internal/models"
)

func TestFetchRSS(t *testing.T) {
	testCases := []struct {
		name     string
		xml      string
		expected models.RSS
		wantErr  bool
	}{
		{
			name: "valid rss",
			xml: `<?xml version="1.0" encoding="UTF-8"?>
			<rss version="2.0">
				<channel>
					<title>Industry Watch</title>
					<item>
						<title>AI platform launches automation suite</title>
						<description>A new software platform for small businesses</description>
						<pubDate>Wed, 03 May 2023 15:04:05 +0000</pubDate>
						<link>http://example.com/ai-platform</link>
					</item>
				</channel>
			</rss>`,
			expected: models.RSS{
				Channel: models.Channel{
					Title: "Industry Watch",
					Items: []models.Item{
						{
							Title:       "AI platform launches automation suite",
							Description: "A new software platform for small businesses",
							PubDate:     "Wed, 03 May 2023 15:04:05 +0000",
							Link:        "http://example.com/ai-platform",
						},
					},
				},
			},
			wantErr: false,
		},
		{
			name:    "malformed xml",
			xml:     `<rss><channel><title>Broken`,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.xml))
			}))
			defer server.Close()

			result, err := fetcher.FetchRSS(server.URL)
			if (err != nil) != tc.wantErr {
				t.Fatalf("FetchRSS() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr {
				return
			}

			if result.Channel.Title != tc.expected.Channel.Title {
				t.Errorf("Expected title %q, got %q", tc.expected.Channel.Title, result.Channel.Title)
			}

			if len(result.Channel.Items) != len(tc.expected.Channel.Items) {
				t.Fatalf("Expected %d items, got %d", len(tc.expected.Channel.Items), len(result.Channel.Items))
			}

			for i, item := range result.Channel.Items {
				if item.Title != tc.expected.Channel.Items[i].Title {
					t.Errorf("Item %d title mismatch: expected %q, got %q", i, tc.expected.Channel.Items[i].Title, item.Title)
				}
			}
		})
	}
}
