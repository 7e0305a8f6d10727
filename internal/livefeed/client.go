package livefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
)

const bodyTruncateLimit = 512

// APIClient is the HTTP client for the live-score provider.
type APIClient struct {
	httpClient *http.Client
	token      string
	BaseURL    string
}

// NewClient creates a new live-feed client.
func NewClient(token, baseURL string) LiveFeedClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		BaseURL:    baseURL,
	}
}

var _ LiveFeedClient = (*APIClient)(nil)

func (c *APIClient) get(path string, query url.Values) ([]byte, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(context.Background(), "GET", u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Key", c.token)

	log.Debug("Requesting from live-feed API", "url", u)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		truncated := string(body)
		if len(truncated) > bodyTruncateLimit {
			truncated = truncated[:bodyTruncateLimit]
		}
		log.Error("Received non-OK HTTP status from live-feed API", "status", resp.StatusCode, "body", truncated)
		return nil, &FetchError{Status: resp.StatusCode, Body: truncated}
	}
	return body, nil
}

// GetLiveMatches fetches match records for a league within a date range.
func (c *APIClient) GetLiveMatches(leagueID string, from string, to string) ([]LiveMatch, error) {
	query := url.Values{}
	query.Set("league", leagueID)
	query.Set("from", from)
	query.Set("to", to)

	body, err := c.get("/matches", query)
	if err != nil {
		return nil, err
	}

	var matches []LiveMatch
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode live matches response: %w", err)
	}
	log.Info("Fetched live matches", "count", len(matches), "league", leagueID)
	return matches, nil
}

// GetRoster fetches the current roster for a team.
func (c *APIClient) GetRoster(teamID string) ([]RosterPlayer, error) {
	body, err := c.get("/teams/"+teamID+"/roster", nil)
	if err != nil {
		return nil, err
	}

	var roster []RosterPlayer
	if err := json.Unmarshal(body, &roster); err != nil {
		return nil, fmt.Errorf("failed to decode roster response: %w", err)
	}
	return roster, nil
}
