package pandascore

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

// APIClient is the HTTP client for the PandaScore API.
type APIClient struct {
	httpClient *http.Client
	token      string
	BaseURL    string
}

// NewClient creates a new PandaScore client. The token is required; callers
// are expected to have validated it at startup.
func NewClient(token, baseURL string) PandaScoreClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      token,
		BaseURL:    baseURL,
	}
}

// Ensure APIClient implements the PandaScoreClient interface.
var _ PandaScoreClient = (*APIClient)(nil)

// get issues a single GET and returns the raw body. Non-2xx responses become
// a *FetchError; there is no automatic retry, callers decide what to do.
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
	req.Header.Set("Authorization", "Bearer "+c.token)

	log.Debug("Requesting from PandaScore API", "url", u)
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
		log.Error("Received non-OK HTTP status from PandaScore API", "status", resp.StatusCode, "body", truncated)
		return nil, &FetchError{Status: resp.StatusCode, Body: truncated}
	}
	return body, nil
}

// GetSchedule fetches the match schedule for a league from a given date.
func (c *APIClient) GetSchedule(leagueID string, fromDate string) ([]ScheduleMatch, error) {
	query := url.Values{}
	query.Set("filter[league_id]", leagueID)
	query.Set("sort", "begin_at")
	query.Set("page[size]", "100")
	if fromDate != "" {
		query.Set("range[begin_at]", fromDate)
	}

	body, err := c.get("/lol/matches", query)
	if err != nil {
		return nil, err
	}

	var matches []ScheduleMatch
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to decode schedule response: %w", err)
	}
	log.Info("Fetched schedule from PandaScore", "count", len(matches), "league", leagueID)
	return matches, nil
}

// SearchTeams looks up teams by name. An empty result set is a hard failure;
// disambiguation between multiple candidates is the caller's job.
func (c *APIClient) SearchTeams(query string) ([]TeamDetail, error) {
	params := url.Values{}
	params.Set("search[name]", query)

	body, err := c.get("/lol/teams", params)
	if err != nil {
		return nil, err
	}

	var teams []TeamDetail
	if err := json.Unmarshal(body, &teams); err != nil {
		return nil, fmt.Errorf("failed to decode team search response: %w", err)
	}
	if len(teams) == 0 {
		return nil, fmt.Errorf("team not found: %q", query)
	}
	return teams, nil
}

// GetTeam fetches a single team with its roster.
func (c *APIClient) GetTeam(teamID string) (TeamDetail, error) {
	body, err := c.get("/lol/teams/"+teamID, nil)
	if err != nil {
		return TeamDetail{}, err
	}

	var team TeamDetail
	if err := json.Unmarshal(body, &team); err != nil {
		return TeamDetail{}, fmt.Errorf("failed to decode team response: %w", err)
	}
	return team, nil
}

// GetTeamRaw returns the provider JSON unmodified for the inspect mode.
func (c *APIClient) GetTeamRaw(teamID string) (json.RawMessage, error) {
	return c.get("/lol/teams/"+teamID, nil)
}

// GetMatchRaw returns the provider JSON unmodified for the inspect mode.
func (c *APIClient) GetMatchRaw(matchID string) (json.RawMessage, error) {
	return c.get("/lol/matches/"+matchID, nil)
}
