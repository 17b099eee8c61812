package espn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/ingest"
)

const (
	BaseURL = "https://site.api.espn.com/apis/site/v2/sports"

	// standings live under the v2 API root rather than the site API
	standingsRoot = "https://site.api.espn.com/apis/v2/sports"
)

// Client handles ESPN API requests
// Note: Uses curl internally because ESPN blocks Go's HTTP client fingerprint
type Client struct {
	baseURL      string
	standingsURL string
	httpClient   *http.Client
	log          *logrus.Entry
}

// New creates a new ESPN API client with a custom base URL
func New(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	standingsURL := standingsRoot
	if baseURL != BaseURL {
		standingsURL = strings.Replace(baseURL, "/apis/site/v2/", "/apis/v2/", 1)
	}

	return &Client{
		baseURL:      baseURL,
		standingsURL: standingsURL,
		log:          log.WithField("component", "espn-client"),
	}
}

// WithHTTPClient switches the client from curl to net/http. Used against
// mirrors and test servers that do not fingerprint clients.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// FetchScoreboard fetches games in [from, to]. A zero from fetches ESPN's "today".
func (c *Client) FetchScoreboard(ctx context.Context, sportPath string, from, to time.Time) (map[string]interface{}, error) {
	if from.IsZero() {
		return c.fetch(ctx, fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sportPath))
	}

	dates := from.Format("20060102")
	if !to.IsZero() && to.After(from) {
		dates += "-" + to.Format("20060102")
	}
	return c.fetch(ctx, fmt.Sprintf("%s/%s/scoreboard?dates=%s&limit=500", c.baseURL, sportPath, dates))
}

// FetchStandings fetches league standings with per-team stat entries
func (c *Client) FetchStandings(ctx context.Context, sportPath string) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%s/standings", c.standingsURL, sportPath))
}

// FetchInjuries fetches the league-wide injury report
func (c *Client) FetchInjuries(ctx context.Context, sportPath string) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%s/injuries", c.baseURL, sportPath))
}

// FetchTeamSchedule fetches a team's season schedule; team is an ESPN id or abbreviation
func (c *Client) FetchTeamSchedule(ctx context.Context, sportPath, team string) (map[string]interface{}, error) {
	return c.fetch(ctx, fmt.Sprintf("%s/%s/teams/%s/schedule", c.baseURL, sportPath, strings.ToLower(team)))
}

func (c *Client) fetch(ctx context.Context, url string) (map[string]interface{}, error) {
	if c.httpClient != nil {
		var result map[string]interface{}
		if err := ingest.GetJSON(ctx, c.httpClient, url, nil, &result); err != nil {
			return nil, err
		}
		return result, nil
	}

	output, err := c.curl(ctx, url)
	if err != nil {
		return nil, err
	}

	// Check if we got HTML error page (403, 404, etc.)
	if len(output) > 0 && output[0] == '<' {
		return nil, fmt.Errorf("ESPN returned HTML error page: %s", string(output[:min(len(output), 200)]))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w (body: %s)", err, string(output[:min(len(output), 200)]))
	}

	return result, nil
}

// curl runs the request and splits the trailing status code written by -w
func (c *Client) curl(ctx context.Context, url string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "curl", "-s", "-L", "-m", "15", "-w", "\n%{http_code}", url)
	c.log.Debugf("Running: curl -s -L -m 15 %s", url)

	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("curl failed: %s (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("curl execution failed: %w", err)
	}

	idx := bytes.LastIndexByte(output, '\n')
	if idx < 0 {
		return output, nil
	}
	body, codeText := output[:idx], strings.TrimSpace(string(output[idx+1:]))

	code, err := strconv.Atoi(codeText)
	if err != nil {
		return output, nil
	}
	if code == http.StatusNotFound {
		return nil, ingest.ErrNotFound
	}
	if code < 200 || code > 299 {
		return nil, &ingest.StatusError{URL: url, StatusCode: code, Body: string(body[:min(len(body), 200)])}
	}
	return body, nil
}
