package odds

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest"
)

// BaseURL is The Odds API v4 root
const BaseURL = "https://api.the-odds-api.com/v4"

// Client fetches upcoming games with decimal moneyline prices
type Client struct {
	baseURL    string
	apiKey     string
	regions    string
	httpClient *http.Client
	log        *logrus.Entry
}

// New creates an odds client. An empty baseURL uses BaseURL.
func New(baseURL, apiKey string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		regions:    "us",
		httpClient: ingest.NewHTTPClient(),
		log:        log.WithField("component", "odds"),
	}
}

type event struct {
	ID           string             `json:"id"`
	SportKey     string             `json:"sport_key"`
	CommenceTime time.Time          `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []domain.Bookmaker `json:"bookmakers"`
}

// FetchGames returns upcoming games for a sport in the provider's order
func (c *Client) FetchGames(ctx context.Context, sport string) ([]domain.Game, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("odds api key not configured")
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("regions", c.regions)
	q.Set("markets", domain.MarketH2H)
	q.Set("oddsFormat", "decimal")
	q.Set("dateFormat", "iso")
	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.baseURL, url.PathEscape(sport), q.Encode())

	var events []event
	if err := ingest.GetJSON(ctx, c.httpClient, endpoint, nil, &events); err != nil {
		return nil, fmt.Errorf("fetching odds for %s: %w", sport, err)
	}

	games := make([]domain.Game, 0, len(events))
	for _, e := range events {
		if e.HomeTeam == "" || e.AwayTeam == "" {
			continue
		}
		games = append(games, domain.Game{
			ID:           e.ID,
			SportKey:     e.SportKey,
			HomeTeam:     e.HomeTeam,
			AwayTeam:     e.AwayTeam,
			CommenceTime: e.CommenceTime,
			Bookmakers:   e.Bookmakers,
		})
	}

	c.log.WithField("sport", sport).Debugf("Fetched %d games", len(games))
	return games, nil
}
