package mlb

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest"
)

// BaseURL is the public MLB Stats API
const BaseURL = "https://statsapi.mlb.com/api/v1"

// Client reads probable pitchers and team run-environment stats
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// New creates an MLB Stats API client. An empty baseURL uses BaseURL.
func New(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: ingest.NewHTTPClient(),
		log:        log.WithField("component", "mlb"),
	}
}

type scheduleResponse struct {
	Dates []struct {
		Games []struct {
			GamePk int `json:"gamePk"`
			Teams  struct {
				Home scheduleSide `json:"home"`
				Away scheduleSide `json:"away"`
			} `json:"teams"`
		} `json:"games"`
	} `json:"dates"`
}

type scheduleSide struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	ProbablePitcher *struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
	} `json:"probablePitcher"`
}

type peopleResponse struct {
	People []struct {
		ID       int    `json:"id"`
		FullName string `json:"fullName"`
		Stats    []struct {
			Splits []struct {
				Stat map[string]interface{} `json:"stat"`
			} `json:"splits"`
		} `json:"stats"`
	} `json:"people"`
}

type teamStatsResponse struct {
	Stats []struct {
		Splits []struct {
			Team struct {
				Name string `json:"name"`
			} `json:"team"`
			Stat map[string]interface{} `json:"stat"`
		} `json:"splits"`
	} `json:"stats"`
}

// ProbablePitchers returns the announced starters for date keyed by team name,
// with season ERA and WHIP. Teams without an announced starter are omitted.
func (c *Client) ProbablePitchers(ctx context.Context, date time.Time) (map[string]domain.Pitcher, error) {
	q := url.Values{}
	q.Set("sportId", "1")
	q.Set("date", date.Format("2006-01-02"))
	q.Set("hydrate", "probablePitcher")

	var schedule scheduleResponse
	if err := ingest.GetJSON(ctx, c.httpClient, c.baseURL+"/schedule?"+q.Encode(), nil, &schedule); err != nil {
		return nil, fmt.Errorf("fetching mlb schedule: %w", err)
	}

	starters := make(map[string]int)
	names := make(map[int]string)
	for _, d := range schedule.Dates {
		for _, g := range d.Games {
			for _, side := range []scheduleSide{g.Teams.Home, g.Teams.Away} {
				if side.ProbablePitcher == nil || side.Team.Name == "" {
					continue
				}
				starters[side.Team.Name] = side.ProbablePitcher.ID
				names[side.ProbablePitcher.ID] = side.ProbablePitcher.FullName
			}
		}
	}
	if len(starters) == 0 {
		return map[string]domain.Pitcher{}, nil
	}

	ids := make([]string, 0, len(names))
	for id := range names {
		ids = append(ids, strconv.Itoa(id))
	}
	q = url.Values{}
	q.Set("personIds", strings.Join(ids, ","))
	q.Set("hydrate", fmt.Sprintf("stats(group=[pitching],type=[season],season=%d)", date.Year()))

	var people peopleResponse
	if err := ingest.GetJSON(ctx, c.httpClient, c.baseURL+"/people?"+q.Encode(), nil, &people); err != nil {
		return nil, fmt.Errorf("fetching pitcher stats: %w", err)
	}

	rates := make(map[int]domain.Pitcher, len(people.People))
	for _, p := range people.People {
		pitcher := domain.Pitcher{Name: p.FullName}
		if len(p.Stats) > 0 && len(p.Stats[0].Splits) > 0 {
			stat := p.Stats[0].Splits[0].Stat
			pitcher.ERA = parseRate(stat["era"])
			pitcher.WHIP = parseRate(stat["whip"])
		}
		rates[p.ID] = pitcher
	}

	out := make(map[string]domain.Pitcher, len(starters))
	for team, id := range starters {
		pitcher, ok := rates[id]
		if !ok {
			pitcher = domain.Pitcher{Name: names[id]}
		}
		out[team] = pitcher
	}

	c.log.Debugf("Resolved %d probable pitchers for %s", len(out), date.Format("2006-01-02"))
	return out, nil
}

// TeamRates returns season OPS (hitting) and ERA (pitching) keyed by team name
func (c *Client) TeamRates(ctx context.Context, season int) (map[string]map[string]float64, error) {
	out := make(map[string]map[string]float64)

	for _, group := range []struct {
		name string
		stat string
		key  string
	}{
		{"hitting", "ops", domain.StatOPS},
		{"pitching", "era", domain.StatERA},
	} {
		q := url.Values{}
		q.Set("season", strconv.Itoa(season))
		q.Set("group", group.name)
		q.Set("stats", "season")
		q.Set("sportIds", "1")

		var resp teamStatsResponse
		if err := ingest.GetJSON(ctx, c.httpClient, c.baseURL+"/teams/stats?"+q.Encode(), nil, &resp); err != nil {
			return nil, fmt.Errorf("fetching team %s stats: %w", group.name, err)
		}

		for _, block := range resp.Stats {
			for _, split := range block.Splits {
				if split.Team.Name == "" {
					continue
				}
				if out[split.Team.Name] == nil {
					out[split.Team.Name] = make(map[string]float64)
				}
				out[split.Team.Name][group.key] = parseRate(split.Stat[group.stat])
			}
		}
	}

	return out, nil
}

// parseRate reads rate stats the API serves as strings (".745", "3.21") or numbers
func parseRate(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
