package goalies

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
)

// TeamResolver maps page team labels to canonical names
type TeamResolver interface {
	CanonicalNameIn(league, raw string) string
}

// Resolver produces the day's projected starters, trying each fetcher in turn
// until one yields a parseable page.
type Resolver struct {
	url      string
	fetchers []PageFetcher
	teams    TeamResolver
	log      *logrus.Entry
}

// NewResolver creates a resolver over url. The headless fetcher, when not
// nil, is used only after the plain fetch fails or parses empty.
func NewResolver(url string, plain PageFetcher, headless PageFetcher, teams TeamResolver, log *logrus.Logger) *Resolver {
	if url == "" {
		url = SourceURL
	}
	r := &Resolver{url: url, teams: teams, log: log.WithField("component", "goalies")}
	if plain != nil {
		r.fetchers = append(r.fetchers, plain)
	}
	if headless != nil {
		r.fetchers = append(r.fetchers, headless)
	}
	return r
}

// Starters returns projected goalies keyed by canonical team name
func (r *Resolver) Starters(ctx context.Context) (map[string]domain.Goalie, error) {
	var errs []error

	for i, fetcher := range r.fetchers {
		html, err := fetcher.FetchPage(ctx, r.url)
		if err != nil {
			r.log.WithError(err).Warnf("⚠️  Goalie page fetch %d/%d failed", i+1, len(r.fetchers))
			errs = append(errs, err)
			continue
		}

		doc, err := ParseHTML(html)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		starters := ParseStartingGoalies(doc)
		if len(starters) == 0 {
			r.log.Warnf("⚠️  Goalie page fetch %d/%d had no starters", i+1, len(r.fetchers))
			continue
		}

		out := make(map[string]domain.Goalie, len(starters))
		for _, s := range starters {
			team := s.Team
			if r.teams != nil {
				team = r.teams.CanonicalNameIn(domain.SportNHL, team)
			}
			out[team] = s.Goalie
		}
		r.log.Infof("✓ Resolved %d starting goalies", len(out))
		return out, nil
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("resolving starting goalies: %w", errors.Join(errs...))
	}
	return map[string]domain.Goalie{}, nil
}
