package sentiment

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
)

const (
	minScore = 1.0
	maxScore = 10.0

	// DefaultWindow bounds how far back post searches look
	DefaultWindow = 30 * 24 * time.Hour
)

// Post is a single discussion thread title
type Post struct {
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
}

// SearchRequest describes one discussion search. An empty Flair means the
// search is not restricted to a discussion category.
type SearchRequest struct {
	Community string
	Flair     string
	Terms     []string
	Window    time.Duration
}

// PostSearcher queries a social discussion source, newest first
type PostSearcher interface {
	SearchPosts(ctx context.Context, req SearchRequest) ([]Post, error)
}

// AliasSource supplies the lowercased strings that identify a team in titles
type AliasSource interface {
	Aliases(league, name string) []string
}

// Forum is a league's discussion community and its game-discussion category
type Forum struct {
	Community string
	Flair     string
}

// DefaultForums maps sport keys to their main discussion communities
var DefaultForums = map[string]Forum{
	domain.SportNHL: {Community: "hockey", Flair: "Discussion"},
	domain.SportNBA: {Community: "nba", Flair: "Discussion"},
	domain.SportMLB: {Community: "baseball", Flair: "Discussion"},
	domain.SportNFL: {Community: "nfl", Flair: "Discussion"},
}

// Matchup is the input to a sentiment reading
type Matchup struct {
	League     string
	Home       string
	Away       string
	HomeRecord domain.Record
	AwayRecord domain.Record
}

// Tier is one search strategy. A tier yields signal when it returns posts;
// errors and empty results pass control to the next tier.
type Tier struct {
	Source domain.SentimentSource
	Search func(ctx context.Context, m Matchup, terms []string) ([]Post, error)
}

// Observer records which tier produced each score (implemented by metrics.Recorder)
type Observer interface {
	SentimentSource(source string)
}

// Aggregator turns discussion titles into bounded sentiment scores. It never
// returns an error; every failure degrades to the win-percentage fallback.
type Aggregator struct {
	tiers    []Tier
	aliases  AliasSource
	observer Observer
	log      *logrus.Entry
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithObserver attaches source instrumentation
func WithObserver(o Observer) Option {
	return func(a *Aggregator) { a.observer = o }
}

// WithLogger sets the logger
func WithLogger(log *logrus.Logger) Option {
	return func(a *Aggregator) { a.log = log.WithField("component", "sentiment") }
}

// WithTiers replaces the search strategies
func WithTiers(tiers ...Tier) Option {
	return func(a *Aggregator) { a.tiers = tiers }
}

// NewAggregator builds an aggregator whose tiers search forums in order:
// category-restricted first, then the broadened query.
func NewAggregator(searcher PostSearcher, aliases AliasSource, forums map[string]Forum, window time.Duration, opts ...Option) *Aggregator {
	if window <= 0 {
		window = DefaultWindow
	}
	if forums == nil {
		forums = DefaultForums
	}

	a := &Aggregator{
		aliases: aliases,
		log:     logrus.StandardLogger().WithField("component", "sentiment"),
	}
	if searcher != nil {
		a.tiers = []Tier{
			FlairSearch(searcher, forums, window),
			BroadSearch(searcher, forums, window),
		}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FlairSearch restricts the search to the league's discussion category
func FlairSearch(searcher PostSearcher, forums map[string]Forum, window time.Duration) Tier {
	return Tier{
		Source: domain.SentimentFlairSearch,
		Search: func(ctx context.Context, m Matchup, terms []string) ([]Post, error) {
			forum, ok := forums[m.League]
			if !ok || forum.Flair == "" {
				return nil, nil
			}
			return searcher.SearchPosts(ctx, SearchRequest{
				Community: forum.Community,
				Flair:     forum.Flair,
				Terms:     terms,
				Window:    window,
			})
		},
	}
}

// BroadSearch drops the category restriction
func BroadSearch(searcher PostSearcher, forums map[string]Forum, window time.Duration) Tier {
	return Tier{
		Source: domain.SentimentBroadSearch,
		Search: func(ctx context.Context, m Matchup, terms []string) ([]Post, error) {
			forum, ok := forums[m.League]
			if !ok {
				return nil, nil
			}
			return searcher.SearchPosts(ctx, SearchRequest{
				Community: forum.Community,
				Terms:     terms,
				Window:    window,
			})
		},
	}
}

// Score returns sentiment for both sides of a matchup. The first tier that
// returns posts decides; if its posts mention neither team, or no tier returns
// posts, the score falls back to win percentages.
func (a *Aggregator) Score(ctx context.Context, m Matchup) domain.SentimentScore {
	homeAliases := a.aliasesFor(m.League, m.Home)
	awayAliases := a.aliasesFor(m.League, m.Away)
	terms := append(append([]string{}, homeAliases...), awayAliases...)

	for _, tier := range a.tiers {
		posts, err := tier.Search(ctx, m, terms)
		if err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{
				"tier": tier.Source,
				"home": m.Home,
				"away": m.Away,
			}).Warn("⚠️  Sentiment search failed, trying next tier")
			continue
		}
		if len(posts) == 0 {
			continue
		}

		homeMentions, awayMentions := CountMentions(posts, homeAliases, awayAliases)
		if homeMentions+awayMentions == 0 {
			a.log.WithField("tier", tier.Source).Debugf("%d posts but no mentions for %s vs %s", len(posts), m.Home, m.Away)
			break
		}

		score := FromMentions(homeMentions, awayMentions)
		score.Source = tier.Source
		a.record(score.Source)
		return score
	}

	score := Fallback(m.HomeRecord, m.AwayRecord)
	a.record(score.Source)
	return score
}

// CountMentions counts posts whose lowercased title contains any alias of
// each side. A post naming both teams counts once for each.
func CountMentions(posts []Post, homeAliases, awayAliases []string) (home, away int) {
	for _, post := range posts {
		title := strings.ToLower(post.Title)
		if mentions(title, homeAliases) {
			home++
		}
		if mentions(title, awayAliases) {
			away++
		}
	}
	return home, away
}

// FromMentions maps mention shares onto the 1-10 scale
func FromMentions(home, away int) domain.SentimentScore {
	total := home + away
	if total <= 0 {
		return domain.SentimentScore{Home: minScore, Away: minScore}
	}
	return domain.SentimentScore{
		Home: clamp(minScore + float64(home)/float64(total)*9),
		Away: clamp(minScore + float64(away)/float64(total)*9),
	}
}

// Fallback derives sentiment from win percentage alone
func Fallback(home, away domain.Record) domain.SentimentScore {
	return domain.SentimentScore{
		Home:   clamp(minScore + home.WinPct()*9),
		Away:   clamp(minScore + away.WinPct()*9),
		Source: domain.SentimentWinPctFallback,
	}
}

func (a *Aggregator) aliasesFor(league, team string) []string {
	if a.aliases != nil {
		if aliases := a.aliases.Aliases(league, team); len(aliases) > 0 {
			return aliases
		}
	}
	if n := strings.ToLower(strings.TrimSpace(team)); n != "" {
		return []string{n}
	}
	return nil
}

func (a *Aggregator) record(source domain.SentimentSource) {
	if a.observer != nil {
		a.observer.SentimentSource(string(source))
	}
}

func mentions(title string, aliases []string) bool {
	for _, alias := range aliases {
		if alias != "" && strings.Contains(title, alias) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return minScore
	case v < minScore:
		return minScore
	case v > maxScore:
		return maxScore
	}
	return v
}
