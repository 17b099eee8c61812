package reddit

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/ingest"
	"github.com/fortuna/augur/internal/sentiment"
)

// BaseURL serves the public JSON search endpoints
const BaseURL = "https://www.reddit.com"

const (
	userAgent   = "augur/1.0 (sports predictions)"
	searchLimit = 100
)

// Client searches subreddit post titles
type Client struct {
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	log        *logrus.Entry
}

// New creates a reddit client. An empty baseURL uses BaseURL.
func New(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: ingest.NewHTTPClient(),
		now:        time.Now,
		log:        log.WithField("component", "reddit"),
	}
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title      string  `json:"title"`
				CreatedUTC float64 `json:"created_utc"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// SearchPosts implements sentiment.PostSearcher. Posts come back newest first
// and older than the request window are dropped.
func (c *Client) SearchPosts(ctx context.Context, req sentiment.SearchRequest) ([]sentiment.Post, error) {
	if req.Community == "" {
		return nil, fmt.Errorf("search requires a community")
	}

	q := url.Values{}
	q.Set("q", BuildQuery(req.Flair, req.Terms))
	q.Set("restrict_sr", "1")
	q.Set("sort", "new")
	q.Set("t", timeFilter(req.Window))
	q.Set("limit", fmt.Sprint(searchLimit))
	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", c.baseURL, url.PathEscape(req.Community), q.Encode())

	var resp listing
	headers := map[string]string{"User-Agent": userAgent}
	if err := ingest.GetJSON(ctx, c.httpClient, endpoint, headers, &resp); err != nil {
		return nil, fmt.Errorf("searching r/%s: %w", req.Community, err)
	}

	cutoff := time.Time{}
	if req.Window > 0 {
		cutoff = c.now().Add(-req.Window)
	}

	posts := make([]sentiment.Post, 0, len(resp.Data.Children))
	for _, child := range resp.Data.Children {
		sec, frac := math.Modf(child.Data.CreatedUTC)
		created := time.Unix(int64(sec), int64(frac*1e9)).UTC()
		if !cutoff.IsZero() && created.Before(cutoff) {
			continue
		}
		posts = append(posts, sentiment.Post{Title: child.Data.Title, Created: created})
	}

	c.log.WithFields(logrus.Fields{
		"community": req.Community,
		"flair":     req.Flair,
	}).Debugf("Search returned %d posts", len(posts))
	return posts, nil
}

// BuildQuery ORs the quoted terms and optionally restricts to a flair
func BuildQuery(flair string, terms []string) string {
	quoted := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		quoted = append(quoted, fmt.Sprintf("%q", term))
	}

	query := strings.Join(quoted, " OR ")
	if len(quoted) > 1 {
		query = "(" + query + ")"
	}
	if flair != "" {
		query = strings.TrimSpace(fmt.Sprintf("flair:%q %s", flair, query))
	}
	return query
}

func timeFilter(window time.Duration) string {
	switch {
	case window <= 0:
		return "all"
	case window <= time.Hour:
		return "hour"
	case window <= 24*time.Hour:
		return "day"
	case window <= 7*24*time.Hour:
		return "week"
	case window <= 31*24*time.Hour:
		return "month"
	case window <= 366*24*time.Hour:
		return "year"
	}
	return "all"
}
