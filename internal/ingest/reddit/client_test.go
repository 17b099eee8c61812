package reddit

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/sentiment"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name  string
		flair string
		terms []string
		want  string
	}{
		{"single term", "", []string{"leafs"}, `"leafs"`},
		{"or terms", "", []string{"leafs", "habs", "leafs"}, `("leafs" OR "habs")`},
		{"with flair", "Discussion", []string{"leafs", "habs"}, `flair:"Discussion" ("leafs" OR "habs")`},
		{"flair only", "Discussion", nil, `flair:"Discussion"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.flair, tt.terms))
		})
	}
}

func TestSearchPosts(t *testing.T) {
	now := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-48 * time.Hour).Unix()
	stale := now.Add(-60 * 24 * time.Hour).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/hockey/search.json", r.URL.Path)
		assert.Equal(t, "new", r.URL.Query().Get("sort"))
		assert.Equal(t, "month", r.URL.Query().Get("t"))
		assert.Equal(t, "1", r.URL.Query().Get("restrict_sr"))
		assert.Contains(t, r.URL.Query().Get("q"), `flair:"Discussion"`)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprintf(w, `{"data":{"children":[
			{"data":{"title":"Leafs win","created_utc":%d}},
			{"data":{"title":"Old news","created_utc":%d}}
		]}}`, recent, stale)
	}))
	defer srv.Close()

	c := New(srv.URL, logrus.New())
	c.now = func() time.Time { return now }

	posts, err := c.SearchPosts(context.Background(), sentiment.SearchRequest{
		Community: "hockey",
		Flair:     "Discussion",
		Terms:     []string{"leafs"},
		Window:    30 * 24 * time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Leafs win", posts[0].Title)
	assert.Equal(t, recent, posts[0].Created.Unix())
}

func TestSearchPosts_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := New(srv.URL, logrus.New()).SearchPosts(context.Background(), sentiment.SearchRequest{Community: "nba"})
	assert.Error(t, err)

	_, err = New(srv.URL, logrus.New()).SearchPosts(context.Background(), sentiment.SearchRequest{})
	assert.Error(t, err)
}

func TestTimeFilter(t *testing.T) {
	assert.Equal(t, "all", timeFilter(0))
	assert.Equal(t, "day", timeFilter(12*time.Hour))
	assert.Equal(t, "week", timeFilter(7*24*time.Hour))
	assert.Equal(t, "month", timeFilter(30*24*time.Hour))
	assert.Equal(t, "year", timeFilter(90*24*time.Hour))
}
