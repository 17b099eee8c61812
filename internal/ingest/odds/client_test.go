package odds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/ingest"
)

const oddsBody = `[
  {
    "id": "e1",
    "sport_key": "icehockey_nhl",
    "commence_time": "2026-01-20T00:00:00Z",
    "home_team": "Toronto Maple Leafs",
    "away_team": "Boston Bruins",
    "bookmakers": [
      {"key": "fanduel", "title": "FanDuel", "markets": [
        {"key": "h2h", "outcomes": [
          {"name": "Toronto Maple Leafs", "price": 1.75},
          {"name": "Boston Bruins", "price": 2.15}
        ]}
      ]}
    ]
  },
  {"id": "e2", "sport_key": "icehockey_nhl", "commence_time": "2026-01-20T01:00:00Z", "home_team": "", "away_team": "X"},
  {"id": "e3", "sport_key": "icehockey_nhl", "commence_time": "2026-01-20T02:00:00Z", "home_team": "Seattle Kraken", "away_team": "Utah Mammoth", "bookmakers": []}
]`

func TestFetchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/icehockey_nhl/odds", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "decimal", r.URL.Query().Get("oddsFormat"))
		assert.Equal(t, "h2h", r.URL.Query().Get("markets"))
		w.Write([]byte(oddsBody))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", logrus.New())
	games, err := c.FetchGames(context.Background(), "icehockey_nhl")
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "e1", games[0].ID)
	assert.Equal(t, "e3", games[1].ID)

	home, away, ok := games[0].MoneylineOdds("")
	require.True(t, ok)
	assert.Equal(t, 1.75, home)
	assert.Equal(t, 2.15, away)

	_, _, ok = games[1].MoneylineOdds("")
	assert.False(t, ok)
}

func TestFetchGames_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sports/baseball_mlb/odds" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", logrus.New())

	_, err := c.FetchGames(context.Background(), "baseball_mlb")
	assert.True(t, errors.Is(err, ingest.ErrNotFound))

	_, err = c.FetchGames(context.Background(), "icehockey_nhl")
	var statusErr *ingest.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)

	_, err = New(srv.URL, "", logrus.New()).FetchGames(context.Background(), "icehockey_nhl")
	assert.Error(t, err)
}
