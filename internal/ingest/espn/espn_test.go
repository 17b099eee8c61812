package espn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest"
	"github.com/fortuna/augur/internal/teams"
)

const scoreboardJSON = `{"events":[
  {"id":"401","date":"2026-01-18T00:00Z","status":{"type":{"state":"post","completed":true}},
   "competitions":[{"competitors":[
     {"homeAway":"home","winner":true,"score":"4","team":{"id":"21","abbreviation":"TOR","displayName":"Toronto Maple Leafs"}},
     {"homeAway":"away","winner":false,"score":"2","team":{"id":"1","abbreviation":"BOS","displayName":"Boston Bruins"}}
   ]}]},
  {"id":"402","date":"2026-01-19T23:30:00Z","status":{"type":{"state":"pre"}},
   "competitions":[{"competitors":[
     {"homeAway":"home","team":{"id":"11","abbreviation":"NJ"}},
     {"homeAway":"away","team":{"id":"10","abbreviation":"MTL","displayName":"Montreal Canadiens"}}
   ]}]},
  {"id":"bad","date":"not a date","competitions":[]},
  {"id":"403","date":"2026-01-19T23:30:00Z","competitions":[{"competitors":[]}]}
]}`

const standingsJSON = `{"children":[
  {"name":"Eastern Conference","standings":{"entries":[
    {"team":{"id":"21","abbreviation":"TOR","displayName":"Toronto Maple Leafs"},"stats":[
      {"name":"wins","value":30},{"name":"losses","value":15},{"name":"otLosses","value":5},
      {"name":"streak","displayValue":"W3"},{"name":"gamesPlayed","value":50},
      {"name":"pointsFor","value":170},{"name":"pointsAgainst","value":140},
      {"name":"Last Ten Games","type":"lasttengames","summary":"7-2-1"}
    ]}
  ]},
  "children":[{"name":"Atlantic","standings":{"entries":[
    {"team":{"id":"1","abbreviation":"BOS","displayName":"Boston Bruins"},"stats":[
      {"name":"wins","value":25},{"name":"losses","value":20},
      {"name":"avgPointsFor","value":3.1},{"name":"avgPointsAgainst","value":3.0}
    ]}
  ]}}]}
]}`

const injuriesJSON = `{"injuries":[
  {"displayName":"Boston Bruins","injuries":[
    {"status":"Out","shortComment":"Lower body","athlete":{"displayName":"Charlie McAvoy","position":{"abbreviation":"D"}}},
    {"status":"Day-To-Day","athlete":{"displayName":"Brad Marchand"}},
    {"status":"Out","athlete":{}}
  ]},
  {"displayName":"","injuries":[{"athlete":{"displayName":"Nobody"}}]}
]}`

const teamScheduleJSON = `{"events":[
  {"id":"1","date":"2025-11-01T23:00Z","competitions":[{"status":{"type":{"completed":true}},"competitors":[
    {"homeAway":"home","winner":true,"score":{"value":3,"displayValue":"3"},"team":{"abbreviation":"TOR","displayName":"Toronto Maple Leafs"}},
    {"homeAway":"away","winner":false,"score":{"value":1,"displayValue":"1"},"team":{"abbreviation":"BOS","displayName":"Boston Bruins"}}
  ]}]},
  {"id":"2","date":"2025-12-01T23:00Z","competitions":[{"status":{"type":{"completed":true}},"competitors":[
    {"homeAway":"home","winner":true,"score":{"value":5},"team":{"abbreviation":"BOS","displayName":"Boston Bruins"}},
    {"homeAway":"away","winner":false,"score":{"value":2},"team":{"abbreviation":"TOR","displayName":"Toronto Maple Leafs"}}
  ]}]},
  {"id":"3","date":"2025-12-05T23:00Z","competitions":[{"status":{"type":{"completed":true}},"competitors":[
    {"homeAway":"home","winner":true,"score":"4","team":{"abbreviation":"TOR","displayName":"Toronto Maple Leafs"}},
    {"homeAway":"away","score":"0","team":{"abbreviation":"OTT","displayName":"Ottawa Senators"}}
  ]}]},
  {"id":"4","date":"2026-03-01T23:00Z","competitions":[{"status":{"type":{"state":"pre"}},"competitors":[
    {"homeAway":"home","team":{"abbreviation":"TOR","displayName":"Toronto Maple Leafs"}},
    {"homeAway":"away","team":{"abbreviation":"BOS","displayName":"Boston Bruins"}}
  ]}]}
]}`

func decode(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out
}

func TestParseScoreboard(t *testing.T) {
	games := ParseScoreboard(decode(t, scoreboardJSON))
	require.Len(t, games, 2)

	first := games[0]
	assert.Equal(t, "401", first.ID)
	assert.Equal(t, time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "final", first.Status)
	assert.Equal(t, "TOR", first.Home.Abbreviation)
	assert.Equal(t, 4, first.HomeScore)
	assert.True(t, first.HomeWinner)

	assert.Equal(t, "scheduled", games[1].Status)
	assert.Equal(t, "NJ", games[1].Home.Abbreviation)
	assert.Empty(t, games[1].Home.DisplayName)
}

func TestParseStandings(t *testing.T) {
	standings := ParseStandings(decode(t, standingsJSON))
	require.Len(t, standings, 2)

	tor := standings[0]
	assert.Equal(t, "30-15-5", tor.Record())
	assert.Equal(t, "W3", tor.Streak)
	assert.Equal(t, "7-2-1", tor.LastTen)
	assert.InDelta(t, 3.4, tor.PointsFor, 1e-9)
	assert.InDelta(t, 2.8, tor.PointsAgainst, 1e-9)

	bos := standings[1]
	assert.Equal(t, "25-20", bos.Record())
	assert.Equal(t, 3.1, bos.PointsFor)
	assert.Equal(t, 3.0, bos.PointsAgainst)
}

func TestParseInjuries(t *testing.T) {
	injuries := ParseInjuries(decode(t, injuriesJSON))
	require.Len(t, injuries, 2)

	assert.Equal(t, "Boston Bruins", injuries[0].Team)
	assert.Equal(t, domain.Injury{Player: "Charlie McAvoy", Position: "D", Status: "Out", Detail: "Lower body"}, injuries[0].Injury)
	assert.Equal(t, "Day-To-Day", injuries[1].Injury.Status)
}

func TestParseHelpers(t *testing.T) {
	assert.Equal(t, 3, parseScore(map[string]interface{}{"value": 3.0}))
	assert.Equal(t, 7, parseScore("7"))
	assert.Equal(t, 0, parseScore(nil))
	assert.Equal(t, "b", fallbackString("", "  ", "b"))

	_, err := parseDate("yesterday")
	assert.Error(t, err)
}

func newTestIngester(t *testing.T, handler http.HandlerFunc) *Ingester {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	registry, err := teams.DefaultRegistry()
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	client := New(srv.URL+"/apis/site/v2/sports", log).WithHTTPClient(srv.Client())
	return NewIngester(client, registry, log)
}

func TestIngester_Schedule(t *testing.T) {
	asOf := time.Date(2026, 1, 20, 12, 0, 0, 0, time.UTC)
	ing := newTestIngester(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apis/site/v2/sports/hockey/nhl/scoreboard", r.URL.Path)
		assert.Equal(t, "20260106-20260121", r.URL.Query().Get("dates"))
		w.Write([]byte(scoreboardJSON))
	})

	games, err := ing.Schedule(context.Background(), domain.SportNHL, asOf)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "Toronto Maple Leafs", games[0].HomeTeam)
	assert.Equal(t, "New Jersey Devils", games[1].HomeTeam)
	assert.Equal(t, "Montréal Canadiens", games[1].AwayTeam)
	assert.Equal(t, domain.SportNHL, games[1].SportKey)
}

func TestIngester_TeamStatsAndInjuries(t *testing.T) {
	ing := newTestIngester(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/apis/v2/sports/hockey/nhl/standings":
			w.Write([]byte(standingsJSON))
		case "/apis/site/v2/sports/hockey/nhl/injuries":
			w.Write([]byte(injuriesJSON))
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := ing.TeamStats(context.Background(), domain.SportNHL)
	require.NoError(t, err)
	tor := stats["Toronto Maple Leafs"]
	assert.Equal(t, "30-15-5", tor.Record)
	assert.Equal(t, "7-2-1", tor.LastTen)
	pf, ok := tor.Stat(domain.StatPointsFor)
	assert.True(t, ok)
	assert.InDelta(t, 3.4, pf, 1e-9)

	injuries, err := ing.Injuries(context.Background(), domain.SportNHL)
	require.NoError(t, err)
	assert.Len(t, injuries["Boston Bruins"], 2)

	_, err = ing.Injuries(context.Background(), "cricket_ipl")
	assert.Error(t, err)
}

func TestIngester_HeadToHead(t *testing.T) {
	ing := newTestIngester(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/apis/site/v2/sports/hockey/nhl/teams/tor/schedule", r.URL.Path)
		w.Write([]byte(teamScheduleJSON))
	})

	h2h, err := ing.HeadToHead(context.Background(), domain.SportNHL, "Toronto Maple Leafs", "Boston Bruins")
	require.NoError(t, err)
	assert.Equal(t, domain.H2H{Home: "1-1", Away: "1-1"}, h2h)

	_, err = ing.HeadToHead(context.Background(), domain.SportNHL, "Hartford Whalers", "Boston Bruins")
	assert.Error(t, err)
}

func TestIngester_OffSeason(t *testing.T) {
	ing := newTestIngester(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := ing.TeamStats(context.Background(), domain.SportMLB)
	assert.True(t, errors.Is(err, ingest.ErrNotFound))
}
