package espn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fortuna/augur/internal/domain"
)

// ParseScoreboard extracts events from a scoreboard or team schedule payload.
// Malformed events are skipped.
func ParseScoreboard(data map[string]interface{}) []ParsedGame {
	events := extractArray(data, "events")

	games := make([]ParsedGame, 0, len(events))
	for _, eventInterface := range events {
		event, ok := eventInterface.(map[string]interface{})
		if !ok {
			continue
		}
		game, err := parseEvent(event)
		if err != nil {
			continue
		}
		games = append(games, game)
	}
	return games
}

func parseEvent(event map[string]interface{}) (ParsedGame, error) {
	game := ParsedGame{ID: extractString(event, "id")}

	if dateStr := extractString(event, "date"); dateStr != "" {
		t, err := parseDate(dateStr)
		if err != nil {
			return game, fmt.Errorf("event %s: %w", game.ID, err)
		}
		game.Date = t
	} else {
		return game, fmt.Errorf("event %s: no date", game.ID)
	}

	competitions := extractArray(event, "competitions")
	if len(competitions) == 0 {
		return game, fmt.Errorf("no competitions found for game %s", game.ID)
	}
	comp, _ := competitions[0].(map[string]interface{})

	// schedule payloads carry status on the competition, scoreboards on the event
	status := extractMap(event, "status")
	if len(status) == 0 {
		status = extractMap(comp, "status")
	}
	game.Status = parseGameStatus(status)

	competitors := extractArray(comp, "competitors")
	if len(competitors) < 2 {
		return game, fmt.Errorf("insufficient competitors for game %s", game.ID)
	}

	for _, compInterface := range competitors {
		competitor, ok := compInterface.(map[string]interface{})
		if !ok {
			continue
		}
		team := extractMap(competitor, "team")
		meta := TeamMeta{
			Abbreviation: strings.ToUpper(extractString(team, "abbreviation")),
			ESPNID:       extractString(team, "id"),
			DisplayName:  fallbackString(extractString(team, "displayName"), extractString(team, "name")),
		}
		score := parseScore(competitor["score"])
		winner, _ := competitor["winner"].(bool)

		if extractString(competitor, "homeAway") == "home" {
			game.Home, game.HomeScore, game.HomeWinner = meta, score, winner
		} else {
			game.Away, game.AwayScore, game.AwayWinner = meta, score, winner
		}
	}

	if game.Home.DisplayName == "" && game.Home.Abbreviation == "" {
		return game, fmt.Errorf("no home team for game %s", game.ID)
	}
	return game, nil
}

// ParseStandings walks the nested conference/division groups and returns one
// entry per team
func ParseStandings(data map[string]interface{}) []ParsedStanding {
	var out []ParsedStanding
	walkStandings(data, &out)
	return out
}

func walkStandings(node map[string]interface{}, out *[]ParsedStanding) {
	standings := extractMap(node, "standings")
	for _, entryInterface := range extractArray(standings, "entries") {
		entry, ok := entryInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if s, ok := parseStandingEntry(entry); ok {
			*out = append(*out, s)
		}
	}

	for _, child := range extractArray(node, "children") {
		if childMap, ok := child.(map[string]interface{}); ok {
			walkStandings(childMap, out)
		}
	}
}

func parseStandingEntry(entry map[string]interface{}) (ParsedStanding, bool) {
	team := extractMap(entry, "team")
	s := ParsedStanding{Team: TeamMeta{
		Abbreviation: strings.ToUpper(extractString(team, "abbreviation")),
		ESPNID:       extractString(team, "id"),
		DisplayName:  extractString(team, "displayName"),
	}}
	if s.Team.DisplayName == "" && s.Team.Abbreviation == "" {
		return s, false
	}

	var avgFor, avgAgainst float64
	for _, statInterface := range extractArray(entry, "stats") {
		stat, ok := statInterface.(map[string]interface{})
		if !ok {
			continue
		}
		name := extractString(stat, "name")
		statType := strings.ToLower(extractString(stat, "type"))
		value := extractFloat(stat, "value")

		switch {
		case name == "wins":
			s.Wins = int(value)
		case name == "losses":
			s.Losses = int(value)
		case name == "otLosses", name == "ties":
			s.OTLosses += int(value)
		case name == "streak":
			s.Streak = fallbackString(extractString(stat, "displayValue"), extractString(stat, "summary"))
		case name == "gamesPlayed":
			s.GamesPlayed = value
		case name == "pointsFor":
			s.PointsFor = value
		case name == "pointsAgainst":
			s.PointsAgainst = value
		case name == "avgPointsFor":
			avgFor = value
		case name == "avgPointsAgainst":
			avgAgainst = value
		case statType == "lasttengames", strings.EqualFold(name, "Last Ten Games"):
			s.LastTen = fallbackString(extractString(stat, "summary"), extractString(stat, "displayValue"))
		}
	}

	if s.GamesPlayed == 0 {
		s.GamesPlayed = float64(s.Wins + s.Losses + s.OTLosses)
	}
	// totals are converted to per-game rates; some leagues only publish averages
	if s.GamesPlayed > 0 && s.PointsFor > 0 {
		s.PointsFor /= s.GamesPlayed
		s.PointsAgainst /= s.GamesPlayed
	} else if avgFor > 0 {
		s.PointsFor, s.PointsAgainst = avgFor, avgAgainst
	}
	return s, true
}

// Record renders the standing in W-L or W-L-OTL form
func (s ParsedStanding) Record() string {
	if s.OTLosses > 0 {
		return fmt.Sprintf("%d-%d-%d", s.Wins, s.Losses, s.OTLosses)
	}
	return fmt.Sprintf("%d-%d", s.Wins, s.Losses)
}

// ParseInjuries flattens the league injury report
func ParseInjuries(data map[string]interface{}) []ParsedInjury {
	var out []ParsedInjury
	for _, teamInterface := range extractArray(data, "injuries") {
		team, ok := teamInterface.(map[string]interface{})
		if !ok {
			continue
		}
		label := extractString(team, "displayName")
		if label == "" {
			continue
		}

		for _, injInterface := range extractArray(team, "injuries") {
			inj, ok := injInterface.(map[string]interface{})
			if !ok {
				continue
			}
			athlete := extractMap(inj, "athlete")
			player := extractString(athlete, "displayName")
			if player == "" {
				continue
			}
			out = append(out, ParsedInjury{
				Team: label,
				Injury: domain.Injury{
					Player:   player,
					Position: extractString(extractMap(athlete, "position"), "abbreviation"),
					Status:   fallbackString(extractString(inj, "status"), extractString(extractMap(inj, "type"), "description")),
					Detail:   extractString(inj, "shortComment"),
				},
			})
		}
	}
	return out
}

// Helper functions

func parseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err != nil {
		// ESPN sometimes omits seconds: "2025-11-15T01:00Z"
		t, err = time.Parse("2006-01-02T15:04Z", dateStr)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

func extractString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

func fallbackString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func extractFloat(m map[string]interface{}, key string) float64 {
	switch val := m[key].(type) {
	case float64:
		return val
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	}
	return 0
}

func extractMap(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

func extractArray(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

func parseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(val)
		return i
	case int:
		return val
	default:
		return 0
	}
}

// parseScore reads scores served either as "3" or {"value": 3, "displayValue": "3"}
func parseScore(v interface{}) int {
	if m, ok := v.(map[string]interface{}); ok {
		if value, ok := m["value"]; ok {
			return parseInt(value)
		}
		return parseInt(m["displayValue"])
	}
	return parseInt(v)
}

func parseGameStatus(status map[string]interface{}) string {
	statusType := extractMap(status, "type")

	if completed, ok := statusType["completed"].(bool); ok && completed {
		return "final"
	}

	if state, ok := statusType["state"].(string); ok {
		switch state {
		case "in":
			return "in_progress"
		case "pre":
			return "scheduled"
		case "post":
			return "final"
		}
	}

	return "scheduled"
}
