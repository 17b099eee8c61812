package goalies

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/augur/internal/domain"
)

// Starter is one team's projected goalie as listed on the page
type Starter struct {
	Team   string
	Goalie domain.Goalie
}

// ParseHTML converts raw HTML to a goquery Document for parsing
func ParseHTML(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

// ParseStartingGoalies extracts starters from the page. Matchup cards are
// tried first, then the plain table layout some mirrors serve.
func ParseStartingGoalies(doc *goquery.Document) []Starter {
	var starters []Starter

	doc.Find("[data-goalie-card]").Each(func(_ int, card *goquery.Selection) {
		if s, ok := parseCard(card); ok {
			starters = append(starters, s)
		}
	})

	if len(starters) == 0 {
		doc.Find("table.starting-goalies tbody tr").Each(func(_ int, row *goquery.Selection) {
			if s, ok := parseRow(row); ok {
				starters = append(starters, s)
			}
		})
	}

	return starters
}

func parseCard(card *goquery.Selection) (Starter, bool) {
	team := strings.TrimSpace(card.Find(".team-name").First().Text())
	name := strings.TrimSpace(card.Find(".goalie-name").First().Text())
	if team == "" || name == "" {
		return Starter{}, false
	}

	g := domain.Goalie{
		Name:      name,
		Confirmed: isConfirmed(card.Find(".goalie-status").First().Text()),
	}
	card.Find("[data-stat]").Each(func(_ int, stat *goquery.Selection) {
		key, _ := stat.Attr("data-stat")
		applyStat(&g, key, stat.Text())
	})

	return Starter{Team: team, Goalie: g}, true
}

// parseRow reads: team | goalie | status | GAA | SV% | GSAx
func parseRow(row *goquery.Selection) (Starter, bool) {
	cells := row.Find("td")
	if cells.Length() < 5 {
		return Starter{}, false
	}
	cell := func(i int) string { return strings.TrimSpace(cells.Eq(i).Text()) }

	team, name := cell(0), cell(1)
	if team == "" || name == "" {
		return Starter{}, false
	}

	g := domain.Goalie{Name: name, Confirmed: isConfirmed(cell(2))}
	applyStat(&g, "gaa", cell(3))
	applyStat(&g, "sv", cell(4))
	if cells.Length() > 5 {
		applyStat(&g, "gsax", cell(5))
	}
	return Starter{Team: team, Goalie: g}, true
}

func applyStat(g *domain.Goalie, key, text string) {
	v, ok := parseNumber(text)
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "gaa":
		g.GAA = v
	case "sv", "sv%", "svpct":
		// pages show either .915 or 91.5
		if v > 1 {
			v /= 100
		}
		g.SavePct = v
	case "gsax":
		g.GSAx = &v
	}
}

func parseNumber(text string) (float64, bool) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	if text == "" || text == "-" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isConfirmed(status string) bool {
	return strings.Contains(strings.ToLower(status), "confirmed") &&
		!strings.Contains(strings.ToLower(status), "unconfirmed")
}
