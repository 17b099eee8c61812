package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is a win/loss(/overtime-loss) record such as "10-4" or "30-12-5"
type Record struct {
	Wins     int `json:"wins"`
	Losses   int `json:"losses"`
	OTLosses int `json:"ot_losses,omitempty"`
}

// ParseRecord parses a delimited record string. Malformed input yields the zero record.
func ParseRecord(s string) Record {
	s = strings.TrimSpace(s)
	if s == "" {
		return Record{}
	}

	parts := strings.Split(s, "-")
	if len(parts) < 2 || len(parts) > 3 {
		return Record{}
	}

	values := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return Record{}
		}
		values[i] = n
	}

	return Record{Wins: values[0], Losses: values[1], OTLosses: values[2]}
}

// RecordFromAny parses decoded JSON values; anything but a string is the zero record
func RecordFromAny(v interface{}) Record {
	s, ok := v.(string)
	if !ok {
		return Record{}
	}
	return ParseRecord(s)
}

// Games returns the total games played
func (r Record) Games() int {
	return r.Wins + r.Losses + r.OTLosses
}

// WinPct returns wins / games played, 0 when no games have been played
func (r Record) WinPct() float64 {
	total := r.Games()
	if total == 0 {
		return 0
	}
	return float64(r.Wins) / float64(total)
}

// IsZero reports whether no games are recorded
func (r Record) IsZero() bool {
	return r.Games() == 0
}

func (r Record) String() string {
	if r.OTLosses > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.OTLosses)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}
