package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// NotAvailable is the display placeholder for factors without a usable value
const NotAvailable = "N/A"

// ConfidenceLabel buckets how far a prediction sits from a coin flip
type ConfidenceLabel string

const (
	SlightEdge      ConfidenceLabel = "Slight Edge"
	GoodChance      ConfidenceLabel = "Good Chance"
	StrongAdvantage ConfidenceLabel = "Strong Advantage"
)

// Factor is one named contribution to a prediction's home score
type Factor struct {
	Name        string  `json:"-"`
	RawValue    float64 `json:"raw_value"`
	Weight      float64 `json:"weight"`
	HomeDisplay string  `json:"home"`
	AwayDisplay string  `json:"away"`
}

// Applies reports whether the factor carries a finite value
func (f Factor) Applies() bool {
	return !math.IsNaN(f.RawValue) && !math.IsInf(f.RawValue, 0)
}

// Contribution is RawValue*Weight, or 0 for non-finite values
func (f Factor) Contribution() float64 {
	if !f.Applies() {
		return 0
	}
	c := f.RawValue * f.Weight
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0
	}
	return c
}

type factorJSON struct {
	RawValue    *float64 `json:"raw_value"`
	Weight      float64  `json:"weight"`
	HomeDisplay string   `json:"home"`
	AwayDisplay string   `json:"away"`
}

// MarshalJSON writes non-finite raw values as null
func (f Factor) MarshalJSON() ([]byte, error) {
	out := factorJSON{Weight: f.Weight, HomeDisplay: f.HomeDisplay, AwayDisplay: f.AwayDisplay}
	if f.Applies() {
		v := f.RawValue
		out.RawValue = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores null raw values as NaN
func (f *Factor) UnmarshalJSON(data []byte) error {
	var in factorJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	f.RawValue = math.NaN()
	if in.RawValue != nil {
		f.RawValue = *in.RawValue
	}
	f.Weight = in.Weight
	f.HomeDisplay = in.HomeDisplay
	f.AwayDisplay = in.AwayDisplay
	return nil
}

// Factors is an ordered set of factors serialized as a JSON object in display order
type Factors []Factor

// Get returns the named factor
func (fs Factors) Get(name string) (Factor, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f, true
		}
	}
	return Factor{}, false
}

// Names returns factor names in display order
func (fs Factors) Names() []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}

// MarshalJSON emits an object whose key order matches slice order
func (fs Factors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object back into a slice, keeping key order
func (fs *Factors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*fs = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("factors: expected object, got %v", tok)
	}

	var out Factors
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("factors: expected key, got %v", tok)
		}
		var f Factor
		if err := dec.Decode(&f); err != nil {
			return fmt.Errorf("factors: decoding %q: %w", name, err)
		}
		f.Name = name
		out = append(out, f)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*fs = out
	return nil
}

// Auxiliary carries display-only context alongside a prediction
type Auxiliary struct {
	Weather   *Weather `json:"weather,omitempty"`
	HomeValue *float64 `json:"home_value,omitempty"`
	AwayValue *float64 `json:"away_value,omitempty"`
}

// GamePrediction is the engine's output for a single game. It is not mutated after construction.
type GamePrediction struct {
	Game       Game            `json:"game"`
	Winner     string          `json:"winner"`
	WinnerSide string          `json:"winner_side"`
	Confidence ConfidenceLabel `json:"confidence"`
	HomeScore  float64         `json:"home_score"`
	Factors    Factors         `json:"factors"`
	Auxiliary  Auxiliary       `json:"auxiliary"`
}

// Batch is one refresh of every prediction for a sport
type Batch struct {
	ID          uuid.UUID        `json:"id"`
	Sport       string           `json:"sport"`
	GeneratedAt time.Time        `json:"generated_at"`
	Predictions []GamePrediction `json:"predictions"`
}
