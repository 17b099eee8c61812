package weather

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

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "41.9484", r.URL.Query().Get("latitude"))
		assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))
		w.Write([]byte(`{"current":{"temperature_2m":38.5,"wind_speed_10m":17.2,"precipitation":0.4,"weather_code":61}}`))
	}))
	defer srv.Close()

	w, err := New(srv.URL, logrus.New()).Current(context.Background(), 41.9484, -87.6553)
	require.NoError(t, err)

	assert.Equal(t, 38.5, w.TempF)
	assert.Equal(t, 17.2, w.WindMPH)
	assert.Equal(t, 0.4, w.PrecipMM)
	assert.Equal(t, "Rain", w.Condition)
	assert.True(t, w.Adverse())
}

func TestCurrent_MissingBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, logrus.New()).Current(context.Background(), 0, 0)
	assert.True(t, errors.Is(err, ingest.ErrNotFound))
}

func TestDescribe(t *testing.T) {
	tests := map[int]string{0: "Clear", 2: "Cloudy", 45: "Fog", 53: "Drizzle", 81: "Rain", 73: "Snow", 86: "Snow", 96: "Thunderstorm", 20: "Unknown"}
	for code, want := range tests {
		assert.Equal(t, want, Describe(code), "code %d", code)
	}
}
