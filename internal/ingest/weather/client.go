package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fortuna/augur/internal/domain"
	"github.com/fortuna/augur/internal/ingest"
)

// BaseURL is the Open-Meteo forecast API
const BaseURL = "https://api.open-meteo.com/v1"

// Client reads current conditions for a coordinate pair
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// New creates a weather client. An empty baseURL uses BaseURL.
func New(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: ingest.NewHTTPClient(),
		log:        log.WithField("component", "weather"),
	}
}

type forecastResponse struct {
	Current *struct {
		Temperature   float64 `json:"temperature_2m"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		Precipitation float64 `json:"precipitation"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// Current returns conditions at lat/lon in Fahrenheit and mph
func (c *Client) Current(ctx context.Context, lat, lon float64) (domain.Weather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("current", "temperature_2m,wind_speed_10m,precipitation,weather_code")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")
	endpoint := fmt.Sprintf("%s/forecast?%s", c.baseURL, q.Encode())

	var resp forecastResponse
	if err := ingest.GetJSON(ctx, c.httpClient, endpoint, nil, &resp); err != nil {
		return domain.Weather{}, fmt.Errorf("fetching weather: %w", err)
	}
	if resp.Current == nil {
		return domain.Weather{}, ingest.ErrNotFound
	}

	return domain.Weather{
		TempF:     resp.Current.Temperature,
		WindMPH:   resp.Current.WindSpeed,
		PrecipMM:  resp.Current.Precipitation,
		Condition: Describe(resp.Current.WeatherCode),
	}, nil
}

// Describe maps a WMO weather code to a short label
func Describe(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67, code >= 80 && code <= 82:
		return "Rain"
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return "Snow"
	case code >= 95:
		return "Thunderstorm"
	}
	return "Unknown"
}
