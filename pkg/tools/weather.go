package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	geocodeCacheTTL = 24 * time.Hour
)

// weatherCodes maps WMO interpretation codes to human descriptions.
var weatherCodes = map[int]string{
	0:  "clear sky",
	1:  "mainly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "depositing rime fog",
	51: "light drizzle",
	53: "moderate drizzle",
	55: "dense drizzle",
	61: "slight rain",
	63: "moderate rain",
	65: "heavy rain",
	71: "slight snow",
	73: "moderate snow",
	75: "heavy snow",
	80: "slight rain showers",
	81: "moderate rain showers",
	82: "violent rain showers",
	95: "thunderstorm",
}

// WeatherTool answers current-conditions questions via the Open-Meteo public
// API: a geocoding lookup resolves the city name, then a forecast call
// fetches current temperature, conditions and wind.
type WeatherTool struct {
	client       *http.Client
	geocodingURL string
	forecastURL  string
	geocodes     *cache.Cache
}

type WeatherOption func(*WeatherTool)

// WithWeatherEndpoints overrides the upstream API base URLs, used in tests.
func WithWeatherEndpoints(geocodingURL, forecastURL string) WeatherOption {
	return func(t *WeatherTool) {
		t.geocodingURL = geocodingURL
		t.forecastURL = forecastURL
	}
}

func WithWeatherHTTPClient(client *http.Client) WeatherOption {
	return func(t *WeatherTool) {
		t.client = client
	}
}

func NewWeatherTool(opts ...WeatherOption) *WeatherTool {
	t := &WeatherTool{
		client:       &http.Client{Timeout: 10 * time.Second},
		geocodingURL: defaultGeocodingURL,
		forecastURL:  defaultForecastURL,
		geocodes:     cache.New(geocodeCacheTTL, geocodeCacheTTL),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *WeatherTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        "get_weather",
		Description: "Get the current weather for a city.",
		Parameters: []ToolParameter{
			{
				Name:        "city",
				ParamType:   "string",
				Description: "City name, e.g. 'Paris' or 'New York'",
				Required:    true,
			},
		},
	}
}

type weatherArgs struct {
	City string `json:"city"`
}

type geocodeResult struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

func (t *WeatherTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	var in weatherArgs
	if err := json.Unmarshal(args, &in); err != nil {
		return FailureResultf("invalid arguments: %v", err), nil
	}
	if strings.TrimSpace(in.City) == "" {
		return FailureResultf("city is required"), nil
	}

	place, err := t.geocode(ctx, in.City)
	if err != nil {
		return FailureResult(err), nil
	}

	forecast, err := t.currentConditions(ctx, place)
	if err != nil {
		return FailureResult(err), nil
	}

	return SuccessResult(forecast), nil
}

func (t *WeatherTool) geocode(ctx context.Context, city string) (*geocodeResult, error) {
	key := strings.ToLower(strings.TrimSpace(city))
	if cached, ok := t.geocodes.Get(key); ok {
		return cached.(*geocodeResult), nil
	}

	u := fmt.Sprintf("%s?name=%s&count=1", t.geocodingURL, url.QueryEscape(city))
	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := t.getJSON(ctx, u, &payload); err != nil {
		return nil, fmt.Errorf("geocoding lookup failed: %w", err)
	}
	if len(payload.Results) == 0 {
		return nil, fmt.Errorf("city '%s' not found", city)
	}

	place := &geocodeResult{
		Name:      payload.Results[0].Name,
		Country:   payload.Results[0].Country,
		Latitude:  payload.Results[0].Latitude,
		Longitude: payload.Results[0].Longitude,
	}
	t.geocodes.Set(key, place, cache.DefaultExpiration)
	return place, nil
}

func (t *WeatherTool) currentConditions(ctx context.Context, place *geocodeResult) (string, error) {
	u := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m&temperature_unit=fahrenheit&wind_speed_unit=mph",
		t.forecastURL, place.Latitude, place.Longitude,
	)
	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			Humidity    float64 `json:"relative_humidity_2m"`
			FeelsLike   float64 `json:"apparent_temperature"`
			WeatherCode int     `json:"weather_code"`
			WindSpeed   float64 `json:"wind_speed_10m"`
		} `json:"current"`
	}
	if err := t.getJSON(ctx, u, &payload); err != nil {
		return "", fmt.Errorf("forecast lookup failed: %w", err)
	}

	conditions, ok := weatherCodes[payload.Current.WeatherCode]
	if !ok {
		conditions = fmt.Sprintf("unknown conditions (code %d)", payload.Current.WeatherCode)
	}

	name := place.Name
	if place.Country != "" {
		name = fmt.Sprintf("%s, %s", place.Name, place.Country)
	}
	return fmt.Sprintf("Weather in %s: %.0f°F (feels like %.0f°F), %s, humidity %.0f%%, wind %.1f mph",
		name, payload.Current.Temperature, payload.Current.FeelsLike, conditions,
		payload.Current.Humidity, payload.Current.WindSpeed), nil
}

func (t *WeatherTool) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
