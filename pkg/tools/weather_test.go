package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherServers(t *testing.T, geocodeHits *int64) (*httptest.Server, *httptest.Server) {
	t.Helper()

	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if geocodeHits != nil {
			atomic.AddInt64(geocodeHits, 1)
		}
		name := r.URL.Query().Get("name")
		if name == "Atlantis" {
			_, _ = w.Write([]byte(`{"results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"name":"Paris","country":"France","latitude":48.8566,"longitude":2.3522}]}`))
	}))
	t.Cleanup(geo.Close)

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))
		assert.Equal(t, "mph", r.URL.Query().Get("wind_speed_unit"))
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":73,"relative_humidity_2m":40,"apparent_temperature":70,"weather_code":1,"wind_speed_10m":8.1}}`))
	}))
	t.Cleanup(forecast.Close)

	return geo, forecast
}

func TestWeatherToolReportsCurrentConditions(t *testing.T) {
	geo, forecast := newWeatherServers(t, nil)
	tool := NewWeatherTool(WithWeatherEndpoints(geo.URL, forecast.URL))

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"city":"Paris"}`))
	require.NoError(t, err)
	require.True(t, result.Success())

	assert.Contains(t, result.Output, "Paris, France")
	assert.Contains(t, result.Output, "73°F (feels like 70°F)")
	assert.Contains(t, result.Output, "mainly clear")
	assert.Contains(t, result.Output, "humidity 40%")
	assert.Contains(t, result.Output, "8.1 mph")
}

func TestWeatherToolUnknownCity(t *testing.T) {
	geo, forecast := newWeatherServers(t, nil)
	tool := NewWeatherTool(WithWeatherEndpoints(geo.URL, forecast.URL))

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"city":"Atlantis"}`))
	require.NoError(t, err, "tool failures are results, not errors")
	assert.False(t, result.Success())
	assert.Contains(t, result.Error.Error(), "not found")
}

func TestWeatherToolMissingCity(t *testing.T) {
	tool := NewWeatherTool()

	result, err := tool.Execute(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.False(t, result.Success())
}

func TestWeatherToolCachesGeocodeLookups(t *testing.T) {
	var hits int64
	geo, forecast := newWeatherServers(t, &hits)
	tool := NewWeatherTool(WithWeatherEndpoints(geo.URL, forecast.URL))

	for i := 0; i < 3; i++ {
		result, err := tool.Execute(context.Background(), json.RawMessage(`{"city":"Paris"}`))
		require.NoError(t, err)
		require.True(t, result.Success())
	}

	assert.Equal(t, int64(1), atomic.LoadInt64(&hits), "repeat lookups for a city must hit the cache")
}

func TestWeatherToolUpstreamError(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	t.Cleanup(broken.Close)

	tool := NewWeatherTool(WithWeatherEndpoints(broken.URL, broken.URL))

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"city":"Paris"}`))
	require.NoError(t, err)
	assert.False(t, result.Success())
	assert.Contains(t, result.Error.Error(), "429")
}
