// OpenWeatherMap client for live-driven runs. Responses are cached and
// failures back off so a flaky API never stalls the tick loop.
package weather

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Client fetches real weather data from OpenWeatherMap.
type Client struct {
	apiKey   string
	location string
	client   *http.Client

	mu          sync.Mutex
	cached      *Conditions
	cachedAt    time.Time
	cacheTTL    time.Duration
	lastFailAt  time.Time
	failBackoff time.Duration
}

// NewClient creates a weather API client. Returns nil if apiKey is empty;
// callers treat a nil client as "synthetic weather only".
func NewClient(apiKey, location string) *Client {
	if apiKey == "" {
		return nil
	}
	if location == "" {
		location = "San Diego,US"
	}
	return &Client{
		apiKey:      apiKey,
		location:    location,
		client:      &http.Client{Timeout: 10 * time.Second},
		cacheTTL:    5 * time.Minute,
		failBackoff: time.Minute,
	}
}

// Current returns the latest conditions, from cache when fresh. On API
// failure it returns the stale cache if one exists.
func (c *Client) Current() (*Conditions, error) {
	if c == nil {
		return nil, fmt.Errorf("weather client not configured")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && time.Since(c.cachedAt) < c.cacheTTL {
		return c.cached, nil
	}
	if !c.lastFailAt.IsZero() && time.Since(c.lastFailAt) < c.failBackoff {
		if c.cached != nil {
			return c.cached, nil
		}
		return nil, fmt.Errorf("weather API backing off")
	}

	cond, err := c.fetch()
	if err != nil {
		c.lastFailAt = time.Now()
		if c.cached != nil {
			return c.cached, nil
		}
		return nil, err
	}

	c.cached = cond
	c.cachedAt = time.Now()
	c.lastFailAt = time.Time{}
	return cond, nil
}

func (c *Client) fetch() (*Conditions, error) {
	endpoint := fmt.Sprintf(
		"https://api.openweathermap.org/data/2.5/weather?q=%s&appid=%s&units=metric",
		url.QueryEscape(c.location), c.apiKey,
	)

	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("weather API returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Clouds struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Rain struct {
			OneH float64 `json:"1h"`
		} `json:"rain"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather: %w", err)
	}

	cond := &Conditions{
		Temperature:   payload.Main.Temp,
		Humidity:      clamp01(payload.Main.Humidity / 100),
		Light:         clamp01(1 - payload.Clouds.All/100*0.7),
		Precipitation: payload.Rain.OneH,
	}
	if len(payload.Weather) > 0 {
		cond.Description = payload.Weather[0].Description
		main := strings.ToLower(payload.Weather[0].Main)
		cond.Storm = main == "thunderstorm" || main == "squall" || main == "tornado"
	}
	return cond, nil
}
