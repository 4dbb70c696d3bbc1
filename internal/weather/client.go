package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ride-analytics/internal/shared/apperrors"
)

const requestTimeout = 5 * time.Second

// Reading is the reduced current-weather observation the analytics
// endpoints take as input. Rain is last-hour precipitation in mm; the
// provider omits the field entirely in dry conditions, which reads as 0.
type Reading struct {
	Temperature float64 `json:"temperature"`
	Rain        float64 `json:"rain"`
	WindSpeed   float64 `json:"wind_speed"`
}

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Current fetches the live observation for a coordinate from the
// OpenWeather current-weather API.
func (c *Client) Current(ctx context.Context, lat, lng float64) (*Reading, error) {
	endpoint := c.baseURL + "/data/2.5/weather?" + url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lng, 'f', -1, 64)},
		"units": {"metric"},
		"appid": {c.apiKey},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: weather provider returned HTTP %d", apperrors.ErrUpstream, resp.StatusCode)
	}

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Rain struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: decode weather response: %v", apperrors.ErrUpstream, err)
	}

	return &Reading{
		Temperature: payload.Main.Temp,
		Rain:        payload.Rain.OneHour,
		WindSpeed:   payload.Wind.Speed,
	}, nil
}
