package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/yourplaces/backend/internal/domain/entity"
)

// Client resolves postal addresses to coordinates through a Google-style
// geocoding endpoint. The endpoint is configuration; only the response
// shape is assumed.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   10,
				ResponseHeaderTimeout: 5 * time.Second,
				DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve maps address to a coordinate pair. Any transport failure,
// non-OK provider status, or empty result set is an error; the caller
// decides how it surfaces.
func (c *Client) Resolve(ctx context.Context, address string) (entity.Location, error) {
	q := url.Values{}
	q.Set("address", address)
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return entity.Location{}, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return entity.Location{}, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return entity.Location{}, fmt.Errorf("geocoder returned status %d", res.StatusCode)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return entity.Location{}, err
	}
	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return entity.Location{}, fmt.Errorf("no geocoding result for address (status %q)", parsed.Status)
	}

	loc := parsed.Results[0].Geometry.Location
	return entity.Location{Lat: loc.Lat, Lng: loc.Lng}, nil
}
