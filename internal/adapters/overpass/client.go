package overpass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/obs"
)

const DefaultBaseURL = "https://overpass-api.de/api/interpreter"

// Client downloads pedestrian networks from an Overpass API endpoint.
// It implements ports.NetworkSource and is safe for concurrent use.
type Client struct {
	session   *http.Client
	baseURL   string
	userAgent string
	// first retry delay, doubled per attempt unless the server sends Retry-After
	backoff time.Duration
	maxWait time.Duration
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL;
// timeout bounds each HTTP round trip (downloads of a city take a while).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &Client{
		session:   &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: "random-walker/1.0",
		backoff:   time.Second,
		maxWait:   2 * time.Minute,
	}
}

// Fetch downloads the walkable ways within radius of the area center.
func (c *Client) Fetch(ctx context.Context, area domain.Area) (_ *domain.Network, err error) {
	defer obs.Time(ctx, "overpass.Fetch")(&err)

	if err := area.Center.Validate(); err != nil {
		return nil, fmt.Errorf("overpass fetch: center: %w", err)
	}
	if !(area.RadiusKm > 0) {
		return nil, fmt.Errorf("overpass fetch: %w: radius must be positive, got %v", domain.ErrInvalidInput, area.RadiusKm)
	}

	query := BuildQuery(area.Center, area.RadiusKm)

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		form := url.Values{"data": {query}}
		return c.newRequest(ctx, strings.NewReader(form.Encode()))
	})
	if err != nil {
		return nil, fmt.Errorf("overpass fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("overpass fetch: decode response: %w", err)
	}
	if payload.Remark != "" && len(payload.Elements) == 0 {
		return nil, errors.New("overpass fetch: " + payload.Remark)
	}

	network, err := payload.toNetwork()
	if err != nil {
		return nil, fmt.Errorf("overpass fetch: %w", err)
	}
	network.Name = area.Name
	network.Center = area.Center
	network.RadiusKm = area.RadiusKm

	return network, nil
}
