package ticketmaster

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/baechuer/cityevents/services/nearby-service/internal/pkg/circuitbreaker"
	zlog "github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://app.ticketmaster.com"
	eventsPath     = "/discovery/v2/events.json"

	// provider error bodies are only logged; cap what is read
	maxErrorBody = 4 << 10
)

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client searches the Ticketmaster Discovery API. All failures come back as
// upstream_unavailable errors.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *circuitbreaker.Breaker
}

func New(cfg Config, breaker *circuitbreaker.Breaker) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("ticketmaster: api key is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("ticketmaster: invalid base url: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
	}, nil
}

type searchResponse struct {
	Embedded *struct {
		Events []domain.RawItem `json:"events"`
	} `json:"_embedded"`
}

// Search returns the raw event records near geoKey. A response without an
// _embedded section means no events and is not an error.
func (c *Client) Search(ctx context.Context, geoKey, keyword string, radiusKm int) ([]domain.RawItem, error) {
	var out []domain.RawItem
	call := func(ctx context.Context) error {
		var err error
		out, err = c.search(ctx, geoKey, keyword, radiusKm)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Call(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return nil, domain.ErrUpstreamUnavailable(err)
	}
	return out, nil
}

func (c *Client) search(ctx context.Context, geoKey, keyword string, radiusKm int) ([]domain.RawItem, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("geoPoint", geoKey)
	q.Set("keyword", keyword)
	q.Set("radius", strconv.Itoa(radiusKm))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+eventsPath+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	zlog.Debug().
		Str("geo_point", geoKey).
		Str("keyword", keyword).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("ticketmaster search")

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	if sr.Embedded == nil {
		return []domain.RawItem{}, nil
	}
	return sr.Embedded.Events, nil
}
