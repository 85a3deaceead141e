// Package leagueapi fetches results, standings and schedules from the league
// REST API.
package leagueapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"league_results_renderer/internal/cache"
	"league_results_renderer/internal/metrics"
	"league_results_renderer/internal/widgets"
)

// Latest selects the most recent event instead of a numeric id.
const Latest = "latest"

// ErrUnexpectedStatus is returned for responses other than 200 and 201.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client talks to the league API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	ttl        time.Duration
	metrics    *metrics.Metrics
	log        *logrus.Entry
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithCache stores response bodies in c for ttl.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.ttl = ttl
	}
}

// WithMetrics records fetch durations and cache lookups.
func WithMetrics(m *metrics.Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Entry) Option {
	return func(cl *Client) {
		cl.log = log
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/") + "/",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      cache.Nop{},
		log:        logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isLatest(id string) bool {
	return strings.EqualFold(id, Latest)
}

// Results returns the result tabs of an event, or of the latest event when
// eventID is "latest".
func (c *Client) Results(ctx context.Context, league, eventID string) ([]widgets.ResultTab, error) {
	endpoint := path(league, "Events", eventID, "Results")
	if isLatest(eventID) {
		endpoint = path(league, "Results", "Latest")
	}
	var tabs []widgets.ResultTab
	if err := c.get(ctx, "results", endpoint, &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// Standings returns the standing tabs after an event. For "latest" the event
// is taken from the latest results; no results means no standings.
func (c *Client) Standings(ctx context.Context, league, eventID string) ([]widgets.StandingTab, error) {
	if isLatest(eventID) {
		latest, err := c.Results(ctx, league, Latest)
		if err != nil {
			return nil, fmt.Errorf("resolve latest event: %w", err)
		}
		if len(latest) == 0 {
			return nil, nil
		}
		eventID = fmt.Sprint(latest[0].EventID)
	}
	var tabs []widgets.StandingTab
	if err := c.get(ctx, "standings", path(league, "Events", eventID, "Standings"), &tabs); err != nil {
		return nil, err
	}
	return tabs, nil
}

// Schedule returns the events of a season.
func (c *Client) Schedule(ctx context.Context, league, seasonID string) ([]widgets.Event, error) {
	var season widgets.Season
	if err := c.get(ctx, "season", path(league, "Seasons", seasonID), &season); err != nil {
		return nil, err
	}
	var events []widgets.Event
	endpoint := path(league, "Seasons", fmt.Sprint(season.SeasonID), "Events")
	if err := c.get(ctx, "events", endpoint, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}

func (c *Client) get(ctx context.Context, resource, endpoint string, v interface{}) error {
	body, err := c.fetch(ctx, resource, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, resource, endpoint string) ([]byte, error) {
	target := c.baseURL + endpoint
	if body, ok, err := c.cache.Get(ctx, target); err != nil {
		c.log.WithError(err).WithField("url", target).Warn("cache lookup failed")
	} else {
		c.metrics.ObserveCache(ok)
		if ok {
			return body, nil
		}
	}

	start := time.Now()
	body, err := c.request(ctx, target)
	c.metrics.ObserveFetch(resource, time.Since(start).Seconds(), err)
	if err != nil {
		c.log.WithError(err).WithField("url", target).Warn("failed to fetch data from league api")
		return nil, err
	}

	if err := c.cache.Set(ctx, target, body, c.ttl); err != nil {
		c.log.WithError(err).WithField("url", target).Warn("cache store failed")
	}
	return body, nil
}

func (c *Client) request(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("%w %d from %s: %s", ErrUnexpectedStatus, resp.StatusCode, target, strings.TrimSpace(string(body)))
	}
	return body, nil
}
