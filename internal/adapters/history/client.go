// Package history fetches participants' game history from the MLB The Show
// public API.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/sdc-standings/internal/domain/model"
	"github.com/okian/sdc-standings/pkg/logger"
	"github.com/okian/sdc-standings/pkg/metrics"
)

const (
	// DefaultBaseURL is the MLB The Show 25 game history endpoint.
	DefaultBaseURL = "https://mlb25.theshow.com/apis/game_history.json"

	defaultTimeout   = 20 * time.Second
	defaultUserAgent = "sdc-standings/1.0"

	// Error bodies are echoed in errors; cap them.
	maxErrorBody = 512
)

// Client retrieves game history pages. Requests are issued one at a time and
// never retried.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	timeout   time.Duration
	logger    logger.Logger
}

// NewClient builds a Client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		baseURL:   DefaultBaseURL,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage retrieves one page of username's history.
func (c *Client) FetchPage(ctx context.Context, username, platform string, page int) (model.HistoryPage, error) {
	start := time.Now()
	defer func() { metrics.RecordFetchLatency(time.Since(start)) }()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	q := url.Values{}
	q.Set("username", username)
	q.Set("platform", platform)
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return model.HistoryPage{}, fmt.Errorf("%w: build request: %w", ErrRequest, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.HistoryPage{}, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return model.HistoryPage{}, fmt.Errorf("%w: %d body=%s", ErrStatus, resp.StatusCode, string(body))
	}

	var hp model.HistoryPage
	if err := json.NewDecoder(resp.Body).Decode(&hp); err != nil {
		return model.HistoryPage{}, fmt.Errorf("%w: decode page %d: %w", ErrMalformedPage, page, err)
	}
	if hp.GameHistory == nil {
		return model.HistoryPage{}, fmt.Errorf("%w: page %d", ErrMalformedPage, page)
	}
	return hp, nil
}

// FetchAll retrieves every page of username's history, starting at page 1.
// When a page fails the games gathered so far are returned with the error.
func (c *Client) FetchAll(ctx context.Context, username, platform string) ([]model.Game, error) {
	var games []model.Game
	total := 1
	for page := 1; page <= total; page++ {
		hp, err := c.FetchPage(ctx, username, platform, page)
		if err != nil {
			metrics.RecordFetchError(username)
			c.log().Warn(ctx, "game history page failed",
				logger.String("participant", username),
				logger.Int("page", page),
				logger.Error(err),
			)
			return games, fmt.Errorf("fetch %s page %d: %w", username, page, err)
		}
		metrics.RecordPageFetched(username)
		games = append(games, hp.GameHistory...)
		if hp.TotalPages > 0 {
			total = hp.TotalPages
		}
	}
	c.log().Debug(ctx, "game history fetched",
		logger.String("participant", username),
		logger.Int("pages", total),
		logger.Int("games", len(games)),
	)
	return games, nil
}

func (c *Client) log() logger.Logger {
	if c.logger == nil {
		return logger.Named("history")
	}
	return c.logger
}
