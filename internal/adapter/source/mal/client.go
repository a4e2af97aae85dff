package mal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/malplan/internal/domain"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://myanimelist.net"
	defaultTimeout = 30 * time.Second
	userAgent      = "malplan/1.0"

	// statusPlanToRead is the list bucket holding entries the user plans to read
	statusPlanToRead = 6

	// orderChapters sorts the feed by chapter count, negated for ascending
	orderChapters = 9
)

// Options configures a Client
type Options struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64 // page requests per second, 0 for unlimited
	Sort          domain.SortDirection
}

// Client implements domain.ListProvider for MyAnimeList manga lists
type Client struct {
	baseURL     string
	order       int
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new MyAnimeList list client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}

	order := orderChapters
	if opts.Sort == domain.SortAsc {
		order = -orderChapters
	}

	return &Client{
		baseURL: opts.BaseURL,
		order:   order,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		rateLimiter: rate.NewLimiter(limit, 1),
		logger:      logger,
	}
}

// FetchAll pages through the user's list until an empty page is returned.
// onProgress receives the number of items accumulated after every page.
func (c *Client) FetchAll(ctx context.Context, user string, onProgress domain.ProgressFunc) ([]domain.TrackedItem, error) {
	items, err := fetchAll(ctx, func(ctx context.Context, offset int) ([]domain.TrackedItem, error) {
		return c.FetchPage(ctx, user, offset)
	}, onProgress)
	if err != nil {
		return nil, err
	}

	c.logger.Info("fetched manga list", "user", user, "count", len(items))
	return items, nil
}

// FetchPage returns the page of the list starting at offset
func (c *Client) FetchPage(ctx context.Context, user string, offset int) ([]domain.TrackedItem, error) {
	query := url.Values{}
	query.Set("status", strconv.Itoa(statusPlanToRead))
	query.Set("order", strconv.Itoa(c.order))
	query.Set("offset", strconv.Itoa(offset))

	path := fmt.Sprintf("/mangalist/%s/load.json", url.PathEscape(user))
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, &domain.ProviderError{Kind: domain.ErrNetwork, Offset: offset, Err: err}
	}

	var entries []mangaEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		c.logger.Error("JSON parse error", "error", err, "offset", offset, "bodyLen", len(body))
		return nil, &domain.ProviderError{Kind: domain.ErrProviderDecode, Offset: offset, Err: err}
	}

	items, err := mapMangaEntries(entries, c.baseURL)
	if err != nil {
		return nil, &domain.ProviderError{Kind: domain.ErrProviderDecode, Offset: offset, Err: err}
	}
	return items, nil
}

// doRequest performs a paced GET request and returns the body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("mal request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("mal request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("mal request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}

// fetchAll is a pagination helper. The offset of each request is the number
// of items already retrieved; the page size is whatever the server sends.
func fetchAll[T any](
	ctx context.Context,
	fetch func(ctx context.Context, offset int) ([]T, error),
	onProgress domain.ProgressFunc,
) ([]T, error) {
	var all []T

	for {
		items, err := fetch(ctx, len(all))
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}

		all = append(all, items...)

		if onProgress != nil {
			onProgress(len(all))
		}
	}

	return all, nil
}
