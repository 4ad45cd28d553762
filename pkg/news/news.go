package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"sentimentdata/pkg/fetch"
)

const (
	DefaultBaseURL   = "https://api.pushshift.io/reddit/search/submission"
	DefaultSubreddit = "worldnews"
	DefaultSortField = "score"
	DefaultDelay     = time.Second
	DefaultSize      = 25
)

// ErrUnavailable marks a search that produced no usable answer: the request
// failed, was rejected (including rate limiting) or returned an unreadable body.
// Callers treat it as "no headlines", never as fatal.
var ErrUnavailable = errors.New("news unavailable")

// Headline is one submission title and its publish time in epoch seconds.
type Headline struct {
	Title       string
	PublishedAt int64
}

// Query selects submissions published in [After, Before] whose title mentions
// Title. An empty Title matches everything.
type Query struct {
	After  int64
	Before int64
	Title  string
	Size   int
}

type searchResponse struct {
	Data *[]submission `json:"data"`
}

type submission struct {
	Title      string      `json:"title"`
	CreatedUTC json.Number `json:"created_utc"`
}

// Client searches a submission archive, ranked by score descending.
// Consecutive searches are spaced at least delay apart.
type Client struct {
	baseURL   string
	subreddit string
	sortField string
	fetch     *fetch.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithSubreddit(subreddit string) ClientOption {
	return func(c *Client) {
		c.subreddit = subreddit
	}
}

func WithSortField(field string) ClientOption {
	return func(c *Client) {
		c.sortField = field
	}
}

func WithFetcher(f *fetch.Client) ClientOption {
	return func(c *Client) {
		c.fetch = f
	}
}

// WithDelay sets the minimum spacing between searches.
func WithDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		subreddit: DefaultSubreddit,
		sortField: DefaultSortField,
		limiter:   rate.NewLimiter(rate.Every(DefaultDelay), 1),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.fetch == nil {
		c.fetch = fetch.NewClient(fetch.DefaultTimeout, c.logger)
	}
	return c
}

// SearchURL builds the request URL for q.
func (c *Client) SearchURL(q Query) string {
	size := q.Size
	if size <= 0 {
		size = DefaultSize
	}

	params := url.Values{}
	params.Set("subreddit", c.subreddit)
	params.Set("sort_type", c.sortField)
	params.Set("after", strconv.FormatInt(q.After, 10))
	params.Set("before", strconv.FormatInt(q.Before, 10))
	params.Set("sort", "desc")
	params.Set("size", strconv.Itoa(size))
	params.Set("fields", "title,created_utc")
	if q.Title != "" {
		params.Set("title", q.Title)
	}
	return c.baseURL + "?" + params.Encode()
}

// Search returns the titles matching q in upstream ranking order. A response
// without a data field is an empty result. Every other failure is reported as
// ErrUnavailable.
func (c *Client) Search(ctx context.Context, q Query) ([]Headline, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	body, err := c.fetch.Get(ctx, c.SearchURL(q))
	if err != nil {
		c.logger.Warn("news search failed", zap.String("title", q.Title), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	resp, err := decodeResponse(body)
	if err != nil {
		c.logger.Warn("news response unreadable", zap.String("title", q.Title), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.Data == nil {
		return []Headline{}, nil
	}

	headlines := make([]Headline, 0, len(*resp.Data))
	for _, s := range *resp.Data {
		if s.Title == "" {
			continue
		}
		headlines = append(headlines, Headline{
			Title:       s.Title,
			PublishedAt: parseEpoch(s.CreatedUTC),
		})
	}
	return headlines, nil
}

// Titles is Search without the publish times.
func (c *Client) Titles(ctx context.Context, q Query) ([]string, error) {
	headlines, err := c.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(headlines))
	for i, h := range headlines {
		titles[i] = h.Title
	}
	return titles, nil
}

func decodeResponse(body []byte) (*searchResponse, error) {
	var resp searchResponse
	err := json.Unmarshal(body, &resp)
	if err == nil {
		return &resp, nil
	}

	// truncated or sloppy JSON objects are salvaged before giving up
	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return nil, err
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(body))
	if repairErr != nil {
		return nil, err
	}
	resp = searchResponse{}
	if err := json.Unmarshal([]byte(repaired), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func parseEpoch(n json.Number) int64 {
	if n == "" {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	f, err := n.Float64()
	if err != nil {
		return 0
	}
	return int64(f)
}
