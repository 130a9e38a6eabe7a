package civitai

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/modelscout/modelscout/core/catalog"
	"github.com/modelscout/modelscout/core/clients"
)

const (
	Name = "civitai"

	DefaultEndpoint = "https://civitai.com/api/v1"
	DefaultPageSize = 100
)

// Client talks to the Civitai REST API.
type Client struct {
	endpoint     string
	pageSize     int
	requestDelay time.Duration
	http         *clients.RetryingClient
}

type Option func(*Client)

func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = strings.TrimSuffix(endpoint, "/")
		}
	}
}

// WithToken sets the caller-supplied API token, passed through as a Bearer
// credential.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.http.Authorization = "Bearer " + token
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http.HTTPClient = hc
	}
}

func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithRequestDelay sets the pause between paged requests.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) {
		c.requestDelay = d
	}
}

func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.http.MaxRetries = n
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		endpoint:     DefaultEndpoint,
		pageSize:     DefaultPageSize,
		requestDelay: 500 * time.Millisecond,
		http:         &clients.RetryingClient{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Name() string {
	return Name
}

func (c *Client) searchURL(params catalog.SearchParams) string {
	q := url.Values{}
	limit := params.Limit
	if limit <= 0 {
		limit = c.pageSize
	}
	q.Set("limit", strconv.Itoa(limit))
	if params.Query != "" {
		q.Set("query", params.Query)
	}
	for _, t := range params.Types {
		q.Add("types", t)
	}
	for _, b := range params.BaseModels {
		q.Add("baseModels", b)
	}
	if !params.NSFW {
		q.Set("nsfw", "false")
	}
	if params.Cursor != "" {
		q.Set("cursor", params.Cursor)
	}
	return c.endpoint + "/models?" + q.Encode()
}

// SearchPage fetches one page of models. The returned cursor is empty on the
// last page.
func (c *Client) SearchPage(ctx context.Context, params catalog.SearchParams) (*catalog.Page, error) {
	var resp searchResponse
	if _, err := c.http.GetJSON(ctx, c.searchURL(params), &resp); err != nil {
		return nil, err
	}

	page := &catalog.Page{
		Items:      convertModels(resp.Items),
		NextCursor: resp.Metadata.NextCursor,
	}
	log.Debug().Str("catalog", Name).Int("items", len(page.Items)).Str("next", page.NextCursor).Msg("fetched catalog page")
	return page, nil
}

// SearchAll pages through the whole result set, deduplicates by model id and
// stops after maxItems (0 means no cap). An inter-request delay keeps the
// crawl polite.
func (c *Client) SearchAll(ctx context.Context, params catalog.SearchParams, maxItems int) (catalog.Models, error) {
	var all catalog.Models
	params.Cursor = ""

	for {
		page, err := c.SearchPage(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		all = all.DedupeByID()

		if maxItems > 0 && len(all) >= maxItems {
			all = all[:maxItems]
			break
		}
		if page.NextCursor == "" {
			break
		}
		params.Cursor = page.NextCursor

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.requestDelay):
		}
	}

	return all, nil
}
