package huggingface

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
	Name = "huggingface"

	DefaultEndpoint = "https://huggingface.co"
	DefaultPageSize = 100
)

// Client talks to the Hugging Face Hub REST API.
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

// WithToken sets the caller-supplied Hub token, passed through as a Bearer
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
	// The cursor is the opaque next-page URL from the Link header.
	if params.Cursor != "" {
		return params.Cursor
	}

	q := url.Values{}
	limit := params.Limit
	if limit <= 0 {
		limit = c.pageSize
	}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("full", "true")
	if params.Query != "" {
		q.Set("search", params.Query)
	}
	// The Hub has no model-type field; type filters become tag filters.
	for _, t := range params.Types {
		q.Add("filter", strings.ToLower(t))
	}
	return c.endpoint + "/api/models?" + q.Encode()
}

// nextFromLinkHeader extracts the rel="next" target from an RFC 5988 Link
// header. Empty when there is no next page.
func nextFromLinkHeader(header http.Header) string {
	for _, link := range header.Values("Link") {
		for _, part := range strings.Split(link, ",") {
			section := strings.Split(part, ";")
			if len(section) < 2 {
				continue
			}
			if strings.TrimSpace(section[1]) != `rel="next"` {
				continue
			}
			target := strings.TrimSpace(section[0])
			target = strings.TrimPrefix(target, "<")
			target = strings.TrimSuffix(target, ">")
			return target
		}
	}
	return ""
}

// SearchPage fetches one page of models. The returned cursor is empty on the
// last page.
func (c *Client) SearchPage(ctx context.Context, params catalog.SearchParams) (*catalog.Page, error) {
	var items []hubModel
	header, err := c.http.GetJSON(ctx, c.searchURL(params), &items)
	if err != nil {
		return nil, err
	}

	page := &catalog.Page{
		Items:      c.convertModels(items),
		NextCursor: nextFromLinkHeader(header),
	}
	log.Debug().Str("catalog", Name).Int("items", len(page.Items)).Str("next", page.NextCursor).Msg("fetched catalog page")
	return page, nil
}

// SearchAll pages through the whole result set, deduplicates by repo id and
// stops after maxItems (0 means no cap).
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
