package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apperrors "github.com/midorigaoka/coop-gateway/internal/errors"
	"github.com/pkg/errors"
)

// allPageSize is the page size used when flattening pagination for all=true.
const allPageSize = 100

// Post is one entry from the headless content store, passed through as-is.
type Post map[string]any

// ListParams are the query parameters forwarded to the content store.
type ListParams struct {
	Category string
	Orders   string
	Limit    int
	Offset   int
	All      bool
}

var sharedHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Client is a stateless read client for the headless content store. No
// session is involved; the store serves public marketing content.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: sharedHTTPClient,
	}
}

// ListPosts fetches posts, flattening pagination when All is set by fetching
// fixed-size pages until a short page is returned. The category filter is
// re-applied after fetch because the store's array-containment filter is
// unreliable.
func (c *Client) ListPosts(ctx context.Context, params ListParams) ([]Post, error) {
	var posts []Post
	if params.All {
		offset := 0
		for {
			page, err := c.fetchPage(ctx, params, allPageSize, offset)
			if err != nil {
				return nil, err
			}
			posts = append(posts, page...)
			if len(page) < allPageSize {
				break
			}
			offset += allPageSize
		}
	} else {
		page, err := c.fetchPage(ctx, params, params.Limit, params.Offset)
		if err != nil {
			return nil, err
		}
		posts = page
	}

	if params.Category == "" {
		return posts, nil
	}
	filtered := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.hasCategory(params.Category) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (c *Client) fetchPage(ctx context.Context, params ListParams, limit, offset int) ([]Post, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if params.Orders != "" {
		q.Set("orders", params.Orders)
	}
	if params.Category != "" {
		q.Set("filters", "categories[contains]"+params.Category)
	}

	endpoint := c.baseURL + "/api/v1/posts"
	if encoded := q.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build content request")
	}
	req.Header.Set("X-MICROCMS-API-KEY", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "content request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, apperrors.Wrapf(apperrors.ErrUpstreamFetch, "content store returned %d: %s", resp.StatusCode, string(msg))
	}

	var body struct {
		Contents []Post `json:"contents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode content response")
	}
	return body.Contents, nil
}

// hasCategory reports whether the post's category list contains the given
// category id.
func (p Post) hasCategory(category string) bool {
	cats, ok := p["categories"].([]any)
	if !ok {
		return false
	}
	for _, c := range cats {
		switch v := c.(type) {
		case string:
			if v == category {
				return true
			}
		case map[string]any:
			if id, _ := v["id"].(string); id == category {
				return true
			}
		}
	}
	return false
}
