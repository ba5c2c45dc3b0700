package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/midorigaoka/coop-gateway/internal/errors"
	"github.com/pkg/errors"
)

// UpstreamError carries the status and message of a non-2xx upstream response
// so the proxy can surface them for diagnostics without leaking credentials.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return apperrors.ErrUpstreamFetch
}

// Shared HTTP client with connection pooling. Outbound calls are bounded;
// there is deliberately no retry logic anywhere in this layer.
var sharedHTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// Client wraps HTTP access to one record collection of the upstream record
// service, authenticated with a collection-scoped API token.
type Client struct {
	baseURL    string
	appID      string
	apiToken   string
	httpClient *http.Client
}

// NewClient creates a record client for one upstream collection.
func NewClient(baseURL, appID, apiToken string) *Client {
	return &Client{
		baseURL:    baseURL,
		appID:      appID,
		apiToken:   apiToken,
		httpClient: sharedHTTPClient,
	}
}

// GetRecords fetches records from the collection, optionally constrained by an
// upstream query expression.
func (c *Client) GetRecords(ctx context.Context, query string) ([]Record, error) {
	endpoint := fmt.Sprintf("%s/k/v1/records.json?app=%s", c.baseURL, url.QueryEscape(c.appID))
	if query != "" {
		endpoint += "&query=" + url.QueryEscape(query)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build records request")
	}
	req.Header.Set("X-Cybozu-API-Token", c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "records request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp)
	}

	var body struct {
		Records []Record `json:"records"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "failed to decode records response")
	}
	return body.Records, nil
}

// FileStream is an upstream attachment being relayed to the client. The body
// must be closed by the caller and is never buffered or re-encoded.
type FileStream struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
}

// FetchFile opens an attachment download using the collection credential.
func (c *Client) FetchFile(ctx context.Context, fileKey string) (*FileStream, error) {
	endpoint := fmt.Sprintf("%s/k/v1/file.json?fileKey=%s", c.baseURL, url.QueryEscape(fileKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build file request")
	}
	req.Header.Set("X-Cybozu-API-Token", c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "file request failed")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, upstreamError(resp)
	}

	return &FileStream{
		Body:               resp.Body,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}

func upstreamError(resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &UpstreamError{
		StatusCode: resp.StatusCode,
		Message:    string(msg),
	}
}
