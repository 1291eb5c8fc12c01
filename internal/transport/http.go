package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
	"github.com/wajeeh/souqadmin/internal/core/config"
	"github.com/wajeeh/souqadmin/internal/core/event"
	"github.com/wajeeh/souqadmin/internal/core/logger"
	"github.com/wajeeh/souqadmin/internal/feature/session"
	"github.com/wajeeh/souqadmin/internal/feature/user"
)

// HTTPClient talks to the live admin REST backend under /admin. Every
// request carries the stored bearer credential when one exists; a 401
// clears the credential and announces session expiry on the bus.
type HTTPClient struct {
	base     string
	client   *http.Client
	tokens   *session.TokenStore
	limiter  *rate.Limiter
	bus      event.Bus
	log      logger.Logger
	loginURL string
}

// NewHTTPClient builds the live transport from API configuration.
func NewHTTPClient(cfg config.APIConfig, tokens *session.TokenStore, bus event.Bus, log logger.Logger) (*HTTPClient, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &HTTPClient{
		base:     base,
		client:   &http.Client{Timeout: cfg.Timeout},
		tokens:   tokens,
		limiter:  limiter,
		bus:      bus,
		log:      log,
		loginURL: cfg.LoginURL,
	}, nil
}

// errorBody is the JSON error shape the backend returns.
type errorBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// do runs one request and decodes a JSON response into out when out is
// non-nil. Raw response bytes are returned for callers that want them.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apierr.Wrap(apierr.KindNetworkUnreachable, "request cancelled", err)
		}
	}

	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, apierr.Wrap(apierr.KindUnknown, "encode request", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindUnknown, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindNetworkUnreachable, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindNetworkUnreachable, "read response", err)
	}

	if resp.StatusCode >= 400 {
		return nil, c.errorFromResponse(resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, apierr.Wrap(apierr.KindUnknown, "decode response", err)
		}
	}
	return raw, nil
}

// errorFromResponse maps an HTTP failure to a typed error. A 401 also
// clears the stored credential and publishes session expiry.
func (c *HTTPClient) errorFromResponse(status int, raw []byte) error {
	kind := apierr.FromStatus(status)

	var body errorBody
	_ = json.Unmarshal(raw, &body) // best effort, body may not be JSON

	if kind == apierr.KindUnauthorized {
		if err := c.tokens.Clear(); err != nil {
			c.log.Warn("failed to clear stored token", logger.Err(err))
		}
		c.bus.Publish(event.TopicSessionExpired, c.loginURL)
	}

	e := apierr.New(kind, body.Message)
	if kind == apierr.KindValidationFailed && len(body.Errors) > 0 {
		e.Fields = body.Errors
	}
	return e
}

func queryValues(q user.Query) url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	v.Set("status", q.Status)
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
		v.Set("sortOrder", q.SortOrder)
	}
	return v
}

// ListUsers calls GET /admin/users.
func (c *HTTPClient) ListUsers(ctx context.Context, q user.Query) (*user.Page, error) {
	q = q.Normalized()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	var page user.Page
	if _, err := c.do(ctx, http.MethodGet, "/admin/users", queryValues(q), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser calls GET /admin/users/{id}/details.
func (c *HTTPClient) GetUser(ctx context.Context, id int) (*user.User, error) {
	var u user.User
	path := fmt.Sprintf("/admin/users/%d/details", id)
	if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserStatus calls PUT /admin/users/{id}/status.
func (c *HTTPClient) UpdateUserStatus(ctx context.Context, id int, upd user.StatusUpdate) (*user.User, error) {
	if !upd.Status.Valid() {
		return nil, apierr.Newf(apierr.KindInvalidArgument, "invalid status %q", upd.Status)
	}
	var u user.User
	path := fmt.Sprintf("/admin/users/%d/status", id)
	if _, err := c.do(ctx, http.MethodPut, path, nil, upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Analytics calls GET /admin/users/analytics.
func (c *HTTPClient) Analytics(ctx context.Context) (*user.AnalyticsSnapshot, error) {
	var snap user.AnalyticsSnapshot
	if _, err := c.do(ctx, http.MethodGet, "/admin/users/analytics", nil, nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Export calls GET /admin/users/export and returns the raw CSV stream.
func (c *HTTPClient) Export(ctx context.Context, q user.Query) ([]byte, error) {
	q = q.Normalized()
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, "/admin/users/export", queryValues(q), nil, nil)
}

// Close is a no-op for the HTTP transport.
func (c *HTTPClient) Close() error {
	return nil
}
