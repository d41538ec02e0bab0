package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

const (
	DefaultTimeout  = 10 * time.Second
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 200
)

// HTTP queries a remote search service with GET {base}/search?<params>.
type HTTP struct {
	client *resty.Client
	log    zerolog.Logger
}

type httpOptions struct {
	timeout time.Duration
	token   string
	log     zerolog.Logger
}

type Option func(*httpOptions)

// WithTimeout bounds each request. Zero or negative keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *httpOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithToken sends the token as a bearer Authorization header.
func WithToken(token string) Option {
	return func(o *httpOptions) { o.token = token }
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *httpOptions) { o.log = log }
}

type searchResponse struct {
	Items      []domain.Artist `json:"items"`
	TotalCount *int            `json:"totalCount"`
}

func NewHTTP(baseURL string, opts ...Option) (*HTTP, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("backend url cannot be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url scheme: %q", u.Scheme)
	}

	o := httpOptions{timeout: DefaultTimeout, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	c := resty.New()
	c.SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(o.timeout)
	if o.token != "" {
		c.SetAuthToken(o.token)
	}

	return &HTTP{client: c, log: o.log.With().Str("component", "backend").Logger()}, nil
}

func (h *HTTP) Search(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error) {
	requestID := uuid.NewString()
	target := query.SearchPath
	if params := q.Parameters().Encode(); params != "" {
		target += "?" + params
	}

	start := time.Now()
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, requestID).
		Get(target)
	if err != nil {
		h.log.Debug().Err(err).Str("request_id", requestID).Msg("search request failed")
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.SearchResult{}, domain.NewNetworkError(ctxErr)
		}
		return domain.SearchResult{}, domain.AsSearchError(err)
	}

	h.log.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(start)).
		Msg("search response")

	if se := domain.ClassifyStatus(resp.StatusCode(), truncate(resp.String(), maxErrorBody)); se != nil {
		return domain.SearchResult{}, se
	}

	var body searchResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return domain.SearchResult{}, &domain.SearchError{
			Kind:       domain.ErrorServer,
			StatusCode: resp.StatusCode(),
			Message:    "malformed response",
			Err:        err,
		}
	}

	if body.Items == nil {
		body.Items = make([]domain.Artist, 0)
	}
	total := len(body.Items)
	if body.TotalCount != nil {
		total = *body.TotalCount
	}

	return domain.SearchResult{Items: body.Items, TotalCount: total}, nil
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
