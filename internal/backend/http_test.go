package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inksearch/internal/domain"
	"inksearch/internal/query"
)

func TestNewHTTP_Validation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"empty", "", true},
		{"no scheme", "example.com", true},
		{"ftp", "ftp://example.com", true},
		{"http", "http://example.com", false},
		{"https with path and slash", "https://example.com/api/", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTP(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHTTP_Search(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotRequestID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(RequestIDHeader)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":1,"name":"Koi Studio","styles":["japanese"],"city":"London","rating":4.9},{"id":2,"name":"Ink & Iron","styles":[],"city":"London"}],"totalCount":12}`))
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL+"/api", WithToken("secret"))
	require.NoError(t, err)

	q := query.Normalize(query.Input{Text: "koi", Styles: []string{"japanese"}, Page: 2})
	result, err := b.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "/api/search", gotPath)
	assert.Equal(t, q.Parameters().Encode(), gotQuery)
	assert.Equal(t, "Bearer secret", gotAuth)
	_, uuidErr := uuid.Parse(gotRequestID)
	assert.NoError(t, uuidErr, "request id is a uuid")

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Koi Studio", result.Items[0].Name)
	assert.Equal(t, []string{"japanese"}, result.Items[0].Styles)
	assert.Equal(t, 12, result.TotalCount)
}

func TestHTTP_SearchWithoutTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"name":"a"},{"name":"b"},{"name":"c"}]}`))
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	result, err := b.Search(context.Background(), query.Normalize(query.Input{Text: "x"}))
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalCount)
}

func TestHTTP_EmptyBodyItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalCount":0}`))
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	result, err := b.Search(context.Background(), query.Normalize(query.Input{Text: "x"}))
	require.NoError(t, err)
	assert.NotNil(t, result.Items)
	assert.True(t, result.IsEmpty())
}

func TestHTTP_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   domain.ErrorKind
	}{
		{http.StatusBadRequest, domain.ErrorValidation},
		{http.StatusUnprocessableEntity, domain.ErrorValidation},
		{http.StatusUnauthorized, domain.ErrorAuth},
		{http.StatusForbidden, domain.ErrorAuth},
		{http.StatusNotFound, domain.ErrorNotFound},
		{http.StatusTooManyRequests, domain.ErrorRateLimit},
		{http.StatusInternalServerError, domain.ErrorServer},
		{http.StatusServiceUnavailable, domain.ErrorServer},
		{http.StatusTeapot, domain.ErrorServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer srv.Close()

			b, err := NewHTTP(srv.URL)
			require.NoError(t, err)

			_, err = b.Search(context.Background(), query.Normalize(query.Input{Text: "koi"}))
			require.Error(t, err)

			var se *domain.SearchError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.want, se.Kind)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, "nope", se.Message)
		})
	}
}

func TestHTTP_MultiByteErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("龍", 150), http.StatusInternalServerError)
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	_, err = b.Search(context.Background(), query.Normalize(query.Input{Text: "koi"}))

	var se *domain.SearchError
	require.True(t, errors.As(err, &se))
	assert.True(t, utf8.ValidString(se.Message))
	assert.LessOrEqual(t, len(se.Message), maxErrorBody)
	assert.Equal(t, strings.Repeat("龍", maxErrorBody/3), se.Message)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"abcdef", 3, "abc"},
		{"a龍b", 2, "a"},
		{"a龍b", 3, "a"},
		{"a龍b", 4, "a龍"},
		{"龍", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestNewHTTP_TimeoutDefaults(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		want    time.Duration
	}{
		{"zero keeps default", 0, DefaultTimeout},
		{"negative keeps default", -time.Second, DefaultTimeout},
		{"positive", 2 * time.Second, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewHTTP("http://localhost:9000", WithTimeout(tt.timeout))
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.client.GetClient().Timeout)
		})
	}
}

func TestHTTP_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	_, err = b.Search(context.Background(), query.Normalize(query.Input{Text: "koi"}))
	assert.True(t, domain.IsErrorKind(err, domain.ErrorServer))
}

func TestHTTP_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = b.Search(context.Background(), query.Normalize(query.Input{Text: "koi"}))
	assert.True(t, domain.IsErrorKind(err, domain.ErrorNetwork))
}

func TestHTTP_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	b, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = b.Search(ctx, query.Normalize(query.Input{Text: "koi"}))
	require.Error(t, err)
	assert.True(t, domain.IsErrorKind(err, domain.ErrorNetwork))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTP_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	b, err := NewHTTP(url)
	require.NoError(t, err)

	_, err = b.Search(context.Background(), query.Normalize(query.Input{Text: "koi"}))
	assert.True(t, domain.IsErrorKind(err, domain.ErrorNetwork))
}

func TestFunc(t *testing.T) {
	t.Run("passes results through", func(t *testing.T) {
		f := Func(func(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error) {
			return domain.SearchResult{TotalCount: 7}, nil
		})

		result, err := f.Search(context.Background(), query.Normalize(query.Input{}))
		require.NoError(t, err)
		assert.Equal(t, 7, result.TotalCount)
	})

	t.Run("classifies plain errors", func(t *testing.T) {
		f := Func(func(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error) {
			return domain.SearchResult{}, errors.New("boom")
		})

		_, err := f.Search(context.Background(), query.Normalize(query.Input{}))
		assert.True(t, domain.IsErrorKind(err, domain.ErrorNetwork))
	})

	t.Run("keeps classified errors", func(t *testing.T) {
		f := Func(func(ctx context.Context, q query.SearchQuery) (domain.SearchResult, error) {
			return domain.SearchResult{}, domain.ClassifyStatus(http.StatusTooManyRequests, "")
		})

		_, err := f.Search(context.Background(), query.Normalize(query.Input{}))
		assert.True(t, domain.IsErrorKind(err, domain.ErrorRateLimit))
	})
}
