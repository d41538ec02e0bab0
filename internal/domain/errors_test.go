package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{400, ErrorValidation},
		{422, ErrorValidation},
		{401, ErrorAuth},
		{403, ErrorAuth},
		{404, ErrorNotFound},
		{429, ErrorRateLimit},
		{500, ErrorServer},
		{502, ErrorServer},
		{503, ErrorServer},
		{418, ErrorServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			err := ClassifyStatus(tt.status, " boom ")
			require.NotNil(t, err)
			assert.Equal(t, tt.want, err.Kind)
			assert.Equal(t, tt.status, err.StatusCode)
			assert.Equal(t, "boom", err.Message)
		})
	}

	assert.Nil(t, ClassifyStatus(200, ""))
	assert.Nil(t, ClassifyStatus(204, ""))
}

func TestAsSearchError(t *testing.T) {
	assert.Nil(t, AsSearchError(nil))

	classified := ClassifyStatus(503, "")
	wrapped := fmt.Errorf("backend: %w", classified)
	assert.Same(t, classified, AsSearchError(wrapped))

	timeout := AsSearchError(context.DeadlineExceeded)
	assert.Equal(t, ErrorNetwork, timeout.Kind)
	assert.Equal(t, "request timed out", timeout.Message)

	plain := AsSearchError(errors.New("connection refused"))
	assert.Equal(t, ErrorNetwork, plain.Kind)
	assert.ErrorContains(t, plain, "connection refused")
}

func TestSearchError_Error(t *testing.T) {
	err := &SearchError{Kind: ErrorServer, StatusCode: 503, Message: "unavailable"}
	assert.Equal(t, "server (status 503): unavailable", err.Error())

	inner := errors.New("dial tcp: refused")
	err = NewNetworkError(inner)
	assert.Equal(t, "network: request failed: dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestSearchError_UserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        *SearchError
		wantMsg    string
		wantDetail string
	}{
		{"server with empty body", ClassifyStatus(503, ""), "The search service is having trouble", ""},
		{"server with body", ClassifyStatus(500, " db down "), "The search service is having trouble", "db down"},
		{"validation carries message", NewValidationError("limit cannot exceed 100", nil), "Invalid search: limit cannot exceed 100", ""},
		{"validation without message", ClassifyStatus(400, ""), "Invalid search", ""},
		{"auth", ClassifyStatus(401, ""), "You need to sign in again", ""},
		{"rate limit", ClassifyStatus(429, ""), "Too many searches, slow down a little", ""},
		{"network", NewNetworkError(errors.New("refused")), "Could not reach the search service", "request failed"},
		{"unknown kind", &SearchError{Kind: "weird"}, "Search failed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.UserMessage())
			assert.Equal(t, tt.wantDetail, tt.err.Detail())
		})
	}
}

func TestSearchError_Retryable(t *testing.T) {
	assert.True(t, (&SearchError{Kind: ErrorServer}).Retryable())
	assert.True(t, (&SearchError{Kind: ErrorNetwork}).Retryable())
	assert.True(t, (&SearchError{Kind: ErrorRateLimit}).Retryable())
	assert.False(t, (&SearchError{Kind: ErrorValidation}).Retryable())
	assert.False(t, (&SearchError{Kind: ErrorAuth}).Retryable())
}

func TestIsErrorKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ClassifyStatus(429, ""))
	assert.True(t, IsErrorKind(err, ErrorRateLimit))
	assert.False(t, IsErrorKind(err, ErrorServer))
	assert.False(t, IsErrorKind(errors.New("x"), ErrorNetwork))
}
