package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
		wantStatus    int
	}{
		{
			name:          "deadline exceeded",
			err:           context.DeadlineExceeded,
			wantType:      ErrorTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "wrapped deadline exceeded",
			err:           fmt.Errorf("completion: %w", context.DeadlineExceeded),
			wantType:      ErrorTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "timeout in message",
			err:           errors.New("Client.Timeout exceeded while awaiting headers"),
			wantType:      ErrorTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "unauthorized",
			err:           errors.New("error, status code: 401, message: invalid api key"),
			wantType:      ErrorTypeAuth,
			wantRetryable: false,
			wantStatus:    401,
		},
		{
			name:          "connection refused",
			err:           errors.New("dial tcp 127.0.0.1:11434: connect: connection refused"),
			wantType:      ErrorTypeTransport,
			wantRetryable: true,
		},
		{
			name:          "no such host",
			err:           errors.New("dial tcp: lookup api.invalid: no such host"),
			wantType:      ErrorTypeTransport,
			wantRetryable: true,
		},
		{
			name:          "rate limited",
			err:           errors.New("error, status code: 429, message: rate limit reached"),
			wantType:      ErrorTypeService,
			wantRetryable: true,
			wantStatus:    429,
		},
		{
			name:          "server error",
			err:           errors.New("error, status code: 503, message: service unavailable"),
			wantType:      ErrorTypeService,
			wantRetryable: true,
			wantStatus:    503,
		},
		{
			name:          "unclassified",
			err:           errors.New("something odd happened"),
			wantType:      ErrorTypeUnknown,
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			require.NotNil(t, classified)
			assert.Equal(t, tt.wantType, classified.Type)
			assert.Equal(t, tt.wantRetryable, classified.Retryable)
			assert.Equal(t, tt.wantStatus, classified.StatusCode)
			assert.ErrorIs(t, classified, tt.err)
		})
	}
}

func TestClassifyError_NilIsNil(t *testing.T) {
	assert.Nil(t, ClassifyError(nil))
}

func TestClassifyError_PassesThroughExistingError(t *testing.T) {
	orig := NewError(ErrorTypeService, "rate limited", true, errors.New("429"))
	wrapped := fmt.Errorf("vision attempt 2: %w", orig)

	classified := ClassifyError(wrapped)
	assert.Same(t, orig, classified)
}

func TestErrorString(t *testing.T) {
	e := &Error{
		Type:       ErrorTypeService,
		Message:    "server error",
		StatusCode: 502,
		Cause:      errors.New("bad gateway"),
	}

	assert.Equal(t, "service HTTP 502 server error: bad gateway", e.Error())

	noCause := &Error{Type: ErrorTypeTimeout, Message: "request timed out"}
	assert.Equal(t, "timeout request timed out", noCause.Error())
}

func TestIsRetryableAndErrorType(t *testing.T) {
	retryable := NewError(ErrorTypeTransport, "connection failed", true, nil)
	permanent := NewError(ErrorTypeAuth, "authentication failed", false, nil)

	assert.True(t, IsRetryable(retryable))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", retryable)))
	assert.False(t, IsRetryable(permanent))
	assert.False(t, IsRetryable(errors.New("plain")))

	assert.Equal(t, ErrorTypeTransport, GetErrorType(retryable))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain")))
}
