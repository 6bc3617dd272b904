package errors

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorMessages(t *testing.T) {
	tests := []struct {
		name    string
		err     *GatewayError
		code    ErrorCode
		message string
	}{
		{
			name:    "no input",
			err:     NewNoInputProvidedError(),
			code:    ErrCodeNoInputProvided,
			message: "No data provided in request body",
		},
		{
			name:    "missing features",
			err:     NewMissingFeaturesError([]string{"a", "b"}),
			code:    ErrCodeMissingFeatures,
			message: "Missing required features: a, b",
		},
		{
			name:    "invalid feature value",
			err:     NewInvalidFeatureValueError("x"),
			code:    ErrCodeInvalidFeatureValue,
			message: "Invalid value for feature 'x': must be a number",
		},
		{
			name:    "timeout whole seconds",
			err:     NewUpstreamTimeoutError(30 * time.Second),
			code:    ErrCodeUpstreamTimeout,
			message: "Request timed out after 30 seconds. The model endpoint may be slow or unavailable.",
		},
		{
			name:    "timeout fractional seconds",
			err:     NewUpstreamTimeoutError(1500 * time.Millisecond),
			code:    ErrCodeUpstreamTimeout,
			message: "Request timed out after 1.5 seconds. The model endpoint may be slow or unavailable.",
		},
		{
			name:    "connection failed",
			err:     NewConnectionFailedError(fmt.Errorf("dial tcp: refused")),
			code:    ErrCodeConnectionFailed,
			message: "Failed to connect to the model endpoint. Check your internet connection and endpoint URL.",
		},
		{
			name:    "upstream http error",
			err:     NewUpstreamHTTPError(503, "Model unavailable"),
			code:    ErrCodeUpstreamHTTPError,
			message: "Request failed with status 503. Response: Model unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.message, tt.err.Error())
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeMissingFeatures, CodeOf(NewMissingFeaturesError([]string{"a"})))
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain error")))

	wrapped := fmt.Errorf("handling request: %w", NewNoInputProvidedError())
	assert.Equal(t, ErrCodeNoInputProvided, CodeOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{NewNoInputProvidedError(), http.StatusBadRequest},
		{NewMissingFeaturesError([]string{"a"}), http.StatusBadRequest},
		{NewInvalidFeatureValueError("a"), http.StatusBadRequest},
		{NewUpstreamTimeoutError(time.Second), http.StatusBadRequest},
		{NewUpstreamHTTPError(500, "boom"), http.StatusBadRequest},
		{NewMalformedResponseError(fmt.Errorf("bad json")), http.StatusBadRequest},
		{NewConnectionFailedError(fmt.Errorf("refused")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "code %s", CodeOf(tt.err))
	}
}

func TestUserMessage(t *testing.T) {
	t.Run("validation errors surface verbatim", func(t *testing.T) {
		err := NewMissingFeaturesError([]string{"age"})
		assert.Equal(t, "Missing required features: age", UserMessage(err))
	})

	t.Run("connection failures get the network prefix", func(t *testing.T) {
		err := NewConnectionFailedError(fmt.Errorf("refused"))
		assert.Equal(t,
			"Network error while calling model endpoint: Failed to connect to the model endpoint. Check your internet connection and endpoint URL.",
			UserMessage(err))
	})

	t.Run("upstream errors are wrapped generically", func(t *testing.T) {
		err := NewUpstreamHTTPError(503, "Model unavailable")
		assert.Equal(t,
			"An error occurred: Request failed with status 503. Response: Model unavailable",
			UserMessage(err))
	})

	t.Run("unclassified errors are wrapped generically", func(t *testing.T) {
		assert.Equal(t, "An error occurred: boom", UserMessage(fmt.Errorf("boom")))
	})
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewNoInputProvidedError()))
	assert.True(t, IsValidationError(NewMissingFeaturesError([]string{"a"})))
	assert.True(t, IsValidationError(NewInvalidFeatureValueError("a")))
	assert.False(t, IsValidationError(NewUpstreamTimeoutError(time.Second)))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}

func TestConnectionFailedDetails(t *testing.T) {
	cause := fmt.Errorf("dial tcp 10.0.0.1:443: connect: connection refused")
	err := NewConnectionFailedError(cause)
	require.Equal(t, cause.Error(), err.Details)
}
