// Package errors provides classified error handling for the prediction gateway.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Input validation errors
const (
	ErrCodeNoInputProvided     ErrorCode = "NO_INPUT_PROVIDED"
	ErrCodeMissingFeatures     ErrorCode = "MISSING_FEATURES"
	ErrCodeInvalidFeatureValue ErrorCode = "INVALID_FEATURE_VALUE"
)

// Upstream scoring errors
const (
	ErrCodeUpstreamTimeout   ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeConnectionFailed  ErrorCode = "CONNECTION_FAILED"
	ErrCodeUpstreamHTTPError ErrorCode = "UPSTREAM_HTTP_ERROR"
	ErrCodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
)

// GatewayError represents a structured application error.
type GatewayError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *GatewayError) Error() string {
	return e.Message
}

// ==========================
// Error Constructors
// ==========================

// NewNoInputProvidedError reports an empty or absent request body.
func NewNoInputProvidedError() *GatewayError {
	return &GatewayError{
		Code:      ErrCodeNoInputProvided,
		Message:   "No data provided in request body",
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingFeaturesError reports every schema feature absent from the input.
func NewMissingFeaturesError(features []string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeMissingFeatures,
		Message:   fmt.Sprintf("Missing required features: %s", strings.Join(features, ", ")),
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidFeatureValueError reports the first feature whose value could not
// be coerced to a number.
func NewInvalidFeatureValueError(feature string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeInvalidFeatureValue,
		Message:   fmt.Sprintf("Invalid value for feature '%s': must be a number", feature),
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamTimeoutError reports a scoring call that produced no response
// within the configured deadline.
func NewUpstreamTimeoutError(timeout time.Duration) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeUpstreamTimeout,
		Message:   fmt.Sprintf("Request timed out after %g seconds. The model endpoint may be slow or unavailable.", timeout.Seconds()),
		Timestamp: time.Now().UTC(),
	}
}

// NewConnectionFailedError reports a scoring call that never reached the endpoint.
func NewConnectionFailedError(err error) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeConnectionFailed,
		Message:   "Failed to connect to the model endpoint. Check your internet connection and endpoint URL.",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamHTTPError reports a non-200 response from the model endpoint.
// Both the status code and the response body are embedded in the message.
func NewUpstreamHTTPError(status int, body string) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeUpstreamHTTPError,
		Message:   fmt.Sprintf("Request failed with status %d. Response: %s", status, body),
		Timestamp: time.Now().UTC(),
	}
}

// NewMalformedResponseError reports a 200 response whose body is not valid JSON.
func NewMalformedResponseError(err error) *GatewayError {
	return &GatewayError{
		Code:      ErrCodeMalformedResponse,
		Message:   fmt.Sprintf("Model endpoint returned a malformed response: %s", err.Error()),
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Classification helpers
// ==========================

// AsGatewayError unwraps err into a *GatewayError, if it is one.
func AsGatewayError(err error) (*GatewayError, bool) {
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// CodeOf returns the error code of err, or empty for unclassified errors.
func CodeOf(err error) ErrorCode {
	if ge, ok := AsGatewayError(err); ok {
		return ge.Code
	}
	return ""
}

// IsValidationError reports whether err was caused by bad client input.
func IsValidationError(err error) bool {
	switch CodeOf(err) {
	case ErrCodeNoInputProvided, ErrCodeMissingFeatures, ErrCodeInvalidFeatureValue:
		return true
	}
	return false
}

// HTTPStatus maps an error to the status served to the browser. Connection
// failures are the only 500s; timeouts and upstream HTTP errors stay 400,
// matching the behavior the front-end was built against.
func HTTPStatus(err error) int {
	if CodeOf(err) == ErrCodeConnectionFailed {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// UserMessage renders the error text placed in the JSON error envelope.
// Validation failures surface verbatim; connection failures get the network
// prefix; everything else is wrapped as a generic application error.
func UserMessage(err error) string {
	ge, ok := AsGatewayError(err)
	if !ok {
		return fmt.Sprintf("An error occurred: %s", err.Error())
	}
	switch {
	case IsValidationError(ge):
		return ge.Message
	case ge.Code == ErrCodeConnectionFailed:
		return fmt.Sprintf("Network error while calling model endpoint: %s", ge.Message)
	default:
		return fmt.Sprintf("An error occurred: %s", ge.Message)
	}
}
