package energiapro

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// APIErrorCode is the vendor error code carried by an error payload.
//
// The API reports errors as a numeric code (encoded as a JSON string or
// number). Codes not present in the table below are preserved verbatim so
// callers can still inspect them.
type APIErrorCode string

// Known vendor error codes.
const (
	ErrorCodeMethodNotPost         APIErrorCode = "1"
	ErrorCodeSecretKeyAlreadyUsed  APIErrorCode = "2"
	ErrorCodeScopeNotFound         APIErrorCode = "3"
	ErrorCodeMaxSessionsReached    APIErrorCode = "4"
	ErrorCodeMissingParameters     APIErrorCode = "5"
	ErrorCodeMissingSSL            APIErrorCode = "6"
	ErrorCodeInvalidUsername       APIErrorCode = "10"
	ErrorCodeMissingPassword       APIErrorCode = "11"
	ErrorCodePortalAccountDisabled APIErrorCode = "12"
	ErrorCodeAPIAccountDisabled    APIErrorCode = "15"
	ErrorCodeNoLpnData             APIErrorCode = "100"
	ErrorCodeNoInstallations       APIErrorCode = "110"
	ErrorCodeTokenCorrupted        APIErrorCode = "210"
	ErrorCodeTokenInvalid          APIErrorCode = "220"
)

// errorCodeSuccess is the sentinel the API uses for success-with-body.
const errorCodeSuccess = "0"

// defaultAPIErrorMessage is used when an error payload carries no message.
const defaultAPIErrorMessage = "Not allowed."

// IsTokenError reports whether the code indicates that the bearer token was
// rejected. Only token-rejection codes are retried by the client, and only
// once per call.
func (c APIErrorCode) IsTokenError() bool {
	return c == ErrorCodeTokenCorrupted || c == ErrorCodeTokenInvalid
}

// Description returns a human-readable description for known codes and
// "unknown error code" otherwise.
func (c APIErrorCode) Description() string {
	switch c {
	case ErrorCodeMethodNotPost:
		return "request method must be POST"
	case ErrorCodeSecretKeyAlreadyUsed:
		return "one-time secret key already used"
	case ErrorCodeScopeNotFound:
		return "scope not found"
	case ErrorCodeMaxSessionsReached:
		return "maximum number of sessions reached"
	case ErrorCodeMissingParameters:
		return "missing parameters"
	case ErrorCodeMissingSSL:
		return "SSL required"
	case ErrorCodeInvalidUsername:
		return "invalid username"
	case ErrorCodeMissingPassword:
		return "missing password"
	case ErrorCodePortalAccountDisabled:
		return "portal account disabled"
	case ErrorCodeAPIAccountDisabled:
		return "API account disabled"
	case ErrorCodeNoLpnData:
		return "no LPN data available"
	case ErrorCodeNoInstallations:
		return "no installations available"
	case ErrorCodeTokenCorrupted:
		return "token corrupted"
	case ErrorCodeTokenInvalid:
		return "token invalid or expired"
	default:
		return "unknown error code"
	}
}

// String implements fmt.Stringer.
func (c APIErrorCode) String() string {
	return string(c)
}

// APIError represents a classified error reported by the vendor API.
type APIError struct {
	Code    APIErrorCode
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// InvalidArgumentError indicates a caller mistake detected before any network
// call is made.
type InvalidArgumentError struct {
	Reason string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.Reason
}

// TransportError wraps a network or I/O failure from the underlying HTTP
// transport. Transport failures are surfaced as-is and never retried.
type TransportError struct {
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return "http request failed: " + e.Err.Error()
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError wraps a failure to decode a response payload into the expected
// model shape.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return "invalid json payload: " + e.Err.Error()
}

// Unwrap returns the underlying decode failure.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HTTPStatusError indicates a non-2xx response whose body did not decode into
// a vendor error payload. BodyExcerpt carries at most 512 characters of the
// raw body for diagnostics.
type HTTPStatusError struct {
	StatusCode  int
	Endpoint    string
	BodyExcerpt string
}

// Error implements the error interface.
func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected http status %d from %s: %s", e.StatusCode, e.Endpoint, e.BodyExcerpt)
}

// ErrMissingToken indicates that the authentication call succeeded at the
// transport level but the response carried no token field.
var ErrMissingToken = errors.New("authentication succeeded but token is missing")

// maxBodyExcerptChars bounds diagnostic body excerpts.
const maxBodyExcerptChars = 512

// NewHTTPStatusError builds an HTTPStatusError with a bounded body excerpt.
// Truncation happens on character boundaries and an ellipsis marker is
// appended only when the body was actually truncated.
func NewHTTPStatusError(statusCode int, endpoint string, body []byte) *HTTPStatusError {
	return &HTTPStatusError{
		StatusCode:  statusCode,
		Endpoint:    endpoint,
		BodyExcerpt: truncateExcerpt(string(body), maxBodyExcerptChars),
	}
}

// truncateExcerpt shortens s to at most limit characters without splitting a
// multi-byte code point.
func truncateExcerpt(s string, limit int) string {
	count := 0

	for i := range s {
		if count == limit {
			return s[:i] + "..."
		}

		count++
	}

	return s
}

// ParseAPIError inspects a raw response payload and returns the vendor error
// it encodes, or nil when the payload is not an error.
//
// A payload is an error when it is a JSON object carrying an errorCode field
// (string or number) whose value is not the "0" success sentinel. Absence of
// the field means the payload is not an error payload at all, which is how
// genuine vendor errors are told apart from unrelated JSON shapes such as
// result arrays.
func ParseAPIError(payload []byte) *APIError {
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil
	}

	errorCode := root.Get("errorCode")

	var code string

	switch errorCode.Type {
	case gjson.String:
		code = errorCode.Str
	case gjson.Number:
		code = errorCode.Raw
	default:
		return nil
	}

	if code == errorCodeSuccess {
		return nil
	}

	message := defaultAPIErrorMessage
	if msg := root.Get("error"); msg.Type == gjson.String && msg.Str != "" {
		message = msg.Str
	}

	return &APIError{Code: APIErrorCode(code), Message: message}
}

// IsInvalidArgument reports whether err is an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	var invalidErr *InvalidArgumentError

	return errors.As(err, &invalidErr)
}

// IsAPIError reports whether err is an APIError, returning it when so.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// IsTokenError reports whether err is an APIError carrying a token-rejection
// code.
func IsTokenError(err error) bool {
	apiErr, ok := IsAPIError(err)

	return ok && apiErr.Code.IsTokenError()
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError

	return errors.As(err, &transportErr)
}

// IsDecode reports whether err is a DecodeError.
func IsDecode(err error) bool {
	var decodeErr *DecodeError

	return errors.As(err, &decodeErr)
}

// IsHTTPStatus reports whether err is an HTTPStatusError, returning it when
// so.
func IsHTTPStatus(err error) (*HTTPStatusError, bool) {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}

	return nil, false
}
