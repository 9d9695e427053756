package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/rafascerqueira/v-storefront/pkg/errors"
)

// UpstreamErrorResponse mirrors the error envelope returned by the sales API
// and the public catalog API. Both share the same `{"error":{...}}` shape.
type UpstreamErrorResponse struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	// Some endpoints return a bare {"message": "..."} body instead.
	Message string `json:"message"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. When the body carries a structured error envelope the
// upstream message is preserved so the UI can surface it verbatim; otherwise
// a generic error with the status and raw body is returned.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", upstream, resp.StatusCode, err)
	}

	var parsed UpstreamErrorResponse
	if json.Unmarshal(bodyBytes, &parsed) == nil {
		if parsed.Error != nil {
			return mapUpstreamError(resp.StatusCode, parsed.Error.Code, parsed.Error.Message, upstream)
		}
		if parsed.Message != "" {
			return mapUpstreamError(resp.StatusCode, "", parsed.Message, upstream)
		}
	}

	// Fallback: unstructured error body.
	return fmt.Errorf("%s returned status %d: %s", upstream, resp.StatusCode, string(bodyBytes))
}

// mapUpstreamError translates an upstream status and error payload into an
// AppError preserving the error semantics across the proxy boundary.
func mapUpstreamError(status int, code, message, upstream string) error {
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(upstream, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.Unavailable(fmt.Sprintf("%s: %s", upstream, message))
	case status >= 500:
		return fmt.Errorf("%s server error (%d/%s): %s", upstream, status, code, message)
	default:
		return &apperrors.AppError{
			Code:    code,
			Message: message,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
