package appengine

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// isNotFound checks if an error is a Google API 404.
func isNotFound(err error) bool {
	return isGoogleAPICode(err, http.StatusNotFound)
}

// isRetryable checks if an error is transient: rate limiting or a
// server-side failure. Everything else is fatal and not retried.
func isRetryable(err error) bool {
	return isGoogleAPICode(err,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	)
}

// isGoogleAPICode checks if the error is a Google API error with one of the given HTTP codes.
func isGoogleAPICode(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.Code == code {
				return true
			}
		}
	}
	return false
}
