package domain

import (
	"context"
	"errors"
	"net"
)

// ErrorKind classifies a failed request.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindClientError  ErrorKind = "client_error"
	KindServerError  ErrorKind = "server_error"
	KindNetworkError ErrorKind = "network_error"
	KindTimeout      ErrorKind = "timeout"
	KindUnknown      ErrorKind = "unknown"
)

// Retryable reports whether a failure of this kind is transient and worth
// another attempt. Client-side kinds are not: the request itself is wrong.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindServerError, KindNetworkError, KindTimeout:
		return true
	}
	return false
}

// ClassifyStatus maps an HTTP status code to an ErrorKind.
// The mapping is total: every non-2xx code resolves to exactly one kind.
func ClassifyStatus(status int) ErrorKind {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status >= 400 && status < 500:
		return KindClientError
	case status >= 500 && status < 600:
		return KindServerError
	}
	return KindUnknown
}

// ClassifyTransport maps a transport-level failure (connection refused, DNS,
// deadline) to an ErrorKind. Total: any non-nil error resolves to one kind.
func ClassifyTransport(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetworkError
	}
	if errors.Is(err, context.Canceled) {
		return KindNetworkError
	}
	return KindUnknown
}
