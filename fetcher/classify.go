package fetcher

import (
	"errors"
	"io"
	"net"
	"net/http"
)

// outcome is the closed classification of one fetch attempt, assigned
// immediately after each I/O step. All failure outcomes are retried
// identically; they differ only in diagnostic logging.
type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryableStatus
	outcomeTransport
	outcomeChallenge
)

func (o outcome) String() string {
	switch o {
	case outcomeSuccess:
		return "success"
	case outcomeRetryableStatus:
		return "retryable_status"
	case outcomeTransport:
		return "transport_error"
	case outcomeChallenge:
		return "challenge_page"
	default:
		return "unknown"
	}
}

// retryableStatus reports whether an HTTP status is retried rather than
// parsed. The origin answers 403 or 404 when it blocks automated requests.
func retryableStatus(code int) bool {
	return code == http.StatusForbidden || code == http.StatusNotFound
}

// transportKind folds every distinguishable transport failure (refused or
// reset connections, timeouts, proxy-connect failures, mid-response
// disconnects) into a short diagnostic label. Classification does not affect
// retry behavior.
func transportKind(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Op == "dial" {
			return "connect"
		}
		return "socket"
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return "disconnect"
	}
	return "transport"
}
