package testutil

import (
	"net/http"
	"time"

	id "attesta/pkg/domain"
	"attesta/pkg/requestcontext"
)

// WithUserID stamps an acting principal onto the request context, simulating
// what the auth middleware does for authenticated requests. Invalid UUIDs are
// ignored so tests can also exercise the unauthenticated path.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
}

// WithRequestTime pins the request-scoped clock so issuance timestamps are
// deterministic.
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}

// WithRequestID stamps a correlation ID onto the request context.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}
