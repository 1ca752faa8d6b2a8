package api

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestInterceptor may inspect or modify every outgoing request before it
// is sent. Returning an error aborts the call.
type RequestInterceptor func(req *http.Request) error

// BearerInterceptor attaches "Authorization: Bearer <token>" when tokens holds
// one. It reads the source once per request and never writes it.
func BearerInterceptor(tokens TokenSource) RequestInterceptor {
	return func(req *http.Request) error {
		token, ok := tokens.Token()
		if ok && token != "" {
			req.Header.Set("Authorization", bearer(token))
		}
		return nil
	}
}

// RequestIDInterceptor tags requests with a random X-Request-ID unless the
// caller already set one.
func RequestIDInterceptor() RequestInterceptor {
	return func(req *http.Request) error {
		if req.Header.Get(requestIDHeader) == "" {
			req.Header.Set(requestIDHeader, uuid.NewString())
		}
		return nil
	}
}

func bearer(token string) string {
	return "Bearer " + token
}

func authHeader(token string) http.Header {
	if token == "" {
		return nil
	}
	return http.Header{"Authorization": []string{bearer(token)}}
}
