// Package api provides an HTTP client for the mood-tracking backend.
//
// # Overview
//
// The client is a thin pass-through: one method per endpoint, each issuing
// exactly one HTTP request and handing back the raw *Response. Payloads are
// accepted as any and encoded unmodified; types.go offers structs mirroring
// the backend schema for callers that want them.
//
// # Client Usage
//
//	store, _ := session.Open("~/.config/moodlog/session.toml")
//	client, err := api.NewClient("http://localhost:8000", api.Options{
//		Tokens: store, // installs the bearer interceptor
//		Logger: logger,
//	})
//	if err != nil {
//		return err
//	}
//
//	resp, err := client.Login(ctx, api.Credentials{Username: "a", Password: "b"})
//	tok, err := api.DecodeAs[api.TokenResponse](resp, err)
//
// # Endpoints
//
//   - POST /auth/register, POST /auth/token (form-encoded)
//   - GET /users/me, PUT /users/me/update (explicit bearer header)
//   - POST /mood, GET /mood/today, DELETE /mood, GET /mood/analytics/moods
//   - POST /mood/notes, GET /mood/notes, DELETE /notes/{id}
//   - GET/POST /users/, GET /users/{id}
//   - mood chart/verdict, view history, notifications, achievements, dialog
//
// # Interceptors
//
// Every request passes through the interceptor chain after per-call headers
// are applied:
//
//  1. RequestIDInterceptor (Options.RequestIDs) sets X-Request-ID
//  2. Options.Interceptors, in order
//  3. BearerInterceptor (Options.Tokens) sets Authorization when a token exists
//
// The bearer interceptor runs last, so a stored token takes precedence over
// the explicit token passed to GetUserInfo/UpdateUserInfo. The explicit token
// only matters when the store is empty or the interceptor is not installed.
//
// # Error Handling
//
//   - Transport failures (*url.Error from net/http) are returned unchanged
//   - Non-2xx responses return *StatusError alongside the *Response
//   - Encoding and request-construction failures are wrapped with context
//
// Nothing is retried and no timeout is imposed beyond what the supplied
// http.Client and context carry.
//
// # Thread Safety
//
// Client is safe for concurrent use. Concurrent calls are independent.
package api
