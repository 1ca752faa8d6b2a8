// Package app is the composition root for moodlog.
//
// # Startup
//
// Run wires the pieces in order:
//
//  1. config.Load reads ~/.config/moodlog/config.toml (env overrides apply)
//  2. logging.New opens the zap logger on the configured log file
//  3. session.Open loads the stored token; an expired JWT is discarded
//  4. api.NewClient builds the client, with the bearer interceptor when
//     attach_token is enabled
//  5. router.NewTable builds the route table
//  6. Poller.Start begins refreshing the dashboard store
//  7. ui.Run starts the TUI and blocks until the user quits
//
// # Polling
//
// The poller refreshes only while a session token exists. Each refresh calls
// state.Load and records the result in the shared state.Store. After a
// failure the wait doubles, capped at 30 seconds, and drops back to the base
// interval after the next success.
//
// # Errors
//
// Failures during startup are returned from Run. Refresh failures are logged
// and surfaced through the store so the UI can show an offline banner.
package app
