// Package ui implements the moodlog terminal interface on bubbletea.
//
// # Pages
//
// Every screen is addressed by a path resolved through router.Table:
//
//   - /           home, with an optional /{section}
//   - /login      sign-in form
//   - /register   account creation form
//   - /lk         personal cabinet; /lk/{tab} selects mood, notes,
//     analytics, settings or log
//
// The ":" key opens an address bar that accepts any of these paths.
// Visiting /lk without a stored token redirects to /login.
//
// # Data Flow
//
// The background poller in package app fills a state.Store. The model pulls
// a snapshot from it every DefaultUIInterval and renders from that copy only.
// User actions run as tea.Cmds against api.Client and report back through
// actionMsg; successful writes trigger an immediate refresh.
//
// A 401 seen in a snapshot while signed in clears the session and returns to
// the home page.
//
// # Files
//
//   - app.go: Model, Update loop, Run
//   - commands.go: messages and tea.Cmd constructors
//   - navigation.go: path resolution, tab switching, sign-out
//   - auth.go, home.go: login, register and home pages
//   - lk*.go: cabinet tabs
//   - logs.go: log tab backed by logtail
//   - header.go, help.go, layout.go: chrome and overlays
//   - theme.go, keys.go, form.go: shared building blocks
package ui
