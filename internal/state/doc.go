// Package state holds the dashboard data shared between the refresh poller
// and the UI.
//
// # Overview
//
// The poller builds a Dashboard with Load and hands it to Store.Update. The
// UI reads Store.Snapshot on every render. The two sides never share memory:
//
//	Poller:                          UI:
//	┌──────────────────┐            ┌──────────────────┐
//	│ Load(ctx, api)   │            │                  │
//	│      ↓           │            │                  │
//	│ store.Update()   │───────────→│ store.Snapshot() │
//	│      ↓           │  (RWMutex) │      ↓           │
//	│ wait / back off  │            │ render lk page   │
//	└──────────────────┘            └──────────────────┘
//
// # Loading
//
// Load issues one request per endpoint, in sequence:
//
//   - GET /users/me, /mood/notes and /mood/analytics/moods must succeed
//   - GET /mood/today answering 404 means no mood was logged today
//   - unread count, daily question and achievements treat 404 as "not
//     available" so older backends without those routers still work
//
// Non-404 failures from the optional endpoints are joined with errors.Join.
//
// # Update Semantics
//
//	store.Update(dashboard, nil)  // replace data, clear error, reset failures
//	store.Update(nil, err)        // keep data, record error, count failure
//	store.Reset()                 // sign out: drop everything
//
// Update and Snapshot clone slices and maps, and Snapshot wraps LastError
// so callers never hold the stored instance. Snapshot.IsOffline reports two
// or more consecutive failures.
//
// The zero Store is ready to use.
package state
