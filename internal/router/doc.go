// Package router maps application paths to pages.
//
// Every route is a static path that may accept one trailing segment, which
// is forwarded to the page as a prop:
//
//	table := router.MustTable(router.DefaultRoutes())
//	m, ok := table.Resolve("/lk/settings")
//	// m.Route.Page == router.LkPage
//	// m.Param("page") == "settings", true
//
// Matching is done by gorilla/mux. Exact paths are registered before the
// parameter variants, so "/lk" resolves to LkPage and not to the home page
// with page="lk".
//
// The router matches on the escaped path. A parameter is a single segment
// after decoding, so URL("lk", "a/b") yields "/lk/a%2Fb" and Resolve hands
// "a/b" back.
package router
