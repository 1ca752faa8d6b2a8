package router

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
)

// Page identifies the screen a route renders.
type Page string

const (
	HomePage     Page = "home"
	LoginPage    Page = "login"
	RegisterPage Page = "register"
	LkPage       Page = "lk"
)

// Route describes one named path with an optional trailing parameter.
type Route struct {
	Name  string
	Path  string
	Page  Page
	Param string // optional trailing segment name; empty means none
	Props bool   // forward the parameter to the page
}

// Match is the result of resolving a path.
type Match struct {
	Route Route
	Path  string
	vars  map[string]string
}

// Param returns the named path parameter. ok is false when the optional
// segment was not present in the path.
func (m Match) Param(name string) (string, bool) {
	v, ok := m.vars[name]
	return v, ok
}

// Props returns the parameters forwarded to the page. It is empty when the
// route does not forward props or the segment is absent.
func (m Match) Props() map[string]string {
	out := make(map[string]string, len(m.vars))
	if !m.Route.Props {
		return out
	}
	for k, v := range m.vars {
		out[k] = v
	}
	return out
}

// Table resolves paths against a fixed set of routes.
type Table struct {
	mux    *mux.Router
	routes []Route
	byName map[string]Route
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// paramSuffix names the mux route registered for the parameter variant.
const paramSuffix = ":param"

// DefaultRoutes returns the application's route table.
func DefaultRoutes() []Route {
	return []Route{
		{Name: "home", Path: "/", Page: HomePage, Param: "page", Props: true},
		{Name: "login", Path: "/login", Page: LoginPage, Param: "page", Props: true},
		{Name: "register", Path: "/register", Page: RegisterPage, Param: "page", Props: true},
		{Name: "lk", Path: "/lk", Page: LkPage, Param: "page", Props: true},
	}
}

// NewTable validates routes and builds a table. Exact paths are registered
// ahead of every parameter variant so a static path never resolves as a
// parameter of a shorter route.
func NewTable(routes []Route) (*Table, error) {
	t := &Table{
		mux:    mux.NewRouter().UseEncodedPath(),
		routes: make([]Route, 0, len(routes)),
		byName: make(map[string]Route, len(routes)),
	}
	seenPath := make(map[string]string, len(routes))
	for _, r := range routes {
		r.Name = strings.TrimSpace(r.Name)
		if r.Name == "" {
			return nil, fmt.Errorf("route %q: name required", r.Path)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("route %q: duplicate name", r.Name)
		}
		if r.Page == "" {
			return nil, fmt.Errorf("route %q: page required", r.Name)
		}
		clean, err := normalize(r.Path)
		if err != nil || clean != r.Path {
			return nil, fmt.Errorf("route %q: invalid path %q", r.Name, r.Path)
		}
		if other, dup := seenPath[clean]; dup {
			return nil, fmt.Errorf("route %q: path %q already used by %q", r.Name, clean, other)
		}
		if r.Param != "" && !identRE.MatchString(r.Param) {
			return nil, fmt.Errorf("route %q: invalid param name %q", r.Name, r.Param)
		}
		seenPath[clean] = r.Name
		t.byName[r.Name] = r
		t.routes = append(t.routes, r)
	}

	for _, r := range t.routes {
		t.mux.Path(r.Path).Name(r.Name)
	}
	for _, r := range t.routes {
		if r.Param == "" {
			continue
		}
		t.mux.Path(paramTemplate(r)).Name(r.Name + paramSuffix)
	}
	return t, nil
}

// MustTable is NewTable for static route lists known to be valid.
func MustTable(routes []Route) *Table {
	t, err := NewTable(routes)
	if err != nil {
		panic(err)
	}
	return t
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Resolve maps a path to its route. Query strings, fragments and trailing
// slashes are ignored. Matching runs on the escaped path, so a parameter may
// carry an encoded slash ("/lk/a%2Fb" yields "a/b").
func (t *Table) Resolve(raw string) (Match, bool) {
	p, err := normalize(raw)
	if err != nil {
		return Match{}, false
	}
	decoded, err := url.PathUnescape(p)
	if err != nil {
		return Match{}, false
	}
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: decoded, RawPath: p}}
	var rm mux.RouteMatch
	if !t.mux.Match(req, &rm) || rm.Route == nil {
		return Match{}, false
	}
	name := strings.TrimSuffix(rm.Route.GetName(), paramSuffix)
	r, ok := t.byName[name]
	if !ok {
		return Match{}, false
	}
	vars := make(map[string]string, len(rm.Vars))
	for k, v := range rm.Vars {
		if vars[k], err = url.PathUnescape(v); err != nil {
			return Match{}, false
		}
	}
	return Match{Route: r, Path: p, vars: vars}, true
}

// URL builds the escaped path for a named route. An empty param yields the
// bare route path.
func (t *Table) URL(name, param string) (string, error) {
	r, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("unknown route %q", name)
	}
	if param == "" {
		return r.Path, nil
	}
	if r.Param == "" {
		return "", fmt.Errorf("route %q takes no parameter", name)
	}
	u, err := t.mux.Get(name+paramSuffix).URLPath(r.Param, url.PathEscape(param))
	if err != nil {
		return "", fmt.Errorf("build url for %q: %w", name, err)
	}
	return u.Path, nil
}

func paramTemplate(r Route) string {
	if r.Path == "/" {
		return "/{" + r.Param + "}"
	}
	return r.Path + "/{" + r.Param + "}"
}

func normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "/", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "" || u.Host != "" {
		return "", fmt.Errorf("absolute url %q", raw)
	}
	p := u.EscapedPath()
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p), nil
}
