// Package routes defines the static page route table served to the frontend
// shell, plus the matcher and auth guard used to resolve incoming paths.
package routes

import "strings"

// Route describes a single page route.
type Route struct {
	// Pattern is the path pattern. Segments beginning with ':' are
	// parameters, e.g. "/profile/:handle".
	Pattern string `json:"pattern"`
	// Name identifies the page this route renders.
	Name string `json:"name"`
	// RequiresAuth gates the route behind an authenticated session.
	RequiresAuth bool `json:"requires_auth"`
}

// Table is the full route table of the studio application. Order matters:
// the first matching pattern wins.
var Table = []Route{
	{Pattern: "/", Name: "home"},
	{Pattern: "/pricing", Name: "pricing"},
	{Pattern: "/about", Name: "about"},
	{Pattern: "/chat", Name: "chat", RequiresAuth: true},
	{Pattern: "/onboarding", Name: "onboarding", RequiresAuth: true},
	{Pattern: "/profile", Name: "profile", RequiresAuth: true},
	{Pattern: "/profile/:handle", Name: "profile", RequiresAuth: true},
	{Pattern: "/admin", Name: "admin-dashboard", RequiresAuth: true},
	{Pattern: "/admin/briefs", Name: "admin-briefs", RequiresAuth: true},
	{Pattern: "/admin/briefs/:id", Name: "admin-brief-detail", RequiresAuth: true},
	{Pattern: "/admin/pipeline", Name: "admin-pipeline", RequiresAuth: true},
}

// Match is the result of resolving a path against the table.
type Match struct {
	Route  Route
	Params map[string]string
}

// Resolve matches path against the route table. The second return value is
// false when no pattern matches.
func Resolve(path string) (Match, bool) {
	segments := splitPath(path)

	for _, route := range Table {
		params, ok := matchPattern(route.Pattern, segments)
		if ok {
			return Match{Route: route, Params: params}, true
		}
	}
	return Match{}, false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func matchPattern(pattern string, segments []string) (map[string]string, bool) {
	patSegments := splitPath(pattern)
	if len(patSegments) != len(segments) {
		return nil, false
	}

	var params map[string]string
	for i, pat := range patSegments {
		if strings.HasPrefix(pat, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[pat[1:]] = segments[i]
			continue
		}
		if pat != segments[i] {
			return nil, false
		}
	}
	return params, true
}

// Decision is the guard's verdict for a resolved route.
type Decision int

const (
	// Allow lets the request through to the page.
	Allow Decision = iota
	// Redirect sends the request to the login page.
	Redirect
	// NotFound means no route matched the path.
	NotFound
)

// SessionFunc reports whether the current request carries a valid session.
type SessionFunc func() bool

// Guard resolves path and applies the auth gate. Protected routes resolve to
// Redirect unless hasSession reports true; unknown paths resolve to NotFound.
func Guard(path string, hasSession SessionFunc) (Match, Decision) {
	match, ok := Resolve(path)
	if !ok {
		return Match{}, NotFound
	}
	if match.Route.RequiresAuth && !hasSession() {
		return match, Redirect
	}
	return match, Allow
}
