// Package policy decides, per request, whether a caller may reach a
// route. Routes fall into three classes: public (no token), authenticated
// (any valid token) and admin-only. The decision is a pure function of
// the request method, the request path and the caller's admin claim; it
// never touches the database.
package policy

import (
	"net/http"
	"strings"
)

type Decision int

const (
	Allow Decision = iota
	Forbid
)

var writeMethods = []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}

// route matches requests by path prefix and method set.
type route struct {
	prefix  string
	methods []string
}

// rule marks a method+prefix pair admin-only, with an optional carve-out
// subtree that stays open to any authenticated caller.
type rule struct {
	methods []string
	prefix  string
	except  string
}

type Engine struct {
	public []route
	rules  []rule
}

// New builds the engine for an API mounted at apiRoot (e.g. "/api/v1").
// The uploaded-file static tree lives outside the API root.
func New(apiRoot string) *Engine {
	getOnly := []string{http.MethodGet, http.MethodOptions}
	postOnly := []string{http.MethodPost, http.MethodOptions}

	return &Engine{
		public: []route{
			{apiRoot + "/health", getOnly},
			{apiRoot + "/products", getOnly},
			{apiRoot + "/categories", getOnly},
			{apiRoot + "/users/login", postOnly},
			{apiRoot + "/users", postOnly},
			{"/uploads", getOnly},
		},
		rules: []rule{
			// all writes to the core entities are admin-only
			{writeMethods, apiRoot + "/products", ""},
			{writeMethods, apiRoot + "/categories", ""},
			{writeMethods, apiRoot + "/users", ""},
			{writeMethods, apiRoot + "/upload", ""},
			// placing an order is open to any authenticated caller,
			// so POST is deliberately absent here
			{[]string{http.MethodPut, http.MethodPatch, http.MethodDelete}, apiRoot + "/orders", ""},
			// reads
			{[]string{http.MethodGet}, apiRoot + "/users", ""},
			{[]string{http.MethodGet}, apiRoot + "/orders", apiRoot + "/orders/myorder"},
		},
	}
}

// Public reports whether the route needs no token at all.
func (e *Engine) Public(method, path string) bool {
	path = strings.ToLower(path)
	for _, r := range e.public {
		if matchPath(path, r.prefix) && contains(r.methods, method) {
			return true
		}
	}
	return false
}

// Decide assumes a verified token and answers whether its admin claim is
// sufficient for the route.
func (e *Engine) Decide(method, path string, isAdmin bool) Decision {
	if isAdmin {
		return Allow
	}
	path = strings.ToLower(path)
	for _, r := range e.rules {
		if !contains(r.methods, method) {
			continue
		}
		if !matchPath(path, r.prefix) {
			continue
		}
		if r.except != "" && matchPath(path, r.except) {
			continue
		}
		return Forbid
	}
	return Allow
}

// matchPath matches prefix as a whole path segment: the prefix itself or
// anything under it, but not sibling paths that merely share the text.
func matchPath(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func contains(methods []string, m string) bool {
	for _, v := range methods {
		if v == m {
			return true
		}
	}
	return false
}
