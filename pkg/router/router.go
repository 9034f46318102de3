// Package router wraps chi with named routes and per-group middleware.
//
//	r := router.New()
//	authed := r.Group("/", middleware.Authenticate(v))
//	authed.Delete("/orders/{id}", "orders.delete", h)
//	r.URL("orders.delete", map[string]string{"id": oid}) // "/orders/<oid>"
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

type Middleware func(http.Handler) http.Handler

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Router owns the chi mux and the table of named routes.
type Router struct {
	scope

	mux chi.Router

	mu     sync.RWMutex
	byName map[string]string
	infos  []RouteInfo
}

// Group is a path prefix plus middleware shared by its routes.
type Group struct {
	scope
}

// scope carries what Router and Group have in common. Routes mounted on
// it get the prefix prepended and the middleware applied outermost first.
type scope struct {
	root        *Router
	prefix      string
	middlewares []Middleware
}

func New() *Router {
	r := &Router{mux: chi.NewRouter(), byName: make(map[string]string)}
	r.scope = scope{root: r, prefix: "/"}
	return r
}

func (r *Router) Handler() http.Handler { return r.mux }

// Use adds global middleware. Must be called before any route is mounted.
func (r *Router) Use(middlewares ...Middleware) {
	for _, mw := range middlewares {
		r.mux.Use(mw)
	}
}

// HandleFunc mounts handler for every method on path, outside the route table.
func (r *Router) HandleFunc(path string, handler http.HandlerFunc) {
	r.mux.HandleFunc(cleanPath(path), handler)
}

// NotFound sets the handler for unmatched paths.
func (r *Router) NotFound(handler http.HandlerFunc) { r.mux.NotFound(handler) }

// MethodNotAllowed sets the handler for known paths with an unknown method.
func (r *Router) MethodNotAllowed(handler http.HandlerFunc) { r.mux.MethodNotAllowed(handler) }

// Routes returns every registered route in registration order.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.infos...)
}

// Path returns the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// URL fills the {params} of the named route.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	p, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("router: no route named %q", name)
	}
	for k, v := range params {
		p = strings.ReplaceAll(p, "{"+k+"}", v)
	}
	if strings.Contains(p, "{") {
		return "", fmt.Errorf("router: missing parameters for %q: %s", name, p)
	}
	return p, nil
}

// Group returns a child scope under prefix.
func (s *scope) Group(prefix string, middlewares ...Middleware) *Group {
	return &Group{scope{
		root:        s.root,
		prefix:      cleanPath(s.prefix + "/" + prefix),
		middlewares: append(append([]Middleware(nil), s.middlewares...), middlewares...),
	}}
}

func (s *scope) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	s.Handle(http.MethodGet, path, name, h, mws...)
}

func (s *scope) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	s.Handle(http.MethodPost, path, name, h, mws...)
}

func (s *scope) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	s.Handle(http.MethodPut, path, name, h, mws...)
}

func (s *scope) Patch(path, name string, h http.HandlerFunc, mws ...Middleware) {
	s.Handle(http.MethodPatch, path, name, h, mws...)
}

func (s *scope) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	s.Handle(http.MethodDelete, path, name, h, mws...)
}

// Handle mounts h for method on path. Route-level middleware runs inside
// the scope's middleware. A name may be empty but never reused; reusing
// one panics at startup.
func (s *scope) Handle(method, path, name string, h http.HandlerFunc, mws ...Middleware) {
	full := cleanPath(s.prefix + "/" + path)

	var wrapped http.Handler = h
	all := append(append([]Middleware(nil), s.middlewares...), mws...)
	for i := len(all) - 1; i >= 0; i-- {
		wrapped = all[i](wrapped)
	}

	r := s.root
	r.mu.Lock()
	defer r.mu.Unlock()
	if name != "" {
		if prev, dup := r.byName[name]; dup {
			panic(fmt.Sprintf("router: route name %q already used by %s", name, prev))
		}
		r.byName[name] = full
	}
	r.infos = append(r.infos, RouteInfo{Method: method, Path: full, Name: name})
	r.mux.Method(method, full, wrapped)
}

// cleanPath collapses duplicate slashes and drops a trailing one.
func cleanPath(p string) string {
	parts := strings.FieldsFunc(p, func(c rune) bool { return c == '/' })
	return "/" + strings.Join(parts, "/")
}
