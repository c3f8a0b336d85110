package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/\-]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]apestrap.Handler
}

var _ apestrap.Registry = (*Router)(nil)
var _ apestrap.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]apestrap.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h apestrap.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler. Always returns a non-nil Handler.
func (r *Router) handler(path string) apestrap.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx apestrap.Context, store apestrap.KVStore, tx apestrap.Tx) (*apestrap.CheckResult, error) {
	path := apestrap.GetPath(tx)
	return r.handler(path).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx apestrap.Context, store apestrap.KVStore, tx apestrap.Tx) (*apestrap.DeliverResult, error) {
	path := apestrap.GetPath(tx)
	return r.handler(path).Deliver(ctx, store, tx)
}

// notFoundHandler always returns ErrNoSuchPath error
type notFoundHandler string

func (path notFoundHandler) Check(apestrap.Context, apestrap.KVStore, apestrap.Tx) (*apestrap.CheckResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}

func (path notFoundHandler) Deliver(apestrap.Context, apestrap.KVStore, apestrap.Tx) (*apestrap.DeliverResult, error) {
	return nil, errors.Wrap(ErrNoSuchPath, string(path))
}
