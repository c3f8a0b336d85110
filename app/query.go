package app

import (
	"fmt"
	"strings"

	"github.com/iov-one/apestrap"
	"github.com/iov-one/apestrap/errors"
)

// QueryRouter allows us to register many query handlers
// to different paths and then direct each query
// to the proper handler.
type QueryRouter struct {
	routes map[string]apestrap.QueryHandler
}

var _ apestrap.QueryRouter = (*QueryRouter)(nil)

// NewQueryRouter initializes a QueryRouter with no routes
func NewQueryRouter() *QueryRouter {
	return &QueryRouter{
		routes: make(map[string]apestrap.QueryHandler),
	}
}

// Register adds a new Handler for the given path. Panics if a handler
// was already registered for this path.
func (r *QueryRouter) Register(path string, h apestrap.QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering query path: %s", path))
	}
	r.routes[path] = h
}

// RegisterAll registers a number of QueryHandlers in one call
func (r *QueryRouter) RegisterAll(qr ...func(apestrap.QueryRouter)) {
	for _, q := range qr {
		q(r)
	}
}

// Query parses the "path?mod" string and runs the registered handler.
// Without a mod the data is an exact key, with "?prefix" it is a key
// prefix.
func (r *QueryRouter) Query(db apestrap.ReadOnlyKVStore, path string, data []byte) ([]apestrap.Model, error) {
	path, mod := splitPath(path)
	h, ok := r.routes[path]
	if !ok {
		return nil, errors.Wrap(ErrNoSuchPath, path)
	}
	return h.Query(db, mod, data)
}

func splitPath(path string) (string, string) {
	chunks := strings.SplitN(path, "?", 2)
	if len(chunks) == 1 {
		return chunks[0], apestrap.KeyQueryMod
	}
	return chunks[0], chunks[1]
}
