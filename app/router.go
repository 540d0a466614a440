package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/safesend"
	"github.com/iov-one/safesend/errors"
)

// Router allows us to register many handlers with different paths and then
// direct each message to the registered handler.
type Router struct {
	routes map[string]safesend.Handler
}

var _ safesend.Registry = (*Router)(nil)
var _ safesend.Handler = (*Router)(nil)

// isPath constrains the message paths that can be registered. A path is
// typically a "<package>/<message name>" string.
var isPath = regexp.MustCompile(`^[a-z0-9_/]{4,64}$`).MatchString

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]safesend.Handler),
	}
}

// Handle implements Registry interface. It registers a handler for a given
// message path. Path must be unique, registering twice for the same path
// panics, as does an invalid path string. This is a programmer error that
// must be caught during the application setup.
func (r *Router) Handle(path string, h safesend.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is found,
// returns a noSuchPathHandler.
func (r *Router) handler(m safesend.Msg) safesend.Handler {
	path := m.Path()
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Check dispatches to the proper handler based on message path.
func (r *Router) Check(ctx safesend.Context, store safesend.KVStore, tx safesend.Tx) (*safesend.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on message path.
func (r *Router) Deliver(ctx safesend.Context, store safesend.KVStore, tx safesend.Tx) (*safesend.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Deliver(ctx, store, tx)
}

// noSuchPathHandler always fails with a not found error. It is returned by
// the router when dispatching a message with a path that no handler was
// registered for.
type noSuchPathHandler struct {
	path string
}

var _ safesend.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(safesend.Context, safesend.KVStore, safesend.Tx) (*safesend.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(safesend.Context, safesend.KVStore, safesend.Tx) (*safesend.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
