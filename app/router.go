package app

import (
	"fmt"

	"github.com/iov-one/crosspile"
	"github.com/iov-one/crosspile/errors"
)

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]crosspile.Handler
}

var _ crosspile.Registry = (*Router)(nil)
var _ crosspile.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]crosspile.Handler),
	}
}

// Handle adds a new Handler for the given message. It panics when the path
// is malformed or already taken, both being programming errors.
func (r *Router) Handle(msg crosspile.Msg, h crosspile.Handler) {
	path := msg.Path()
	if err := crosspile.ValidMsgPath(path); err != nil {
		panic(err)
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path, or a handler that
// always fails with ErrNotFound.
func (r *Router) Handler(path string) crosspile.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFoundHandler(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx crosspile.Context, store crosspile.KVStore, tx crosspile.Tx) (*crosspile.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx crosspile.Context, store crosspile.KVStore, tx crosspile.Tx) (*crosspile.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()).Deliver(ctx, store, tx)
}

type notFoundHandler string

func (path notFoundHandler) Check(crosspile.Context, crosspile.KVStore, crosspile.Tx) (*crosspile.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFoundHandler) Deliver(crosspile.Context, crosspile.KVStore, crosspile.Tx) (*crosspile.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
