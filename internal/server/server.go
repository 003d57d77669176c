// package server contains the router, middleware and OAuth callback handler for the local callback server
package server

import (
	"net/http"
)

// Middleware decorates a handler, e.g. [RequestLogger] or [Recoverer].
type Middleware func(http.Handler) http.Handler

// Handler is an [http.Handler] that knows the paths it serves, such as [CallbackHandler].
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers handlers behind a shared middleware stack.
type Router interface {
	http.Handler
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	NotFound(handler http.Handler)
	Routes() []string
}

var _ Router = (*BasicRouter)(nil)
