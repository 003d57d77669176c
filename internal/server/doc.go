// Package server provides the local HTTP endpoint that completes the SoundCloud OAuth flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] runs in the order it is added, the first one being the outermost.
// [RequestLogger] and [Recoverer] are the stock middleware used by the CLI.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally. Handler routes answer GET only, with 405 for anything else.
//
// # OAuth Callback Handler
//
// [CallbackHandler] serves /callback. It validates the state parameter, passes the query to
// [services.Authenticatable.HandleCallback] and sends exactly one [CallbackResult] through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Usage
//
// "scx auth login" starts a temporary server on the configured host and port, opens the browser at the
// authorize URL and shuts the server down once the result arrives or two minutes pass.
package server
