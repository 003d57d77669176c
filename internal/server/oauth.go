package server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/desertthunder/scx/internal/services"
	"github.com/desertthunder/scx/internal/shared"
)

// CallbackResult contains the outcome of an OAuth redirect.
type CallbackResult struct {
	err error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// CallbackHandler receives the OAuth2 redirect and hands its parameters to an [services.Authenticatable].
// Implements the Handler interface for registration with a Router.
type CallbackHandler struct {
	auth        services.Authenticatable
	state       string
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewCallbackHandler creates a handler that checks the state token before delegating to auth.
//
// An empty state disables the check.
func NewCallbackHandler(auth services.Authenticatable, state string) *CallbackHandler {
	return &CallbackHandler{
		auth:       auth,
		state:      state,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the OAuth callback request.
//
// Only the first request is processed. Its outcome is sent through the result channel.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	params := r.URL.Query()
	if h.state != "" && params.Get("state") != h.state {
		h.Send(CallbackResult{err: shared.ErrInvalidState})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	if err := h.auth.HandleCallback(r.Context(), params); err != nil {
		h.Send(CallbackResult{err: err})
		switch {
		case errors.Is(err, shared.ErrAuthDenied):
			http.Error(w, "Authorization denied", http.StatusForbidden)
		default:
			http.Error(w, "Token exchange failed", http.StatusBadGateway)
		}
		return
	}

	if params.Get("code") == "" {
		h.Send(CallbackResult{err: fmt.Errorf("%w: callback carried no authorization code", shared.ErrNotAuthenticated)})
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	h.Send(CallbackResult{})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// Send sends the result through the channel (only once).
func (h *CallbackHandler) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving OAuth flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #ff5500; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>✓ Connected to SoundCloud</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
