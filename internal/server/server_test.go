package server

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/scx/internal/services"
	"github.com/desertthunder/scx/internal/shared"
	tu "github.com/desertthunder/scx/internal/testing"
)

func receive(t *testing.T, h *CallbackHandler) error {
	t.Helper()
	select {
	case result := <-h.Result():
		return result.Error()
	default:
		t.Fatal("expected a result on the channel")
		return nil
	}
}

func TestCallbackHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		auth := &tu.MockTrackSource{}
		h := NewCallbackHandler(auth, "st")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=st", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Connected to SoundCloud") {
			t.Error("expected success page")
		}
		if err := receive(t, h); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		if got := auth.Callbacks[0].Get("code"); got != "abc" {
			t.Errorf("expected code abc forwarded, got %q", got)
		}
	})

	t.Run("Invalid State", func(t *testing.T) {
		auth := &tu.MockTrackSource{}
		h := NewCallbackHandler(auth, "st")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=other", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if err := receive(t, h); !errors.Is(err, shared.ErrInvalidState) {
			t.Errorf("expected ErrInvalidState, got %v", err)
		}
		if len(auth.Callbacks) != 0 {
			t.Error("expected callback not to be forwarded")
		}
	})

	t.Run("No State Check", func(t *testing.T) {
		h := NewCallbackHandler(&tu.MockTrackSource{}, "")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("Denied", func(t *testing.T) {
		denied := &services.AuthError{Kind: shared.ErrAuthDenied, Description: "x"}
		h := NewCallbackHandler(&tu.MockTrackSource{CallbackErr: denied}, "st")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?error=access_denied&error_description=x&state=st", nil))

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected 403, got %d", rec.Code)
		}
		var authErr *services.AuthError
		if err := receive(t, h); !errors.As(err, &authErr) || authErr.Description != "x" {
			t.Errorf("expected AuthError with description x, got %v", err)
		}
	})

	t.Run("Exchange Failure", func(t *testing.T) {
		failed := &services.AuthError{Kind: shared.ErrExchangeFailed, Err: errors.New("bad grant")}
		h := NewCallbackHandler(&tu.MockTrackSource{CallbackErr: failed}, "")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=bad", nil))

		if rec.Code != http.StatusBadGateway {
			t.Errorf("expected 502, got %d", rec.Code)
		}
		if err := receive(t, h); !errors.Is(err, shared.ErrExchangeFailed) {
			t.Errorf("expected ErrExchangeFailed, got %v", err)
		}
	})

	t.Run("Missing Code", func(t *testing.T) {
		h := NewCallbackHandler(&tu.MockTrackSource{}, "")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if err := receive(t, h); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Missing Code With Existing Session", func(t *testing.T) {
		auth := &tu.MockTrackSource{Authenticated: true}
		h := NewCallbackHandler(auth, "st")

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?state=st", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "Connected to SoundCloud") {
			t.Error("expected no success page")
		}
		if err := receive(t, h); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("Only Once", func(t *testing.T) {
		h := NewCallbackHandler(&tu.MockTrackSource{}, "")

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?code=a", nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=b", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for replay, got %d", rec.Code)
		}
		if err := receive(t, h); err != nil {
			t.Errorf("expected first result, got %v", err)
		}
		if _, ok := <-h.Result(); ok {
			t.Error("expected channel to be closed")
		}
	})
}

func TestBasicRouter(t *testing.T) {
	t.Run("Middleware Order", func(t *testing.T) {
		router := NewBasicRouter()
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}
		router.Use(mark("first"), mark("second"))
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("pong"))
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

		if rec.Body.String() != "pong" {
			t.Errorf("expected pong, got %s", rec.Body.String())
		}
		if strings.Join(order, ",") != "first,second" {
			t.Errorf("expected first,second, got %v", order)
		}
	})

	t.Run("Method Not Allowed", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.NotFoundHandler())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Handler Routes", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(NewCallbackHandler(&tu.MockTrackSource{}, ""))
		router.NotFound(http.NotFoundHandler())

		if got := router.Routes(); len(got) != 1 || got[0] != "/callback" {
			t.Errorf("expected [/callback], got %v", got)
		}

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("Callback Rejects HEAD", func(t *testing.T) {
		auth := &tu.MockTrackSource{}
		h := NewCallbackHandler(auth, "")
		router := NewBasicRouter()
		router.Handler(h)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/callback", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if len(auth.Callbacks) != 0 {
			t.Error("expected HEAD not to reach the handler")
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected the GET to be served after HEAD, got %d", rec.Code)
		}
	})

	t.Run("Callback Rejects POST", func(t *testing.T) {
		auth := &tu.MockTrackSource{}
		h := NewCallbackHandler(auth, "")
		router := NewBasicRouter()
		router.Handler(h)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/callback?code=abc", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if rec.Header().Get("Allow") != "GET" {
			t.Errorf("expected Allow header, got %q", rec.Header().Get("Allow"))
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=abc", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("expected the GET to still be served, got %d", rec.Code)
		}
		if !auth.Authenticated {
			t.Error("expected the GET callback to authenticate")
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("RequestLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := shared.NewLogger(&buf)

		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/callback?code=secret", nil))

		out := buf.String()
		if !strings.Contains(out, "status=418") {
			t.Errorf("expected status in log, got %s", out)
		}
		if strings.Contains(out, "secret") {
			t.Errorf("expected query string omitted, got %s", out)
		}
	})

	t.Run("Recoverer", func(t *testing.T) {
		logger := shared.NewLogger(&bytes.Buffer{})
		handler := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}
