package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/desertthunder/scx/internal/models"
	"github.com/desertthunder/scx/internal/server"
	"github.com/desertthunder/scx/internal/services"
	"github.com/desertthunder/scx/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

var authTimeout = 2 * time.Minute

// profiler is implemented by sources that can describe the signed-in account.
type profiler interface {
	Me(ctx context.Context) (*models.Me, error)
}

// AuthStatusOutput is the JSON form of auth status.
type AuthStatusOutput struct {
	Service       string     `json:"service"`
	User          string     `json:"user"`
	Authenticated bool       `json:"authenticated"`
	Account       *models.Me `json:"account,omitempty"`
}

// AuthLogin runs the authorization code flow through the local callback server.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}

	if source.IsAuthenticated() {
		r.logger.Info("replacing existing session", "user", r.currentUser())
	}

	if err := r.doOAuth(ctx, source, !cmd.Bool("no-browser")); err != nil {
		return err
	}

	r.writePlain("✓ Connected to %s as %s\n", source.Name(), r.currentUser())
	return nil
}

// AuthLogout clears the stored access token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}

	if err := source.Logout(ctx); err != nil {
		return fmt.Errorf("failed to clear access token: %w", err)
	}

	r.writePlain("✓ Logged out of %s\n", source.Name())
	return nil
}

// AuthStatus reports whether a token is held and, when the source supports it, whose account it is.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	source, err := r.trackSource(ctx)
	if err != nil {
		return err
	}

	status := AuthStatusOutput{
		Service:       source.Name(),
		User:          r.currentUser(),
		Authenticated: source.IsAuthenticated(),
	}

	if p, ok := source.(profiler); ok && status.Authenticated {
		me, err := p.Me(ctx)
		if err != nil {
			r.logger.Warn("failed to fetch account", "error", err)
		} else {
			status.Account = me
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	r.writePlainHeader(status.Service + " authentication")
	r.writePlain("User:          %s\n", status.User)
	if !status.Authenticated {
		r.writePlain("Authenticated: no\n")
		r.writePlainln("Run 'scx auth login' to connect your account.")
		return nil
	}

	r.writePlain("Authenticated: yes\n")
	if status.Account != nil {
		r.writePlain("Account:       %s (%s)\n", status.Account.Username, status.Account.PermalinkURL)
		r.writePlain("Tracks:        %d\n", status.Account.TotalTracks())
	}
	return nil
}

// doOAuth serves the callback route until the browser is redirected back, or the flow times out.
func (r *Runner) doOAuth(ctx context.Context, auth services.Authenticatable, browser bool) error {
	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := auth.AuthorizeURL(services.ScopeNonExpiring, oauth2.SetAuthURLParam("state", state))
	callback := server.NewCallbackHandler(auth, state)

	router := server.NewBasicRouter()
	router.Use(server.Recoverer(r.logger), server.RequestLogger(r.logger))
	router.Handler(callback)
	router.NotFound(http.NotFoundHandler())

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	listener, err := net.Listen("tcp", serverAddr)
	if err != nil {
		return fmt.Errorf("failed to start callback server: %w", err)
	}

	httpServer := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", listener.Addr())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	if !browser {
		r.writePlain("Open this URL in your browser:\n%s\n\n", authURL)
	} else {
		r.writePlain("→ Opening browser for SoundCloud authorization...\n")
		if err := r.openBrowser(authURL); err != nil {
			r.logger.Warnf("failed to open browser automatically %v", err)
			r.writePlainln("⚠ Could not open browser automatically.")
			r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
		}
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", authTimeout)

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.CallbackResult
	select {
	case result = <-callback.Result():
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, authTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := result.Error(); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}
	return nil
}
