package main

import (
	"errors"

	"github.com/desertthunder/scx/internal/shared"
)

var errorHints = []struct {
	target error
	hint   string
}{
	{shared.ErrMissingCredentials, "Set the client id and secret with 'scx settings set' or the SCX_CLIENT_ID and SCX_CLIENT_SECRET variables."},
	{shared.ErrNotAuthenticated, "Run 'scx auth login' to connect your SoundCloud account."},
	{shared.ErrAuthDenied, "Authorization was denied in the browser. Run 'scx auth login' to try again."},
	{shared.ErrExchangeFailed, "SoundCloud rejected the authorization code. Check the client secret and redirect URI."},
	{shared.ErrInvalidState, "The callback did not match this login attempt. Run 'scx auth login' again."},
	{shared.ErrTimeout, "No callback arrived in time. Run 'scx auth login' again."},
	{shared.ErrQuotaExceeded, "SoundCloud reports no downloads remaining for this track."},
	{shared.ErrTrackNotFound, "Check the id with 'scx tracks list'."},
	{shared.ErrTransport, "SoundCloud could not be reached or returned an error. Try again later."},
	{shared.ErrInvalidConfig, "Check config.toml or run 'scx setup database' to create one."},
}

// describeError returns a hint for the first known error kind in err's tree, or "".
func describeError(err error) string {
	for _, h := range errorHints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}
