package services

import (
	"errors"
	"fmt"

	"github.com/desertthunder/scx/internal/shared"
)

// AuthError is returned by [Authenticatable.HandleCallback].
//
// Kind is [shared.ErrAuthDenied] or [shared.ErrExchangeFailed].
type AuthError struct {
	Kind        error
	Description string
	Err         error
}

func (e *AuthError) Error() string {
	switch {
	case e.Description != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Description)
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *AuthError) Unwrap() []error { return compact(e.Kind, e.Err) }

// APIError is returned by listing and link resolution.
//
// Kind is [shared.ErrNotAuthenticated], [shared.ErrTransport] or [shared.ErrTrackNotFound].
type APIError struct {
	Kind   error
	Op     string
	Status int // HTTP status, zero when no response was received
	Err    error
}

func (e *APIError) Error() string {
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() []error { return compact(e.Kind, e.Err) }

// DownloadError is returned by [Downloadable.DownloadTrack].
//
// Kind is [shared.ErrQuotaExceeded] or [shared.ErrDownloadFailed].
type DownloadError struct {
	Kind    error
	TrackID int64
	Err     error
}

func (e *DownloadError) Error() string {
	msg := fmt.Sprintf("track %d: %v", e.TrackID, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DownloadError) Unwrap() []error { return compact(e.Kind, e.Err) }

func compact(errs ...error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// apiError wraps err as an [APIError], keeping an existing one intact.
func apiError(op string, kind error, err error) error {
	var existing *APIError
	if errors.As(err, &existing) {
		return existing
	}
	return &APIError{Kind: kind, Op: op, Err: err}
}

// errNotAuthenticated is the fail-fast error for operations that need a token.
func errNotAuthenticated(op string) error {
	return &APIError{Kind: shared.ErrNotAuthenticated, Op: op}
}
