// Package xerrors enumerates the error kinds of spec.md 7 as sentinel
// errors. Callers wrap them with fmt.Errorf("...: %w", err) so
// errors.Is still matches the sentinel after context is attached.
package xerrors

import "errors"

var (
	// ErrResourceGone: a window referenced in an event no longer exists.
	ErrResourceGone = errors.New("x11 resource gone")
	// ErrUnmanageable: override-redirect or withdrawn-without-icon window.
	ErrUnmanageable = errors.New("window is not manageable")
	// ErrStaleParent: insert into a destroyed Frame.
	ErrStaleParent = errors.New("stale parent frame")
	// ErrConfigInvalid: configuration error at reload.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrThemeAssetMissing: a theme asset could not be loaded.
	ErrThemeAssetMissing = errors.New("theme asset missing")
	// ErrGrabDenied: an interactive grab could not be acquired.
	ErrGrabDenied = errors.New("grab denied")
	// ErrWMPresent: another window manager already owns the display.
	ErrWMPresent = errors.New("another window manager is already running")
	// ErrReplaceTimeout: the --replace handshake did not complete in time.
	ErrReplaceTimeout = errors.New("window manager replacement handshake timed out")
	// ErrSpawnFailed: a child process could not be started.
	ErrSpawnFailed = errors.New("failed to spawn child process")
	// ErrAssertion: an internal invariant was violated; triggers the panic path.
	ErrAssertion = errors.New("internal assertion violated")
)

// ExitCode maps a terminal error to the process exit code of spec.md 6.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrWMPresent), errors.Is(err, ErrReplaceTimeout):
		return 1
	case errors.Is(err, ErrConfigInvalid):
		return 2
	default:
		return 3
	}
}
