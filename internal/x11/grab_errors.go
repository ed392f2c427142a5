package x11

import "errors"

// errGrabDenied is returned, wrapped, by GrabPointerForMove and
// GrabKeyboardForMove when the server refuses the grab. It is a local
// error, distinct from xerrors.ErrGrabDenied.
var errGrabDenied = errors.New("grab denied")
