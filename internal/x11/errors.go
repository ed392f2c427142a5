package x11

import "errors"

var errConnClosed = errors.New("connection closed")
var errSelectionLost = errors.New("selection ownership lost a race")
