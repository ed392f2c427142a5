package frame

import (
	"fmt"

	"github.com/pekwm/pekwm-go/internal/xerrors"
)

var errStaleParent = fmt.Errorf("frame has no usable parent window: %w", xerrors.ErrStaleParent)
