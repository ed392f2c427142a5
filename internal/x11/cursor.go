package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Cursor glyph indices from the standard X cursor font, the same set
// BurntSushi-xgbutil/xcursor/cursors.go enumerates.
const (
	CursorLeftPtr  uint16 = 68
	CursorFleur    uint16 = 52
	CursorSizingNW uint16 = 134
	CursorSizingNE uint16 = 136
	CursorSizingSW uint16 = 12
	CursorSizingSE uint16 = 14
)

// CreateCursor builds a glyph cursor from the standard cursor font,
// following BurntSushi-xgbutil/xcursor's CreateCursorExtra shape
// (open "cursor" font, CreateGlyphCursor, close font) adapted to this
// package's plain *Conn rather than an xgbutil.XUtil.
func (c *Conn) CreateCursor(glyph uint16) (xproto.Cursor, error) {
	fontID, err := xproto.NewFontId(c.X)
	if err != nil {
		return 0, fmt.Errorf("x11: alloc font id: %w", err)
	}
	if err := xproto.OpenFontChecked(c.X, fontID, uint16(len("cursor")), "cursor").Check(); err != nil {
		return 0, fmt.Errorf("x11: open cursor font: %w", err)
	}
	defer xproto.CloseFontChecked(c.X, fontID).Check()

	cursorID, err := xproto.NewCursorId(c.X)
	if err != nil {
		return 0, fmt.Errorf("x11: alloc cursor id: %w", err)
	}
	err = xproto.CreateGlyphCursorChecked(
		c.X, cursorID, fontID, fontID, glyph, glyph+1,
		0, 0, 0, 0xffff, 0xffff, 0xffff,
	).Check()
	if err != nil {
		return 0, fmt.Errorf("x11: create glyph cursor: %w", err)
	}
	return cursorID, nil
}
