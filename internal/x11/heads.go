package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/pekwm/pekwm-go/internal/geom"
)

// QueryHeads returns the current per-monitor rectangles, preferring
// RandR over Xinerama over a single synthetic head covering root
// (spec.md 3 "Head": "derived from RandR/Xinerama or set to a single
// synthetic head covering the root").
func (c *Conn) QueryHeads() ([]geom.Rect, error) {
	if c.HasRandr {
		rects, err := c.queryRandrHeads()
		if err == nil && len(rects) > 0 {
			return rects, nil
		}
	}
	if c.HasXinerama {
		rects, err := c.queryXineramaHeads()
		if err == nil && len(rects) > 0 {
			return rects, nil
		}
	}
	return []geom.Rect{{
		X: 0, Y: 0,
		W: int32(c.Screen.WidthInPixels),
		H: int32(c.Screen.HeightInPixels),
	}}, nil
}

func (c *Conn) queryRandrHeads() ([]geom.Rect, error) {
	res, err := randr.GetScreenResources(c.X, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: randr get screen resources: %w", err)
	}
	var rects []geom.Rect
	for _, crtc := range res.Crtcs {
		info, err := randr.GetCrtcInfo(c.X, crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 {
			continue
		}
		rects = append(rects, geom.Rect{
			X: int32(info.X), Y: int32(info.Y),
			W: int32(info.Width), H: int32(info.Height),
		})
	}
	return rects, nil
}

func (c *Conn) queryXineramaHeads() ([]geom.Rect, error) {
	reply, err := xinerama.QueryScreens(c.X).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: xinerama query screens: %w", err)
	}
	rects := make([]geom.Rect, 0, len(reply.ScreenInfo))
	for _, s := range reply.ScreenInfo {
		rects = append(rects, geom.Rect{
			X: int32(s.XOrg), Y: int32(s.YOrg),
			W: int32(s.Width), H: int32(s.Height),
		})
	}
	return rects, nil
}
