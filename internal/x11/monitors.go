package x11

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/randr"
	xinext "github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgbutil/xinerama"
	"github.com/BurntSushi/xgbutil/xrect"

	"github.com/1broseidon/dwn/internal/platform"
)

var (
	xineramaOnce sync.Once
	xineramaErr  error
	randrOnce    sync.Once
	randrErr     error
)

// Heads returns the physical monitors. Xinerama is asked first, then the
// active RandR CRTCs; a screen without either is one head.
func (d *Display) Heads() ([]platform.Rect, error) {
	if heads, err := d.xineramaHeads(); err == nil && len(heads) > 0 {
		return heads, nil
	}
	if heads, err := d.randrHeads(); err == nil && len(heads) > 0 {
		return heads, nil
	} else if err != nil {
		d.logger.Debug("randr heads unavailable", "error", err)
	}
	w, h := d.ScreenSize()
	return []platform.Rect{{X: 0, Y: 0, Width: w, Height: h}}, nil
}

func (d *Display) xineramaHeads() ([]platform.Rect, error) {
	xineramaOnce.Do(func() { xineramaErr = xinext.Init(d.conn()) })
	if xineramaErr != nil {
		return nil, fmt.Errorf("xinerama init failed: %w", xineramaErr)
	}
	active, err := xinext.IsActive(d.conn()).Reply()
	if err != nil || active.State == 0 {
		return nil, err
	}
	heads, err := xinerama.PhysicalHeads(d.XUtil)
	if err != nil {
		return nil, err
	}
	return toRects(heads), nil
}

// toRects converts heads, dropping degenerate ones.
func toRects(heads []xrect.Rect) []platform.Rect {
	out := make([]platform.Rect, 0, len(heads))
	for _, h := range heads {
		if !xrect.Valid(h) {
			continue
		}
		x, y, w, hh := h.Pieces()
		out = append(out, platform.Rect{X: x, Y: y, Width: w, Height: hh})
	}
	return out
}

// randrHeads lists every enabled CRTC driving at least one output.
func (d *Display) randrHeads() ([]platform.Rect, error) {
	randrOnce.Do(func() { randrErr = randr.Init(d.conn()) })
	if randrErr != nil {
		return nil, fmt.Errorf("randr init failed: %w", randrErr)
	}

	resources, err := randr.GetScreenResources(d.conn(), d.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var heads []xrect.Rect
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(d.conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		heads = append(heads, xrect.New(int(info.X), int(info.Y), int(info.Width), int(info.Height)))
	}
	return toRects(heads), nil
}
