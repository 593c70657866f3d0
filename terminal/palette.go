package terminal

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/nsf/termbox-go"
	"github.com/tanema/gween/ease"
)

var black = colorful.Color{}

// cubeLevels are the channel intensities of the xterm 6x6x6 color cube.
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// shade blends c toward black by the flake opacity and returns the closest
// xterm-256 color as a termbox attribute for Output256 mode.
func shade(c colorful.Color, opacity float64) termbox.Attribute {
	if opacity <= 0 {
		return termbox.Attribute(16 + 1)
	}
	if opacity > 1 {
		opacity = 1
	}
	// Terminal cells have no alpha, an ease-out curve keeps faint flakes visible
	// for longer before they sink into the background.
	t := ease.OutQuad(float32(opacity), 0, 1, 1)
	r, g, b := black.BlendRgb(c, float64(t)).RGB255()

	return termbox.Attribute(xterm256(r, g, b) + 1)
}

// xterm256 maps an RGB triple onto the xterm 256 color palette index.
func xterm256(r, g, b uint8) int {
	hi, lo := max(r, g, b), min(r, g, b)
	if hi-lo < 8 {
		v := int(r) + int(g) + int(b)
		v /= 3
		switch {
		case v < 4:
			return 16
		case v > 246:
			return 231
		}
		idx := (v - 8 + 5) / 10
		if idx < 0 {
			idx = 0
		}
		if idx > 23 {
			idx = 23
		}
		return 232 + idx
	}
	return 16 + 36*cubeIndex(r) + 6*cubeIndex(g) + cubeIndex(b)
}

func cubeIndex(v uint8) int {
	best, dist := 0, 256
	for i, l := range cubeLevels {
		d := int(v) - int(l)
		if d < 0 {
			d = -d
		}
		if d < dist {
			best, dist = i, d
		}
	}
	return best
}
