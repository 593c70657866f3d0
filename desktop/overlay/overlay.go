// Package overlay renders the snowfall in a transparent, click-through
// desktop window on top of every other window.
package overlay

import (
	"image/color"
	"math"
	"sync/atomic"

	"github.com/esimov/snowfall/snowfall"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// armCount is the number of arms of a drawn flake.
const armCount = 6

// Overlay implements ebiten.Game around a snowfall engine.
type Overlay struct {
	eng     *snowfall.Engine
	screen  *ebiten.Image
	w, h    int
	visible bool
	stopped atomic.Bool
}

// New creates an overlay covering a w x h window.
func New(cfg snowfall.Config, w, h int) (*Overlay, error) {
	eng, err := snowfall.New(cfg, float64(w), float64(h))
	if err != nil {
		return nil, err
	}
	return &Overlay{eng: eng, w: w, h: h, visible: true}, nil
}

// Run opens the overlay window and blocks until it is closed or stopped.
func (o *Overlay) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(o.w, o.h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetRunnableOnUnfocused(true)

	return ebiten.RunGameWithOptions(o, &ebiten.RunGameOptions{
		ScreenTransparent: true,
	})
}

// Stop ends the game loop on the next tick. It may be called from any goroutine.
func (o *Overlay) Stop() {
	o.stopped.Store(true)
}

// Update advances the snowfall, pausing it while the window is minimized.
func (o *Overlay) Update() error {
	if o.stopped.Load() {
		return ebiten.Termination
	}
	if visible := !ebiten.IsWindowMinimized(); visible != o.visible {
		o.visible = visible
		o.eng.SetVisible(visible)
	}
	o.eng.Update()
	return nil
}

// Draw renders the flakes onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.screen = screen
	o.eng.Render(o)
	o.screen = nil
}

// Layout keeps the logical screen equal to the window size.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != o.w || outsideHeight != o.h {
		o.w, o.h = outsideWidth, outsideHeight
		o.eng.Resize(float64(o.w), float64(o.h))
	}
	return o.w, o.h
}

// Clear wipes the screen to transparent.
func (o *Overlay) Clear() {
	o.screen.Clear()
}

// DrawFlake strokes a six-armed star in place of the glyph, in the
// configured color.
func (o *Overlay) DrawFlake(f snowfall.Flake, _ string, _ color.Color) {
	clr := o.flakeColor(f)
	width := float32(math.Max(1, f.GetSize()/10))
	for _, s := range arms(f.GetX(), f.GetY(), f.GetSize()) {
		vector.StrokeLine(o.screen, s[0], s[1], s[2], s[3], width, clr, true)
	}
}

// flakeColor is the configured flake color with the flake opacity as alpha.
func (o *Overlay) flakeColor(f snowfall.Flake) color.NRGBA {
	return o.eng.Config().RGBA(f.GetOpacity())
}

// arms returns the line segments {x0, y0, x1, y1} of a flake of the given
// size centered at {x, y}: one per arm plus two barbs near each tip.
func arms(x, y, size float64) [][4]float32 {
	r := size / 2
	segs := make([][4]float32, 0, armCount*3)
	for i := 0; i < armCount; i++ {
		a := float64(i) * 2 * math.Pi / armCount
		tx, ty := x+r*math.Cos(a), y+r*math.Sin(a)
		segs = append(segs, seg(x, y, tx, ty))

		// Barbs start at two thirds of the arm.
		bx, by := x+r*2/3*math.Cos(a), y+r*2/3*math.Sin(a)
		for _, d := range []float64{-math.Pi / 4, math.Pi / 4} {
			segs = append(segs, seg(bx, by, bx+r/3*math.Cos(a+d), by+r/3*math.Sin(a+d)))
		}
	}
	return segs
}

func seg(x0, y0, x1, y1 float64) [4]float32 {
	return [4]float32{float32(x0), float32(y0), float32(x1), float32(y1)}
}
