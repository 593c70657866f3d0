package snowfall

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"
)

const (
	// windFactor scales the per-flake drift applied each frame.
	windFactor = 0.5
	// fadeZone is the distance from the bottom edge where flakes start fading.
	fadeZone = 50
	// fadeStep is the opacity lost per frame inside the fade zone.
	fadeStep = 0.02
	// edgeMargin is how far off-surface a flake travels before wrapping or spawning.
	edgeMargin = 10
)

// Surface is the drawing target the engine renders onto every frame.
type Surface interface {
	Clear()
	DrawFlake(f Flake, glyph string, c color.Color)
}

// Flusher is implemented by surfaces that buffer a frame and need to present
// it once every flake has been drawn.
type Flusher interface {
	Flush()
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand sets the random source used to generate flakes.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rnd = r
	}
}

// Engine owns the flake pool and advances it one frame at a time.
// It is not safe for concurrent use; drive it from a single goroutine.
type Engine struct {
	cfg    Config
	flakes []Flake
	color  color.Color

	width, height float64
	pendingW      float64
	pendingH      float64
	resized       bool
	paused        bool

	rnd *rand.Rand
}

// New builds an engine for a surface of the given dimensions. A disabled
// configuration yields an inert engine without a pool.
func New(cfg Config, width, height float64, opts ...Option) (*Engine, error) {
	e := &Engine{cfg: cfg, width: width, height: height}
	if !cfg.Enabled {
		return e, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative surface %vx%v", ErrInvalidConfig, width, height)
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.color = cfg.Color()
	e.init()

	return e, nil
}

// init populates every slot, spreading the flakes over the spawn band so the
// first frame already shows snow at all depths.
func (e *Engine) init() {
	band := e.height
	if e.cfg.VerticalSize > 0 && e.cfg.VerticalSize < band {
		band = e.cfg.VerticalSize
	}
	e.flakes = make([]Flake, e.cfg.FlakesNum)
	for i := range e.flakes {
		f := e.newFlake()
		f.y = e.rnd.Float64() * band
		e.flakes[i] = f
	}
}

// newFlake generates a flake just above the top edge.
func (e *Engine) newFlake() Flake {
	f := NewFlake(
		e.rnd.Float64()*e.width,
		-edgeMargin,
		e.between(e.cfg.FlakeMinSize, e.cfg.FlakeMaxSize),
		e.between(e.cfg.FallingSpeedMin, e.cfg.FallingSpeedMax),
		e.rnd.Float64()*2-1,
		e.rnd.Float64()*0.5+0.5,
	)
	f.paused = e.paused
	return f
}

func (e *Engine) between(min, max float64) float64 {
	return e.rnd.Float64()*(max-min) + min
}

// Enabled reports whether the engine owns a pool.
func (e *Engine) Enabled() bool {
	return e.flakes != nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Len returns the number of pool slots.
func (e *Engine) Len() int {
	return len(e.flakes)
}

// Size returns the surface dimensions currently used by the update step.
func (e *Engine) Size() (float64, float64) {
	return e.width, e.height
}

// Flakes returns a copy of the pool in slot order.
func (e *Engine) Flakes() []Flake {
	out := make([]Flake, len(e.flakes))
	copy(out, e.flakes)
	return out
}

// Flake returns the flake occupying slot i. It panics if i is not in
// [0, Len()), which includes every index of a disabled engine.
func (e *Engine) Flake(i int) Flake {
	return e.flakes[i]
}

// SetFlake replaces the flake occupying slot i. Like Flake, it panics if i is
// out of range.
func (e *Engine) SetFlake(i int, f Flake) {
	e.flakes[i] = f
}

// Resize records new surface dimensions. They take effect at the start of the
// next Update, so a frame never mixes two sizes. Flake positions are kept.
func (e *Engine) Resize(width, height float64) {
	if !e.Enabled() || width < 0 || height < 0 {
		return
	}
	e.pendingW, e.pendingH = width, height
	e.resized = true
}

// SetVisible pauses every flake when the page is hidden and resumes them
// when it becomes visible again.
func (e *Engine) SetVisible(visible bool) {
	e.paused = !visible
	for i := range e.flakes {
		e.flakes[i].paused = e.paused
	}
}

// Paused reports whether the engine is currently paused.
func (e *Engine) Paused() bool {
	return e.paused
}

// Update advances the pool by one frame.
func (e *Engine) Update() {
	if !e.Enabled() {
		return
	}
	if e.resized {
		e.width, e.height = e.pendingW, e.pendingH
		e.resized = false
	}
	for i := range e.flakes {
		f := &e.flakes[i]
		if f.paused {
			continue
		}
		f.y += f.speed
		f.x += f.wind * windFactor

		if e.cfg.FadeAway {
			if f.y > e.height-fadeZone {
				f.SetOpacity(f.opacity - fadeStep)
				if f.opacity <= 0 {
					e.flakes[i] = e.newFlake()
					continue
				}
			}
		} else if f.y > e.height {
			e.flakes[i] = e.newFlake()
			continue
		}

		// A respawned flake already starts inside the surface.
		if f.x > e.width+edgeMargin {
			f.x = -edgeMargin
		} else if f.x < -edgeMargin {
			f.x = e.width + edgeMargin
		}
	}
}

// Render clears the surface and draws every flake in slot order.
func (e *Engine) Render(s Surface) {
	if !e.Enabled() || s == nil {
		return
	}
	s.Clear()
	for _, f := range e.flakes {
		s.DrawFlake(f, e.cfg.FlakeType, e.color)
	}
	if fl, ok := s.(Flusher); ok {
		fl.Flush()
	}
}

// Frame runs one update followed by one render.
func (e *Engine) Frame(s Surface) {
	e.Update()
	e.Render(s)
}
