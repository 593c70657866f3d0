package snowfall

// Flake defines the components of a single falling snowflake.
type Flake struct {
	x, y    float64
	size    float64
	speed   float64
	wind    float64
	opacity float64
	paused  bool
}

// NewFlake spawns a new flake at coordinates defined by {x, y}.
func NewFlake(x, y, size, speed, wind, opacity float64) Flake {
	return Flake{
		x:       x,
		y:       y,
		size:    size,
		speed:   speed,
		wind:    wind,
		opacity: clamp01(opacity),
	}
}

// GetX retrieve the flake value at {x} position.
func (f Flake) GetX() float64 {
	return f.x
}

// GetY retrieve the flake value at {y} position.
func (f Flake) GetY() float64 {
	return f.y
}

// GetSize returns the glyph size in pixels.
func (f Flake) GetSize() float64 {
	return f.size
}

// GetSpeed returns the vertical distance advanced per frame.
func (f Flake) GetSpeed() float64 {
	return f.speed
}

// GetWind returns the horizontal drift per frame, before scaling.
func (f Flake) GetWind() float64 {
	return f.wind
}

// GetOpacity returns the flake alpha in the [0, 1] range.
func (f Flake) GetOpacity() float64 {
	return f.opacity
}

// SetOpacity sets the flake alpha, clamped to [0, 1].
func (f *Flake) SetOpacity(val float64) {
	f.opacity = clamp01(val)
}

// IsPaused reports whether the flake is frozen in place.
func (f Flake) IsPaused() bool {
	return f.paused
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
