package snowfall

import (
	"context"
	"testing"
	"time"
)

func TestRunRendersOnTick(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FlakesNum = 3
	e := newTestEngine(t, cfg)
	s := &recordingSurface{}
	ticks := make(chan time.Time)

	l := Run(context.Background(), e, s, ticks)
	defer l.Stop()

	ticks <- time.Now()
	ticks <- time.Now()

	var clears, draws int
	if !l.Do(func(*Engine) { clears, draws = s.clears, len(s.draws) }) {
		t.Fatal("Do on running loop returned false")
	}
	if clears != 2 {
		t.Errorf("clears = %d, want 2", clears)
	}
	if draws != 3 {
		t.Errorf("draws = %d, want 3", draws)
	}
}

func TestRunAppliesOpsBetweenFrames(t *testing.T) {
	cfg := DefaultConfig()
	e := newTestEngine(t, cfg)
	ticks := make(chan time.Time)

	l := Run(context.Background(), e, &recordingSurface{}, ticks)
	defer l.Stop()

	l.Do(func(e *Engine) { e.Resize(200, 100) })
	ticks <- time.Now()

	var w, h float64
	l.Do(func(e *Engine) { w, h = e.Size() })
	if w != 200 || h != 100 {
		t.Errorf("Size() = %vx%v, want 200x100", w, h)
	}
}

func TestStopEndsLoop(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	l := Run(context.Background(), e, &recordingSurface{}, make(chan time.Time))

	l.Stop()
	l.Stop()
	select {
	case <-l.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
	if l.Do(func(*Engine) {}) {
		t.Error("Do after Stop returned true")
	}
}

func TestRunExitsOnContextCancel(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	l := Run(ctx, e, &recordingSurface{}, make(chan time.Time))

	cancel()
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop still running after context cancel")
	}
}

func TestRunExitsOnClosedTicks(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())
	ticks := make(chan time.Time)
	l := Run(context.Background(), e, &recordingSurface{}, ticks)

	close(ticks)
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop still running after ticks closed")
	}
}

func TestNilLoopStop(t *testing.T) {
	var l *Loop
	l.Stop()
}
