package snowfall

import (
	"context"
	"sync"
	"time"
)

// Loop is the handle of a running animation. Stop cancels future frames.
type Loop struct {
	cancel context.CancelFunc
	ops    chan func(*Engine)
	done   chan struct{}
	once   sync.Once
}

// Run renders a frame on every tick until ctx is cancelled, the tick channel
// is closed or Stop is called. The engine must only be touched through Do
// while the loop is running.
func Run(ctx context.Context, eng *Engine, surf Surface, ticks <-chan time.Time) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{
		cancel: cancel,
		ops:    make(chan func(*Engine)),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(l.done)
		for {
			select {
			case <-ctx.Done():
				return
			case fn := <-l.ops:
				fn(eng)
			case _, ok := <-ticks:
				if !ok {
					return
				}
				eng.Frame(surf)
			}
		}
	}()
	return l
}

// Do runs fn on the loop goroutine between two frames and waits for it to
// return. It reports false when the loop has already exited. Do must not be
// called from the loop goroutine itself.
func (l *Loop) Do(fn func(*Engine)) bool {
	ran := make(chan struct{})
	op := func(e *Engine) {
		defer close(ran)
		fn(e)
	}
	select {
	case l.ops <- op:
	case <-l.done:
		return false
	}
	<-ran
	return true
}

// Stop cancels the loop and waits for the in-flight frame to finish.
func (l *Loop) Stop() {
	if l == nil {
		return
	}
	l.once.Do(l.cancel)
	<-l.done
}

// Done is closed once the loop has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
