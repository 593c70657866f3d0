package terminal

import (
	"context"
	"image/color"
	"io"
	"log"
	"os"
	"time"
	"unicode/utf8"

	"github.com/esimov/snowfall/snowfall"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"github.com/nsf/termbox-go"
)

const (
	// CellWidth and CellHeight are the surface units covered by one terminal cell.
	CellWidth  = 8
	CellHeight = 16
)

// Terminal renders the snowfall into the terminal cell grid.
type Terminal struct {
	cfg      snowfall.Config
	fps      int
	backbuf  []termbox.Cell
	bbw, bbh int
	logger   *log.Logger
	logfile  *os.File
	fn       string
}

// New creates a terminal renderer drawing fps frames per second.
func New(cfg snowfall.Config, fps int) *Terminal {
	if fps <= 0 {
		fps = 30
	}
	t := &Terminal{cfg: cfg, fps: fps, fn: "debug.log"}

	var out io.Writer = io.Discard
	f, err := os.OpenFile(t.fn, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err == nil {
		t.logfile = f
		out = f
	}
	t.logger = log.New(out, "snowfall ", log.LstdFlags)

	return t
}

// Render takes over the terminal until Esc, q or Ctrl-C is pressed or ctx is
// cancelled. A disabled configuration returns immediately without touching
// the terminal.
func (t *Terminal) Render(ctx context.Context) error {
	defer t.close()

	if !t.cfg.Enabled {
		t.logger.Println("snowfall disabled")
		return nil
	}
	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)
	termbox.HideCursor()

	w, h := termbox.Size()
	t.reallocBackBuffer(w, h)
	eng, err := snowfall.New(t.cfg, float64(w*CellWidth), float64(h*CellHeight))
	if err != nil {
		return err
	}
	t.logger.Printf("started: %d flakes on %dx%d cells", eng.Len(), w, h)

	events := make(chan termbox.Event)
	quit := make(chan struct{})
	polled := make(chan struct{})
	go func() {
		defer close(polled)
		pollEvents(termbox.PollEvent, events, quit)
	}()
	// Closing quit first guarantees the poller is back in PollEvent, where
	// the interrupt is received, before termbox is closed.
	defer func() {
		close(quit)
		termbox.Interrupt()
		<-polled
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()
	loop := snowfall.Run(ctx, eng, t, ticker.C)
	defer loop.Stop()

	for {
		select {
		case <-loop.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || ev.Ch == 'q' {
					t.logger.Println("stopped by user")
					return nil
				}
				if ev.Ch == 'p' {
					loop.Do(func(e *snowfall.Engine) {
						e.SetVisible(e.Paused())
						t.logger.Printf("paused: %v", e.Paused())
					})
				}
			case termbox.EventResize:
				loop.Do(func(e *snowfall.Engine) {
					t.reallocBackBuffer(ev.Width, ev.Height)
					e.Resize(float64(ev.Width*CellWidth), float64(ev.Height*CellHeight))
				})
				t.logger.Printf("resized to %dx%d cells", ev.Width, ev.Height)
			case termbox.EventError:
				t.logger.Println(ev.Err)
				return ev.Err
			}
		}
	}
}

// pollEvents forwards events returned by poll until an interrupt event is
// received. Events read after quit is closed are dropped.
func pollEvents(poll func() termbox.Event, events chan<- termbox.Event, quit <-chan struct{}) {
	for {
		ev := poll()
		if ev.Type == termbox.EventInterrupt {
			return
		}
		select {
		case events <- ev:
		case <-quit:
		}
	}
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
}

// Clear blanks the back buffer.
func (t *Terminal) Clear() {
	for i := range t.backbuf {
		t.backbuf[i] = termbox.Cell{Ch: ' '}
	}
}

// DrawFlake writes the flake glyph into the cell under its position.
func (t *Terminal) DrawFlake(f snowfall.Flake, glyph string, c color.Color) {
	col := int(f.GetX() / CellWidth)
	row := int(f.GetY() / CellHeight)
	if f.GetX() < 0 || f.GetY() < 0 || col >= t.bbw || row >= t.bbh {
		return
	}
	r, _ := utf8.DecodeRuneInString(glyph)
	if col+runewidth.RuneWidth(r) > t.bbw {
		return
	}
	cc, ok := colorful.MakeColor(c)
	if !ok {
		cc = colorful.Color{R: 1, G: 1, B: 1}
	}
	t.backbuf[t.bbw*row+col] = termbox.Cell{Ch: r, Fg: shade(cc, f.GetOpacity())}
}

// Flush presents the back buffer.
func (t *Terminal) Flush() {
	copy(termbox.CellBuffer(), t.backbuf)
	termbox.Flush()
}

func (t *Terminal) close() {
	if t.logfile != nil {
		t.logfile.Close()
	}
}
