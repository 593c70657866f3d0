//go:build js && wasm

package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"syscall/js"

	"github.com/esimov/snowfall/snowfall"
)

// Canvas is a full viewport <canvas> overlay the engine draws on.
type Canvas struct {
	window js.Value
	doc    js.Value
	canvas js.Value
	ctx    js.Value

	width, height float64
	fill          color.Color
	fillStyle     string
}

// Handle controls a running snowfall. A nil Handle is inert.
type Handle struct {
	c   *Canvas
	eng *snowfall.Engine

	frameID js.Value
	frame   js.Func
	resize  js.Func
	visible js.Func
	stopped bool

	// OnStop is called once the overlay has been removed.
	OnStop func()
}

// Start attaches the overlay and starts the animation. It returns nil when the
// configuration is disabled or the overlay cannot be created; failures are
// reported on the browser console and never interrupt the page.
func Start(cfg snowfall.Config) (h *Handle) {
	if !cfg.Enabled {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			Warn("snowfall: cannot start:", fmt.Sprint(r))
			h = nil
		}
	}()

	c, err := newCanvas(cfg.FlakeZIndex)
	if err != nil {
		Warn("snowfall:", err.Error())
		return nil
	}
	eng, err := snowfall.New(cfg, c.width, c.height)
	if err != nil {
		c.remove()
		Warn("snowfall:", err.Error())
		return nil
	}

	h = &Handle{c: c, eng: eng}
	h.frame = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		h.step()
		return nil
	})
	h.resize = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		eng.Resize(c.window.Get("innerWidth").Float(), c.window.Get("innerHeight").Float())
		return nil
	})
	h.visible = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		eng.SetVisible(!c.doc.Get("hidden").Bool())
		return nil
	})
	c.window.Call("addEventListener", "resize", h.resize)
	c.doc.Call("addEventListener", "visibilitychange", h.visible)
	h.frameID = c.window.Call("requestAnimationFrame", h.frame)

	return h
}

// step runs one frame and schedules the next one.
func (h *Handle) step() {
	if h.stopped {
		return
	}
	h.eng.Update()
	if w, ht := h.eng.Size(); w != h.c.width || ht != h.c.height {
		h.c.setSize(w, ht)
	}
	h.eng.Render(h.c)
	h.frameID = h.c.window.Call("requestAnimationFrame", h.frame)
}

// Stop cancels the pending frame, removes the listeners and the overlay.
// It is safe to call on a nil handle and more than once.
func (h *Handle) Stop() {
	if h == nil || h.stopped {
		return
	}
	h.stopped = true
	h.c.window.Call("cancelAnimationFrame", h.frameID)
	h.c.window.Call("removeEventListener", "resize", h.resize)
	h.c.doc.Call("removeEventListener", "visibilitychange", h.visible)
	h.frame.Release()
	h.resize.Release()
	h.visible.Release()
	h.c.remove()
	if h.OnStop != nil {
		h.OnStop()
	}
}

func newCanvas(zindex int) (*Canvas, error) {
	c := &Canvas{
		window: js.Global(),
		doc:    js.Global().Get("document"),
	}
	body := c.doc.Get("body")
	if body.IsNull() || body.IsUndefined() {
		return nil, errNoBody
	}
	c.canvas = c.doc.Call("createElement", "canvas")
	c.ctx = c.canvas.Call("getContext", "2d")
	if c.ctx.IsNull() {
		return nil, errNoContext
	}

	style := c.canvas.Get("style")
	style.Set("position", "fixed")
	style.Set("top", "0")
	style.Set("left", "0")
	style.Set("width", "100%")
	style.Set("height", "100%")
	style.Set("pointerEvents", "none")
	style.Set("zIndex", strconv.Itoa(zindex))

	body.Call("appendChild", c.canvas)
	c.setSize(c.window.Get("innerWidth").Float(), c.window.Get("innerHeight").Float())

	return c, nil
}

func (c *Canvas) setSize(w, h float64) {
	c.width, c.height = w, h
	c.canvas.Set("width", w)
	c.canvas.Set("height", h)
}

func (c *Canvas) remove() {
	c.canvas.Call("remove")
}

// Clear wipes the whole drawing surface.
func (c *Canvas) Clear() {
	c.ctx.Call("clearRect", 0, 0, c.width, c.height)
}

// DrawFlake draws the glyph centered at the flake position.
func (c *Canvas) DrawFlake(f snowfall.Flake, glyph string, col color.Color) {
	if col != c.fill {
		c.fill = col
		c.fillStyle = cssColor(col)
	}
	c.ctx.Call("save")
	c.ctx.Set("globalAlpha", f.GetOpacity())
	c.ctx.Set("fillStyle", c.fillStyle)
	c.ctx.Set("font", cssFont(f.GetSize()))
	c.ctx.Set("textAlign", "center")
	c.ctx.Call("fillText", glyph, f.GetX(), f.GetY())
	c.ctx.Call("restore")
}

// Log calls the `console.log` Javascript function
func Log(args ...interface{}) {
	js.Global().Get("console").Call("log", args...)
}

// Warn calls the `console.warn` Javascript function
func Warn(args ...interface{}) {
	js.Global().Get("console").Call("warn", args...)
}
