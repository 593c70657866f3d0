//go:build js && wasm

package canvas

import (
	"encoding/json"
	"errors"
	"syscall/js"
	"time"

	"github.com/esimov/snowfall/protocol"
	"github.com/esimov/snowfall/snowfall"
)

// Socket is the browser side of the dev server /ws endpoint.
type Socket struct {
	ws        js.Value
	listeners []listener
	open      bool
}

type listener struct {
	event string
	fn    js.Func
}

// Dial opens a websocket to the server the page was loaded from.
func Dial() *Socket {
	loc := js.Global().Get("location")
	url := socketURL(loc.Get("protocol").String(), loc.Get("host").String())

	return &Socket{ws: js.Global().Get("WebSocket").New(url)}
}

// Config waits for the configuration pushed by the server. It must not be
// called from a Javascript callback.
func (s *Socket) Config(timeout time.Duration) (snowfall.Config, error) {
	msgs := make(chan protocol.Message, 1)
	errs := make(chan error, 1)

	s.on("message", func(ev js.Value) {
		var msg protocol.Message
		if err := json.Unmarshal([]byte(ev.Get("data").String()), &msg); err != nil {
			select {
			case errs <- err:
			default:
			}
			return
		}
		select {
		case msgs <- msg:
		default:
		}
	})
	s.on("open", func(js.Value) { s.open = true })
	s.on("error", func(js.Value) {
		select {
		case errs <- errors.New("websocket error"):
		default:
		}
	})
	s.on("close", func(js.Value) {
		s.open = false
		select {
		case errs <- errors.New("websocket closed"):
		default:
		}
	})

	select {
	case msg := <-msgs:
		if msg.Type != protocol.TypeConfig || msg.Config == nil {
			return snowfall.Config{}, errors.New("unexpected message " + msg.Type)
		}
		return *msg.Config, nil
	case err := <-errs:
		return snowfall.Config{}, err
	case <-time.After(timeout):
		return snowfall.Config{}, errors.New("timed out waiting for config")
	}
}

// Report sends a status message to the server if the socket is open.
func (s *Socket) Report(status string) {
	if s == nil || !s.open {
		return
	}
	b, err := json.Marshal(protocol.StatusMessage(status))
	if err != nil {
		return
	}
	s.ws.Call("send", string(b))
}

// Close closes the socket and releases the callbacks.
func (s *Socket) Close() {
	if s == nil {
		return
	}
	for _, l := range s.listeners {
		s.ws.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	s.listeners = nil
	s.open = false
	s.ws.Call("close")
}

func (s *Socket) on(event string, fn func(ev js.Value)) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	s.listeners = append(s.listeners, listener{event: event, fn: cb})
	s.ws.Call("addEventListener", event, cb)
}

// LoadConfig returns the default configuration, or the one pushed by the dev
// server when the page was opened with ?devserver. It falls back to the
// defaults when the dev server is not reachable.
func LoadConfig(timeout time.Duration) (snowfall.Config, *Socket) {
	if !devServerRequested(js.Global().Get("location").Get("search").String()) {
		return snowfall.DefaultConfig(), nil
	}
	s := Dial()
	cfg, err := s.Config(timeout)
	if err != nil {
		Log("snowfall: using default config:", err.Error())
		s.Close()
		return snowfall.DefaultConfig(), nil
	}
	return cfg, s
}
