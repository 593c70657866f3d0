//go:build js && wasm

package main

import (
	"syscall/js"
	"time"

	"github.com/esimov/snowfall/wasm/canvas"
)

func main() {
	cfg, socket := canvas.LoadConfig(2 * time.Second)
	defer socket.Close()

	done := make(chan struct{})
	var handle *canvas.Handle

	start := func() {
		handle = canvas.Start(cfg)
		if handle == nil {
			close(done)
			return
		}
		handle.OnStop = func() {
			socket.Report("stopped")
			close(done)
		}
		socket.Report("started")
	}

	doc := js.Global().Get("document")
	if doc.Get("readyState").String() == "loading" {
		var ready js.Func
		ready = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			doc.Call("removeEventListener", "DOMContentLoaded", ready)
			ready.Release()
			start()
			return nil
		})
		doc.Call("addEventListener", "DOMContentLoaded", ready)
	} else {
		start()
	}

	// The host page calls snowfallStop() on navigation away.
	stop := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		handle.Stop()
		return nil
	})
	js.Global().Set("snowfallStop", stop)

	<-done
	js.Global().Delete("snowfallStop")
	stop.Release()
}
