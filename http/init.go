package http

import (
	"github.com/esimov/snowfall/snowfall"
	"github.com/esimov/snowfall/websocket"
)

// DefaultParams returns the parameters the wasm client expects by default.
func DefaultParams() websocket.HttpParams {
	return websocket.HttpParams{
		Address: "localhost:5000",
		Prefix:  "/",
		Root:    ".",
	}
}

// InitServer starts the development server with the given snowfall config.
func InitServer(p websocket.HttpParams, cfg snowfall.Config) {
	p.Init(cfg)
}
