package canvas

import (
	"image/color"
	"net/url"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// cssColor formats c as a hex color usable as a canvas fillStyle.
func cssColor(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "#ffffff"
	}
	return cc.Hex()
}

// cssFont returns the font shorthand used to draw a glyph of the given size.
func cssFont(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64) + "px Arial"
}

// socketURL builds the websocket endpoint address for the page origin.
func socketURL(protocol, host string) string {
	scheme := "ws://"
	if strings.HasPrefix(protocol, "https") {
		scheme = "wss://"
	}
	return scheme + host + "/ws"
}

// devServerRequested reports whether the page query string (location.search)
// asks for the configuration served by the dev server, e.g. "?devserver".
func devServerRequested(search string) bool {
	q, err := url.ParseQuery(strings.TrimPrefix(search, "?"))
	if err != nil {
		return false
	}
	_, ok := q["devserver"]
	return ok
}
