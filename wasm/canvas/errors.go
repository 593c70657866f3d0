package canvas

import "errors"

var (
	errNoBody    = errors.New("document has no body")
	errNoContext = errors.New("2d context not supported")
)
