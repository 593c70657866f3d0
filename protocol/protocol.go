// Package protocol defines the JSON messages exchanged between the dev server
// and the browser over the /ws endpoint.
package protocol

import "github.com/esimov/snowfall/snowfall"

// Message types.
const (
	TypeConfig = "config"
	TypeStatus = "status"
)

// Message is the JSON envelope sent in both directions.
type Message struct {
	Type   string           `json:"type"`
	Config *snowfall.Config `json:"config,omitempty"`
	Status string           `json:"status,omitempty"`
}

// ConfigMessage wraps cfg for the server push.
func ConfigMessage(cfg snowfall.Config) Message {
	return Message{Type: TypeConfig, Config: &cfg}
}

// StatusMessage reports the page side animation state.
func StatusMessage(status string) Message {
	return Message{Type: TypeStatus, Status: status}
}
