package websocket

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/esimov/snowfall/protocol"
	"github.com/esimov/snowfall/snowfall"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, s *Server) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestConfigPushedOnConnect(t *testing.T) {
	cfg := snowfall.DefaultConfig()
	cfg.FlakesNum = 42
	cfg.FadeAway = false
	ts := newTestServer(t, &Server{Params: HttpParams{Prefix: "/", Root: t.TempDir()}, Config: cfg})

	conn := dial(t, ts)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg protocol.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Type != protocol.TypeConfig {
		t.Errorf("type = %q, want %q", msg.Type, protocol.TypeConfig)
	}
	if msg.Config == nil {
		t.Fatal("config missing")
	}
	if *msg.Config != cfg {
		t.Errorf("config = %+v, want %+v", *msg.Config, cfg)
	}
}

func TestStatusReported(t *testing.T) {
	statuses := make(chan string, 1)
	s := &Server{
		Params:   HttpParams{Prefix: "/", Root: t.TempDir()},
		Config:   snowfall.DefaultConfig(),
		OnStatus: func(status string) { statuses <- status },
	}
	ts := newTestServer(t, s)

	conn := dial(t, ts)
	var msg protocol.Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if err := conn.WriteJSON(protocol.StatusMessage("started")); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	select {
	case got := <-statuses:
		if got != "started" {
			t.Errorf("status = %q, want started", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("status not reported")
	}
}

func TestServesStaticFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<canvas></canvas>"), 0644); err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, &Server{Params: HttpParams{Prefix: "/", Root: root}, Config: snowfall.DefaultConfig()})

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if string(body) != "<canvas></canvas>" {
		t.Errorf("body = %q", body)
	}
}

func TestPlainRequestToSocketEndpointFails(t *testing.T) {
	ts := newTestServer(t, &Server{Params: HttpParams{Prefix: "/", Root: t.TempDir()}, Config: snowfall.DefaultConfig()})

	resp, err := http.Get(ts.URL + "/ws")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
