package websocket

import (
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/esimov/snowfall/protocol"
	"github.com/esimov/snowfall/snowfall"
	"github.com/gorilla/websocket"
)

type HttpParams struct {
	Address string
	Prefix  string
	Root    string
}

// A server application calls the Upgrade method from an HTTP request handler to initiate a connection
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// Server serves the wasm bundle and pushes the snowfall configuration to
// every page connecting on /ws.
type Server struct {
	Params HttpParams
	Config snowfall.Config
	// OnStatus is called with every status reported by a connected page.
	OnStatus func(status string)
}

// Handler returns the file server and websocket endpoint wrapped with
// request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	prefix := s.Params.Prefix
	if prefix == "" {
		prefix = "/"
	}
	mux.Handle(prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(s.Params.Root))))
	mux.HandleFunc("/ws", s.wsHandler)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Print(r.RemoteAddr + " " + r.Method + " " + r.URL.String())
		mux.ServeHTTP(w, r)
	})
}

// Init initializes the webserver and websocket connection
func (p *HttpParams) Init(cfg snowfall.Config) {
	var err error
	p.Root, err = filepath.Abs(p.Root)
	if err != nil {
		log.Fatalln(err)
	}
	s := &Server{Params: *p, Config: cfg}

	log.Printf("serving %s as %s on %s", p.Root, p.Prefix, p.Address)
	httpServer := http.Server{
		Addr:    p.Address,
		Handler: s.Handler(),
	}
	err = httpServer.ListenAndServe()
	if err != nil {
		log.Fatalln(err)
	}
}

// wsHandler defines the websocket connection endpoint
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade the http connection to a WebSocket connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if _, ok := err.(websocket.HandshakeError); !ok {
			log.Println(err)
		}
		return
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(protocol.ConfigMessage(s.Config)); err != nil {
		log.Println(err)
		conn.Close()
		return
	}
	go s.readSocket(conn)
}

// readSocket listen for status messages sent by the page
func (s *Server) readSocket(conn *websocket.Conn) {
	defer func() {
		conn.Close()
	}()

	for {
		var msg protocol.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("error: %v", err)
			}
			return
		}
		if msg.Type != protocol.TypeStatus {
			log.Printf("unexpected message type %q", msg.Type)
			continue
		}
		log.Printf("%s: snowfall %s", conn.RemoteAddr(), msg.Status)
		if s.OnStatus != nil {
			s.OnStatus(msg.Status)
		}
	}
}
