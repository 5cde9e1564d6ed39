package listener

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	wsWriteWait = 10 * time.Second

	// Largest command line a browser may send.
	wsMaxMessageSize = 4096

	wsShutdownWait = 5 * time.Second
)

// WebsocketListener serves the game to browsers. Each text frame a client
// sends is one command line; output arrives as text frames.
type WebsocketListener struct {
	port     uint16
	path     string
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = "/ws"
	}
	return &WebsocketListener{
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The game is served to any origin; there is nothing to steal.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()
		l.handle(connCtx, w, r)
	})

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", l.port))
	if err != nil {
		cancelConns()
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: wsWriteWait}

	go func() {
		<-ctx.Done()
		cancelConns()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), wsShutdownWait)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("shutting down websocket server", "error", err)
		}
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port, "path", l.path)

	err = srv.Serve(ln)
	wg.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}
	return nil
}

func (l *WebsocketListener) handle(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.WarnContext(ctx, "upgrading websocket", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer ws.Close()
	ws.SetReadLimit(wsMaxMessageSize)

	// Closing the socket unblocks a pending read when the server stops.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			ws.Close()
		case <-done:
		}
	}()

	slog.InfoContext(ctx, "websocket connection established", "remote", r.RemoteAddr)
	l.cm.AcceptConnection(ctx, newWSReadWriter(ws))
}

// wsConn is the part of a websocket connection the adapter needs.
type wsConn interface {
	NextReader() (int, io.Reader, error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
}

// wsReadWriter presents a websocket as a line based stream. Every frame
// read ends with a newline; every write becomes one text frame.
type wsReadWriter struct {
	ws  wsConn
	cur io.Reader
	eol bool
}

func newWSReadWriter(ws wsConn) io.ReadWriter {
	return &wsReadWriter{ws: ws}
}

func (c *wsReadWriter) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		if c.eol {
			c.eol = false
			p[0] = '\n'
			return 1, nil
		}
		if c.cur == nil {
			typ, r, err := c.ws.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			if typ != websocket.TextMessage {
				continue
			}
			c.cur = r
		}

		n, err := c.cur.Read(p)
		if errors.Is(err, io.EOF) {
			c.cur = nil
			c.eol = true
			err = nil
		}
		if n > 0 || err != nil {
			return n, err
		}
	}
}

func (c *wsReadWriter) Write(p []byte) (int, error) {
	if err := c.ws.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return 0, err
	}
	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
