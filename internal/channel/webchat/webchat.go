package webchat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shivamsuchak/q-revised/internal/channel"
)

// Adapter serves a websocket chat endpoint on its own port.
type Adapter struct {
	port     int
	logger   *slog.Logger
	incoming chan *channel.Message
	upgrader websocket.Upgrader
	server   *http.Server

	connMux sync.RWMutex
	conns   map[string]*websocket.Conn
}

// wsMessage is the wire format exchanged with browser clients.
type wsMessage struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	UserID  string `json:"user_id,omitempty"`
}

// New creates a web chat adapter. A non-positive port leaves it disabled.
func New(port int, logger *slog.Logger) *Adapter {
	return &Adapter{
		port:     port,
		logger:   logger,
		incoming: make(chan *channel.Message, 100),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[string]*websocket.Conn),
	}
}

func (w *Adapter) Name() string {
	return "webchat"
}

func (w *Adapter) IsEnabled() bool {
	return w.port > 0
}

func (w *Adapter) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", w.wsHandler)
	w.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", w.port),
		Handler: mux,
	}

	go func() {
		if err := w.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			w.logger.Error("Web chat server failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		w.server.Shutdown(context.Background())
	}()
	return nil
}

func (w *Adapter) Stop() error {
	var err error
	if w.server != nil {
		err = w.server.Shutdown(context.Background())
	}
	close(w.incoming)
	return err
}

func (w *Adapter) SendMessage(userID string, resp *channel.Response) error {
	w.connMux.RLock()
	conn, ok := w.conns[userID]
	w.connMux.RUnlock()
	if !ok {
		return nil
	}

	data, err := json.Marshal(wsMessage{Type: "message", Content: resp.Content})
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (w *Adapter) Incoming() <-chan *channel.Message {
	return w.incoming
}

func (w *Adapter) wsHandler(rw http.ResponseWriter, r *http.Request) {
	conn, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		w.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "anonymous_" + strconv.FormatInt(time.Now().UnixNano(), 10)
	}

	w.connMux.Lock()
	w.conns[userID] = conn
	w.connMux.Unlock()

	defer func() {
		w.connMux.Lock()
		delete(w.conns, userID)
		w.connMux.Unlock()
		conn.Close()
	}()

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != "message" {
			continue
		}

		w.incoming <- &channel.Message{
			ID:        strconv.FormatInt(time.Now().UnixNano(), 10),
			Channel:   w.Name(),
			UserID:    userID,
			Content:   msg.Content,
			Metadata:  map[string]string{"connection_id": userID},
			Timestamp: time.Now().Unix(),
		}
	}
}
