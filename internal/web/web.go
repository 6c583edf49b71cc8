// Package web serves the landing page and the live scoreboard feed.
package web

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/fruitcatch/internal/loop/server"
)

//go:embed index.html
var htmlPage string

// SnapshotSource provides scoreboard snapshots. *server.Server implements it.
type SnapshotSource interface {
	GetSnapshot() *server.Snapshot
}

// Options configures the handler.
type Options struct {
	SSHHost  string         // Shown in the connect instructions
	Source   SnapshotSource // Nil disables /scores and /ws
	Interval time.Duration  // Scoreboard push interval, default 1s
	Logger   *log.Logger
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	// The feed is read-only public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type handler struct {
	page   string
	opts   Options
	logger *log.Logger
}

// NewHandler returns the routes: "/" landing page, "/scores" JSON and
// "/ws" websocket feed.
func NewHandler(opts Options) http.Handler {
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SSHHost == "" {
		opts.SSHHost = "your-server.com"
	}
	h := &handler{
		page:   strings.ReplaceAll(htmlPage, "{{.SSHHost}}", opts.SSHHost),
		opts:   opts,
		logger: opts.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.index)
	mux.HandleFunc("/scores", h.scores)
	mux.HandleFunc("/ws", h.ws)
	return mux
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(h.page))
}

func (h *handler) scores(w http.ResponseWriter, r *http.Request) {
	if h.opts.Source == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.opts.Source.GetSnapshot()); err != nil {
		h.logger.Warn("encode scores", "err", err)
	}
}

func (h *handler) ws(w http.ResponseWriter, r *http.Request) {
	if h.opts.Source == nil {
		http.NotFound(w, r)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade", "err", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(1 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader: the feed ignores client messages but must read to see close
	// frames and pongs.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := time.NewTicker(h.opts.Interval)
	defer push.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var last *server.Snapshot
	send := func() error {
		// The server only replaces its snapshot when something changed.
		snap := h.opts.Source.GetSnapshot()
		if snap == last {
			return nil
		}
		last = snap
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(snap)
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-push.C:
			if err := send(); err != nil {
				h.logger.Debug("websocket write", "err", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
