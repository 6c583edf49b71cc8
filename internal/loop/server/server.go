// Package server runs the shared scoreboard. Each connected client plays
// its own session; the server only collects live status and finished scores
// and publishes them as snapshots.
package server

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/fruitcatch/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the scoreboard.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendStatus(clientID int, status Status)
	SubmitScore(clientID int, score int, difficulty string)
	GetSnapshot() *Snapshot
}

// Server collects status and scores from all clients.
type Server struct {
	board        *Leaderboard
	snapshot     atomic.Pointer[Snapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	sessions     uint64
	statusCh     chan ClientStatus
	scoreCh      chan ClientScore
	registerCh   chan *ClientHandle
	unregisterCh chan int
	dirty        bool // Snapshot is stale; only touched by the Run goroutine
	logger       *log.Logger
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string // Display name for this client
	Status   Status
	EventsCh chan ClientEvent // Events sent to client (shutdown, records)
}

// Status is what a client reports about its session each frame.
type Status struct {
	Phase      string
	Score      int
	Difficulty string
}

// ClientStatus is a status update from a specific client.
type ClientStatus struct {
	ClientID int
	Status   Status
}

// ClientScore is a finished round from a specific client.
type ClientScore struct {
	ClientID   int
	Score      int
	Difficulty string
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	Rank int // For EventNewRecord, 1-based
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventNewRecord ClientEventType = iota
	EventServerShutdown
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for score and connection messages.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewServer creates a new scoreboard server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		board:        NewLeaderboard(config.TopScoresShown),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		statusCh:     make(chan ClientStatus, 256),
		scoreCh:      make(chan ClientScore, 64),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		logger:       log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Create initial empty snapshot
	s.snapshot.Store(&Snapshot{TopScores: []ScoreEntry{}, Players: []PlayerEntry{}})

	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		s.step()
	}
}

// step drains all pending messages and publishes a new snapshot if
// anything changed. Scores are collected before unregistrations, since a
// client submits its last round right before it leaves.
func (s *Server) step() {
	s.processRegistrations()
	s.collectStatus()
	s.collectScores()
	s.processUnregistrations()
	if s.dirty {
		s.createSnapshot()
		s.dirty = false
	}
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendStatus reports a client's live status. Dropped if the server is behind.
func (s *Server) SendStatus(clientID int, status Status) {
	select {
	case s.statusCh <- ClientStatus{ClientID: clientID, Status: status}:
	default:
		// Status channel full, the next frame sends a fresh one
	}
}

// SubmitScore records a finished round.
func (s *Server) SubmitScore(clientID int, score int, difficulty string) {
	select {
	case s.scoreCh <- ClientScore{ClientID: clientID, Score: score, Difficulty: difficulty}:
	default:
		s.logger.Warn("score dropped, server busy", "client", clientID, "score", score)
	}
}

// GetSnapshot returns the current scoreboard snapshot.
func (s *Server) GetSnapshot() *Snapshot {
	return s.snapshot.Load()
}

// processRegistrations adds pending clients.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.dirty = true
			s.logger.Debug("client registered", "id", handle.ID, "user", handle.Username)
		default:
			return
		}
	}
}

// processUnregistrations removes clients that left and closes their events.
func (s *Server) processUnregistrations() {
	for {
		select {
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.dirty = true
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectStatus gathers all pending status updates from clients.
func (s *Server) collectStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case cs := <-s.statusCh:
			if handle, ok := s.clients[cs.ClientID]; ok && handle.Status != cs.Status {
				handle.Status = cs.Status
				s.dirty = true
			}
		default:
			return
		}
	}
}

// collectScores puts finished rounds on the leaderboard and tells clients
// that made it.
func (s *Server) collectScores() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case sc := <-s.scoreCh:
			s.sessions++
			s.dirty = true
			handle, ok := s.clients[sc.ClientID]
			if !ok {
				continue
			}
			entry := ScoreEntry{
				Username:   handle.Username,
				Score:      sc.Score,
				Difficulty: sc.Difficulty,
				At:         time.Now(),
			}
			if !s.board.Submit(entry) {
				continue
			}
			rank := s.rankOf(entry)
			s.logger.Info("new high score", "user", handle.Username, "score", sc.Score, "rank", rank)
			select {
			case handle.EventsCh <- ClientEvent{Type: EventNewRecord, Rank: rank}:
			default:
			}
		default:
			return
		}
	}
}

func (s *Server) rankOf(e ScoreEntry) int {
	for i, other := range s.board.entries {
		if other.Username == e.Username && other.Score == e.Score && other.At.Equal(e.At) {
			return i + 1
		}
	}
	return 0
}

// createSnapshot creates an immutable snapshot of the scoreboard.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]PlayerEntry, 0, len(s.clients))
	for _, handle := range s.clients {
		players = append(players, PlayerEntry{
			Username:   handle.Username,
			Phase:      handle.Status.Phase,
			Score:      handle.Status.Score,
			Difficulty: handle.Status.Difficulty,
		})
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].Username < players[j].Username
	})

	s.snapshot.Store(&Snapshot{
		TopScores: s.board.Entries(),
		Players:   players,
		Sessions:  s.sessions,
	})
}
