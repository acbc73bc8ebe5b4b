// Package session keeps live games in memory. The engine itself is a pure
// value; a Session is the stateful caller that owns one "current" board,
// serializes writers, and retains prior snapshots as the undo stack.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/vancomm/minesweep/internal/board"
)

var (
	ErrNotFound  = errors.New("session not found")
	ErrNoHistory = errors.New("no moves to undo")
)

type Session struct {
	Id        string
	StartedAt time.Time

	mu      sync.Mutex
	endedAt time.Time
	board   board.Board
	history []board.Board
}

// Board returns the current snapshot. Snapshots are immutable, so the
// caller may keep reading it while other moves land.
func (s *Session) Board() board.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *Session) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

// Apply runs one move against the current board and, on success, installs
// the result, pushing the previous snapshot onto the undo stack. A finished
// game gets its end timestamp here.
func (s *Session) Apply(move func(board.Board) (board.Board, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := move(s.board)
	if err != nil {
		return err
	}
	s.history = append(s.history, s.board)
	s.board = next
	if s.endedAt.IsZero() && next.GameInfo().Status != board.StatusInProgress {
		s.endedAt = time.Now().UTC()
	}
	return nil
}

// Undo pops the most recent snapshot. Undoing past a game over reopens the
// game.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return ErrNoHistory
	}
	s.board = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if s.board.GameInfo().Status == board.StatusInProgress {
		s.endedAt = time.Time{}
	}
	return nil
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

func (r *Registry) Create(b board.Board) *Session {
	s := &Session{
		Id:        newId(),
		StartedAt: time.Now().UTC(),
		board:     b,
	}
	r.mu.Lock()
	r.sessions[s.Id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func newId() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
