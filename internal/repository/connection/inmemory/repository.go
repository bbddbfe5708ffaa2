package inmemory

import (
	"log/slog"
	"sync"

	"github.com/AlperDog/watch-party/internal/repository/connection"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

type repo struct {
	sessions map[*wsrouter.Conn]connection.Session
	mu       sync.RWMutex
}

func NewRepo() *repo {
	return &repo{
		sessions: make(map[*wsrouter.Conn]connection.Session),
	}
}

func (r *repo) Add(conn *wsrouter.Conn, session connection.Session) error {
	funcName := "connection.inmemory.Add"
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[conn]; ok {
		slog.Debug(funcName, "error", connection.ErrAlreadyExists)
		return connection.ErrAlreadyExists
	}

	r.sessions[conn] = session

	slog.Debug(funcName, "connectionId", session.Id, "roomId", session.RoomId)
	return nil
}

func (r *repo) Get(conn *wsrouter.Conn) (connection.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[conn]
	if !ok {
		return connection.Session{}, connection.ErrNotFound
	}

	return session, nil
}

func (r *repo) RemoveByConn(conn *wsrouter.Conn) (connection.Session, error) {
	funcName := "connection.inmemory.RemoveByConn"
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[conn]
	if !ok {
		slog.Debug(funcName, "error", connection.ErrNotFound)
		return connection.Session{}, connection.ErrNotFound
	}

	delete(r.sessions, conn)

	slog.Debug(funcName, "connectionId", session.Id, "roomId", session.RoomId)
	return session, nil
}

func (r *repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
