package room

import (
	"errors"
	"sync"

	"github.com/AlperDog/watch-party/internal/repository/connection"
	"github.com/AlperDog/watch-party/pkg/randstr"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotJoined     = errors.New("connection has not joined a room")
	ErrAlreadyJoined = errors.New("connection already joined a room")
)

type iConnRegistry interface {
	Add(*wsrouter.Conn, connection.Session) error
	Get(*wsrouter.Conn) (connection.Session, error)
	RemoveByConn(*wsrouter.Conn) (connection.Session, error)
	Len() int
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	ChatHistoryLimit int
	SystemUsername   string
}

type service struct {
	connRegistry     iConnRegistry
	generator        iGenerator
	chatHistoryLimit int
	systemUsername   string

	mu    sync.RWMutex
	rooms map[string]*room
}

func NewService(connRegistry iConnRegistry, cfg *Config) *service {
	s := service{
		connRegistry:     connRegistry,
		chatHistoryLimit: cfg.ChatHistoryLimit,
		systemUsername:   cfg.SystemUsername,
		rooms:            make(map[string]*room),
	}

	if s.chatHistoryLimit <= 0 {
		s.chatHistoryLimit = 100
	}
	if s.systemUsername == "" {
		s.systemUsername = "system"
	}

	letterBytes := []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	s.generator = randstr.New(letterBytes)

	return &s
}

// RoomCount backs the read-only status surface.
func (s *service) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rooms)
}

func (s *service) TotalConnections() int {
	return s.connRegistry.Len()
}

// withRoom resolves the sender's session and runs fn with the room lock held.
// fn must not block: it is a single serialized state transition.
func (s *service) withRoom(conn *wsrouter.Conn, fn func(r *room, username string)) error {
	session, err := s.connRegistry.Get(conn)
	if err != nil {
		return ErrNotJoined
	}

	s.mu.RLock()
	r, ok := s.rooms[session.RoomId]
	s.mu.RUnlock()
	if !ok {
		return ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	fn(r, session.Username)

	return nil
}
