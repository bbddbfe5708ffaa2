package room

import (
	"context"
	"log/slog"
	"sync"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/internal/repository/connection"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

// room is the per-id aggregate. Its mutex is held for exactly one state
// transition at a time; nothing under it blocks on I/O.
type room struct {
	id string

	mu         sync.Mutex
	video      domain.VideoState
	chat       []domain.ChatMessage
	playlist   []domain.PlaylistEntry
	voteActive bool
	votes      map[string]struct{}
	conns      map[*wsrouter.Conn]string
}

func newRoom(id string) *room {
	return &room{
		id:       id,
		video:    domain.NewVideoState(),
		chat:     []domain.ChatMessage{},
		playlist: []domain.PlaylistEntry{},
		votes:    make(map[string]struct{}),
		conns:    make(map[*wsrouter.Conn]string),
	}
}

// connsSnapshot must be called with r.mu held.
func (r *room) connsSnapshot(exclude *wsrouter.Conn) []*wsrouter.Conn {
	conns := make([]*wsrouter.Conn, 0, len(r.conns))
	for conn := range r.conns {
		if conn == exclude {
			continue
		}
		conns = append(conns, conn)
	}

	return conns
}

// playlistSnapshot must be called with r.mu held.
func (r *room) playlistSnapshot() []domain.PlaylistEntry {
	return append([]domain.PlaylistEntry{}, r.playlist...)
}

type JoinRoomParams struct {
	Conn     *wsrouter.Conn
	RoomId   string
	Username string
}

type JoinRoomResponse struct {
	ChatHistory  []domain.ChatMessage
	VideoState   domain.VideoState
	Playlist     []domain.PlaylistEntry
	Participants int
	Username     string
	OthersConns  []*wsrouter.Conn
}

// JoinRoom binds the connection to the room, creating the room on first join.
// A connection that already joined a room stays where it is.
func (s *service) JoinRoom(ctx context.Context, params *JoinRoomParams) (JoinRoomResponse, error) {
	connectionId := s.generator.GenerateRandomString(12)
	if err := s.connRegistry.Add(params.Conn, connection.Session{
		Id:       connectionId,
		RoomId:   params.RoomId,
		Username: params.Username,
	}); err != nil {
		return JoinRoomResponse{}, ErrAlreadyJoined
	}

	// The store lock is held across membership changes so that a join can
	// never land in a room that a concurrent last-leave is destroying.
	s.mu.Lock()
	r, ok := s.rooms[params.RoomId]
	if !ok {
		r = newRoom(params.RoomId)
		s.rooms[params.RoomId] = r
		slog.InfoContext(ctx, "room created", "roomId", params.RoomId)
	}

	r.mu.Lock()
	r.conns[params.Conn] = params.Username
	resp := JoinRoomResponse{
		ChatHistory:  append([]domain.ChatMessage{}, r.chat...),
		VideoState:   r.video,
		Playlist:     r.playlistSnapshot(),
		Participants: len(r.conns),
		Username:     params.Username,
		OthersConns:  r.connsSnapshot(params.Conn),
	}
	r.mu.Unlock()
	s.mu.Unlock()

	slog.DebugContext(ctx, "connection joined room",
		"connectionId", connectionId,
		"roomId", params.RoomId,
		"username", params.Username,
		"participants", resp.Participants,
	)

	return resp, nil
}

type DisconnectResponse struct {
	RoomId        string
	Username      string
	Participants  int
	RoomDestroyed bool
	Conns         []*wsrouter.Conn
}

// Disconnect is the leave path, triggered by the connection closing. The room
// is destroyed synchronously when its last connection leaves.
func (s *service) Disconnect(ctx context.Context, conn *wsrouter.Conn) (DisconnectResponse, error) {
	session, err := s.connRegistry.RemoveByConn(conn)
	if err != nil {
		return DisconnectResponse{}, ErrNotJoined
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[session.RoomId]
	if !ok {
		return DisconnectResponse{}, ErrRoomNotFound
	}

	r.mu.Lock()
	delete(r.conns, conn)
	remaining := len(r.conns)
	conns := r.connsSnapshot(nil)
	r.mu.Unlock()

	if remaining == 0 {
		delete(s.rooms, session.RoomId)
		slog.InfoContext(ctx, "room destroyed", "roomId", session.RoomId)
	}

	return DisconnectResponse{
		RoomId:        session.RoomId,
		Username:      session.Username,
		Participants:  remaining,
		RoomDestroyed: remaining == 0,
		Conns:         conns,
	}, nil
}
