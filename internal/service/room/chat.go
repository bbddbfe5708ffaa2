package room

import (
	"context"
	"time"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

type SendChatParams struct {
	Conn    *wsrouter.Conn
	Message string
	// Timestamp is the client-supplied send time; nil means the server stamps
	// receipt time.
	Timestamp *time.Time
}

type SendChatResponse struct {
	Conns   []*wsrouter.Conn
	Message domain.ChatMessage
}

// SendChat appends to the room's bounded history and returns the message to
// broadcast to every connection, sender included.
func (s *service) SendChat(ctx context.Context, params *SendChatParams) (SendChatResponse, error) {
	timestamp := time.Now()
	if params.Timestamp != nil {
		timestamp = *params.Timestamp
	}

	var resp SendChatResponse
	err := s.withRoom(params.Conn, func(r *room, username string) {
		msg := domain.ChatMessage{
			Username:  username,
			Message:   params.Message,
			Timestamp: timestamp,
		}

		r.chat = append(r.chat, msg)
		if len(r.chat) > s.chatHistoryLimit {
			r.chat = append([]domain.ChatMessage{}, r.chat[len(r.chat)-s.chatHistoryLimit:]...)
		}

		resp = SendChatResponse{
			Conns:   r.connsSnapshot(nil),
			Message: msg,
		}
	})

	return resp, err
}
