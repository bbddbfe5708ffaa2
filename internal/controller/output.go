package controller

import (
	"context"
	"time"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

// Outbound frames. The protocol keeps fields at the top level next to the
// type tag, so each frame gets its own struct instead of a generic envelope.

type initOutput struct {
	Type         string                 `json:"type"`
	ChatHistory  []domain.ChatMessage   `json:"chatHistory"`
	VideoState   domain.VideoState      `json:"videoState"`
	Playlist     []domain.PlaylistEntry `json:"playlist"`
	Participants int                    `json:"participants"`
}

type presenceOutput struct {
	Type         string `json:"type"`
	Username     string `json:"username"`
	Participants int    `json:"participants"`
}

type chatOutput struct {
	Type      string    `json:"type"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type videoOutput struct {
	Type      string             `json:"type"`
	Action    domain.VideoAction `json:"action"`
	Payload   any                `json:"payload"`
	Username  string             `json:"username"`
	Timestamp time.Time          `json:"timestamp"`
}

type playlistOutput struct {
	Type     string                 `json:"type"`
	Action   domain.PlaylistAction  `json:"action"`
	Playlist []domain.PlaylistEntry `json:"playlist"`
}

type voteSkipOutput struct {
	Type    string   `json:"type"`
	Votes   []string `json:"votes"`
	Total   int      `json:"total"`
	Skipped bool     `json:"skipped,omitempty"`
}

// broadcast fans a frame out to the given connections. Delivery failures are
// isolated per connection: one closing peer never blocks the rest or fails
// the operation that triggered the broadcast.
func (c *controller) broadcast(ctx context.Context, conns []*wsrouter.Conn, out any) {
	for _, conn := range conns {
		if err := conn.WriteJSON(out); err != nil {
			c.logger.DebugContext(ctx, "failed to deliver broadcast", "error", err)
		}
	}
}
