package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/internal/service/room"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

func (c *controller) serveWS(w http.ResponseWriter, r *http.Request) {
	ws, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	conn := wsrouter.NewConn(ws)
	defer c.disconnect(r.Context(), conn)

	if err := c.wsmux.ServeConn(r.Context(), conn); err != nil {
		c.logger.DebugContext(r.Context(), "connection closed", "error", err)
	}
}

// disconnect runs the leave path once the read loop returns. The connection
// may never have joined a room; that is not an error.
func (c *controller) disconnect(ctx context.Context, conn *wsrouter.Conn) {
	resp, err := c.roomService.Disconnect(ctx, conn)
	if err != nil {
		if !errors.Is(err, room.ErrNotJoined) {
			c.logger.WarnContext(ctx, "failed to disconnect", "error", err)
		}
		return
	}

	if resp.RoomDestroyed {
		return
	}

	c.broadcast(ctx, resp.Conns, &presenceOutput{
		Type:         domain.MessageTypeUserLeft,
		Username:     resp.Username,
		Participants: resp.Participants,
	})
}

type JoinInput struct {
	RoomId   string `json:"roomId" validate:"required,max=64"`
	Username string `json:"username" validate:"required,max=32"`
}

func (c *controller) handleJoin(ctx context.Context, conn *wsrouter.Conn, raw json.RawMessage) error {
	var input JoinInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("failed to parse join: %w", err)
	}
	if err := c.validate.Validate(input); err != nil {
		return fmt.Errorf("invalid join: %w", err)
	}

	joinRoomResp, err := c.roomService.JoinRoom(ctx, &room.JoinRoomParams{
		Conn:     conn,
		RoomId:   input.RoomId,
		Username: input.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	if err := conn.WriteJSON(&initOutput{
		Type:         domain.MessageTypeInit,
		ChatHistory:  joinRoomResp.ChatHistory,
		VideoState:   joinRoomResp.VideoState,
		Playlist:     joinRoomResp.Playlist,
		Participants: joinRoomResp.Participants,
	}); err != nil {
		return fmt.Errorf("failed to write init: %w", err)
	}

	c.broadcast(ctx, joinRoomResp.OthersConns, &presenceOutput{
		Type:         domain.MessageTypeUserJoined,
		Username:     joinRoomResp.Username,
		Participants: joinRoomResp.Participants,
	})

	return nil
}

type ChatInput struct {
	Message   string     `json:"message"`
	Timestamp *time.Time `json:"timestamp"`
}

func (c *controller) handleChat(ctx context.Context, conn *wsrouter.Conn, raw json.RawMessage) error {
	var input ChatInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("failed to parse chat: %w", err)
	}

	sendChatResp, err := c.roomService.SendChat(ctx, &room.SendChatParams{
		Conn:      conn,
		Message:   input.Message,
		Timestamp: input.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to send chat: %w", err)
	}

	c.broadcast(ctx, sendChatResp.Conns, &chatOutput{
		Type:      domain.MessageTypeChat,
		Username:  sendChatResp.Message.Username,
		Message:   sendChatResp.Message.Message,
		Timestamp: sendChatResp.Message.Timestamp,
	})

	return nil
}

type VideoInput struct {
	Action  domain.VideoAction `json:"action"`
	Payload json.RawMessage    `json:"payload"`
}

type changeVideoPayload struct {
	VideoId string `json:"videoId"`
}

type playbackPayload struct {
	CurrentTime float64 `json:"currentTime"`
}

type seekPayload struct {
	Time float64 `json:"time"`
}

type volumePayload struct {
	Volume int `json:"volume"`
}

func (c *controller) handleVideo(ctx context.Context, conn *wsrouter.Conn, raw json.RawMessage) error {
	var input VideoInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("failed to parse video: %w", err)
	}

	var (
		resp    room.VideoActionResponse
		payload any
		err     error
	)

	switch input.Action {
	case domain.VideoActionChangeVideo:
		var p changeVideoPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse changeVideo payload: %w", err)
		}
		resp, err = c.roomService.ChangeVideo(ctx, &room.ChangeVideoParams{Conn: conn, VideoId: p.VideoId})
		payload = changeVideoPayload{VideoId: resp.VideoState.VideoId}
	case domain.VideoActionPlay, domain.VideoActionPause:
		var p playbackPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse playback payload: %w", err)
		}
		resp, err = c.roomService.UpdatePlayback(ctx, &room.UpdatePlaybackParams{
			Conn:        conn,
			IsPlaying:   input.Action == domain.VideoActionPlay,
			CurrentTime: p.CurrentTime,
		})
		payload = playbackPayload{CurrentTime: resp.VideoState.CurrentTime}
	case domain.VideoActionSeek:
		var p seekPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse seek payload: %w", err)
		}
		resp, err = c.roomService.SeekVideo(ctx, &room.SeekVideoParams{Conn: conn, Time: p.Time})
		payload = seekPayload{Time: resp.VideoState.CurrentTime}
	case domain.VideoActionVolume:
		var p volumePayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse volume payload: %w", err)
		}
		resp, err = c.roomService.SetVolume(ctx, &room.SetVolumeParams{Conn: conn, Volume: p.Volume})
		payload = volumePayload{Volume: resp.VideoState.Volume}
	default:
		// unknown actions are ignored: no state change, no broadcast
		c.logger.DebugContext(ctx, "ignoring unknown video action", "action", input.Action)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply video action %q: %w", input.Action, err)
	}

	c.broadcast(ctx, resp.Conns, &videoOutput{
		Type:      domain.MessageTypeVideo,
		Action:    input.Action,
		Payload:   payload,
		Username:  resp.Username,
		Timestamp: time.Now(),
	})

	return nil
}

type PlaylistInput struct {
	Action  domain.PlaylistAction `json:"action"`
	Payload json.RawMessage       `json:"payload"`
}

type addEntryPayload struct {
	VideoId string `json:"videoId"`
	Title   string `json:"title"`
}

type removeEntryPayload struct {
	Index int `json:"index"`
}

type reorderPayload struct {
	SourceIndex int `json:"sourceIndex"`
	DestIndex   int `json:"destIndex"`
}

func (c *controller) handlePlaylist(ctx context.Context, conn *wsrouter.Conn, raw json.RawMessage) error {
	var input PlaylistInput
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("failed to parse playlist: %w", err)
	}

	var (
		resp room.PlaylistResponse
		err  error
	)

	switch input.Action {
	case domain.PlaylistActionAdd:
		var p addEntryPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse add payload: %w", err)
		}
		resp, err = c.roomService.AddVideo(ctx, &room.AddVideoParams{Conn: conn, VideoId: p.VideoId, Title: p.Title})
	case domain.PlaylistActionRemove:
		var p removeEntryPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse remove payload: %w", err)
		}
		resp, err = c.roomService.RemoveVideo(ctx, &room.RemoveVideoParams{Conn: conn, Index: p.Index})
	case domain.PlaylistActionReorder:
		var p reorderPayload
		if err := json.Unmarshal(input.Payload, &p); err != nil {
			return fmt.Errorf("failed to parse reorder payload: %w", err)
		}
		resp, err = c.roomService.ReorderPlaylist(ctx, &room.ReorderPlaylistParams{
			Conn:        conn,
			SourceIndex: p.SourceIndex,
			DestIndex:   p.DestIndex,
		})
	case domain.PlaylistActionNext:
		nextResp, err := c.roomService.NextVideo(ctx, conn)
		if err != nil {
			return fmt.Errorf("failed to advance playlist: %w", err)
		}
		c.broadcastAdvance(ctx, nextResp.Conns, nextResp.Advanced, nextResp.Playlist, nextResp.SystemUsername)
		return nil
	default:
		c.logger.DebugContext(ctx, "ignoring unknown playlist action", "action", input.Action)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply playlist action %q: %w", input.Action, err)
	}

	c.broadcast(ctx, resp.Conns, &playlistOutput{
		Type:     domain.MessageTypePlaylist,
		Action:   domain.PlaylistActionUpdate,
		Playlist: resp.Playlist,
	})

	return nil
}

func (c *controller) handleVoteSkip(ctx context.Context, conn *wsrouter.Conn, _ json.RawMessage) error {
	voteResp, err := c.roomService.CastVoteSkip(ctx, conn)
	if err != nil {
		return fmt.Errorf("failed to cast vote-skip: %w", err)
	}

	if voteResp.Skipped {
		c.broadcastAdvance(ctx, voteResp.Conns, voteResp.Advanced, voteResp.Playlist, voteResp.SystemUsername)
	}

	c.broadcast(ctx, voteResp.Conns, &voteSkipOutput{
		Type:    domain.MessageTypeVoteSkip,
		Votes:   voteResp.Votes,
		Total:   voteResp.Total,
		Skipped: voteResp.Skipped,
	})

	return nil
}

// broadcastAdvance emits the changeVideo frame attributed to the system actor
// followed by the new playlist snapshot. A nil entry means the playlist was
// empty and nothing is broadcast.
func (c *controller) broadcastAdvance(ctx context.Context, conns []*wsrouter.Conn, advanced *domain.PlaylistEntry, playlist []domain.PlaylistEntry, systemUsername string) {
	if advanced == nil {
		return
	}

	c.broadcast(ctx, conns, &videoOutput{
		Type:      domain.MessageTypeVideo,
		Action:    domain.VideoActionChangeVideo,
		Payload:   changeVideoPayload{VideoId: advanced.VideoId},
		Username:  systemUsername,
		Timestamp: time.Now(),
	})
	c.broadcast(ctx, conns, &playlistOutput{
		Type:     domain.MessageTypePlaylist,
		Action:   domain.PlaylistActionUpdate,
		Playlist: playlist,
	})
}
