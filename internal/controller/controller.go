package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/AlperDog/watch-party/internal/service/room"
	"github.com/AlperDog/watch-party/pkg/validator"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

type iRoomService interface {
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	Disconnect(context.Context, *wsrouter.Conn) (room.DisconnectResponse, error)
	SendChat(context.Context, *room.SendChatParams) (room.SendChatResponse, error)
	ChangeVideo(context.Context, *room.ChangeVideoParams) (room.VideoActionResponse, error)
	UpdatePlayback(context.Context, *room.UpdatePlaybackParams) (room.VideoActionResponse, error)
	SeekVideo(context.Context, *room.SeekVideoParams) (room.VideoActionResponse, error)
	SetVolume(context.Context, *room.SetVolumeParams) (room.VideoActionResponse, error)
	AddVideo(context.Context, *room.AddVideoParams) (room.PlaylistResponse, error)
	RemoveVideo(context.Context, *room.RemoveVideoParams) (room.PlaylistResponse, error)
	ReorderPlaylist(context.Context, *room.ReorderPlaylistParams) (room.PlaylistResponse, error)
	NextVideo(context.Context, *wsrouter.Conn) (room.NextVideoResponse, error)
	CastVoteSkip(context.Context, *wsrouter.Conn) (room.CastVoteSkipResponse, error)
	RoomCount() int
	TotalConnections() int
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger
}

func NewController(roomService iRoomService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService: roomService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
