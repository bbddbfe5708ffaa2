package room

import (
	"context"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

// VideoActionResponse carries the new canonical state and the fan-out set.
// Broadcasts include the originator: non-authoring clients reconcile to the
// broadcast state, the author ignores its own echo.
type VideoActionResponse struct {
	Conns      []*wsrouter.Conn
	Username   string
	VideoState domain.VideoState
}

type ChangeVideoParams struct {
	Conn    *wsrouter.Conn
	VideoId string
}

func (s *service) ChangeVideo(ctx context.Context, params *ChangeVideoParams) (VideoActionResponse, error) {
	var resp VideoActionResponse
	err := s.withRoom(params.Conn, func(r *room, username string) {
		r.video.VideoId = params.VideoId
		r.video.IsPlaying = false
		r.video.CurrentTime = 0

		resp = VideoActionResponse{
			Conns:      r.connsSnapshot(nil),
			Username:   username,
			VideoState: r.video,
		}
	})

	return resp, err
}

type UpdatePlaybackParams struct {
	Conn        *wsrouter.Conn
	IsPlaying   bool
	CurrentTime float64
}

// UpdatePlayback handles both play and pause: the action only differs in the
// target isPlaying value.
func (s *service) UpdatePlayback(ctx context.Context, params *UpdatePlaybackParams) (VideoActionResponse, error) {
	var resp VideoActionResponse
	err := s.withRoom(params.Conn, func(r *room, username string) {
		r.video.IsPlaying = params.IsPlaying
		r.video.CurrentTime = clampTime(params.CurrentTime)

		resp = VideoActionResponse{
			Conns:      r.connsSnapshot(nil),
			Username:   username,
			VideoState: r.video,
		}
	})

	return resp, err
}

type SeekVideoParams struct {
	Conn *wsrouter.Conn
	Time float64
}

func (s *service) SeekVideo(ctx context.Context, params *SeekVideoParams) (VideoActionResponse, error) {
	var resp VideoActionResponse
	err := s.withRoom(params.Conn, func(r *room, username string) {
		r.video.CurrentTime = clampTime(params.Time)

		resp = VideoActionResponse{
			Conns:      r.connsSnapshot(nil),
			Username:   username,
			VideoState: r.video,
		}
	})

	return resp, err
}

type SetVolumeParams struct {
	Conn   *wsrouter.Conn
	Volume int
}

func (s *service) SetVolume(ctx context.Context, params *SetVolumeParams) (VideoActionResponse, error) {
	var resp VideoActionResponse
	err := s.withRoom(params.Conn, func(r *room, username string) {
		r.video.Volume = clampVolume(params.Volume)

		resp = VideoActionResponse{
			Conns:      r.connsSnapshot(nil),
			Username:   username,
			VideoState: r.video,
		}
	})

	return resp, err
}

func clampTime(t float64) float64 {
	if t < 0 {
		return 0
	}

	return t
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}

	return v
}
