package room

import (
	"context"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

// PlaylistResponse is the snapshot broadcast after every add/remove/reorder
// request. Out-of-bounds requests are no-ops but still re-broadcast the
// unchanged snapshot.
type PlaylistResponse struct {
	Conns    []*wsrouter.Conn
	Playlist []domain.PlaylistEntry
}

type AddVideoParams struct {
	Conn    *wsrouter.Conn
	VideoId string
	Title   string
}

func (s *service) AddVideo(ctx context.Context, params *AddVideoParams) (PlaylistResponse, error) {
	var resp PlaylistResponse
	err := s.withRoom(params.Conn, func(r *room, username string) {
		r.playlist = append(r.playlist, domain.PlaylistEntry{
			VideoId: params.VideoId,
			Title:   params.Title,
			AddedBy: username,
		})

		resp = PlaylistResponse{
			Conns:    r.connsSnapshot(nil),
			Playlist: r.playlistSnapshot(),
		}
	})

	return resp, err
}

type RemoveVideoParams struct {
	Conn  *wsrouter.Conn
	Index int
}

func (s *service) RemoveVideo(ctx context.Context, params *RemoveVideoParams) (PlaylistResponse, error) {
	var resp PlaylistResponse
	err := s.withRoom(params.Conn, func(r *room, _ string) {
		if params.Index >= 0 && params.Index < len(r.playlist) {
			r.playlist = append(r.playlist[:params.Index], r.playlist[params.Index+1:]...)
		}

		resp = PlaylistResponse{
			Conns:    r.connsSnapshot(nil),
			Playlist: r.playlistSnapshot(),
		}
	})

	return resp, err
}

type ReorderPlaylistParams struct {
	Conn        *wsrouter.Conn
	SourceIndex int
	DestIndex   int
}

// ReorderPlaylist moves one entry; the multiset of entries never changes.
func (s *service) ReorderPlaylist(ctx context.Context, params *ReorderPlaylistParams) (PlaylistResponse, error) {
	var resp PlaylistResponse
	err := s.withRoom(params.Conn, func(r *room, _ string) {
		src, dst := params.SourceIndex, params.DestIndex
		if src >= 0 && src < len(r.playlist) && dst >= 0 && dst < len(r.playlist) {
			entry := r.playlist[src]
			r.playlist = append(r.playlist[:src], r.playlist[src+1:]...)
			r.playlist = append(r.playlist[:dst], append([]domain.PlaylistEntry{entry}, r.playlist[dst:]...)...)
		}

		resp = PlaylistResponse{
			Conns:    r.connsSnapshot(nil),
			Playlist: r.playlistSnapshot(),
		}
	})

	return resp, err
}

type NextVideoResponse struct {
	Conns []*wsrouter.Conn
	// Advanced is nil when the playlist was empty; nothing is broadcast then.
	Advanced       *domain.PlaylistEntry
	VideoState     domain.VideoState
	Playlist       []domain.PlaylistEntry
	SystemUsername string
}

// NextVideo is the explicit skip-to-next request.
func (s *service) NextVideo(ctx context.Context, conn *wsrouter.Conn) (NextVideoResponse, error) {
	var resp NextVideoResponse
	err := s.withRoom(conn, func(r *room, _ string) {
		resp = NextVideoResponse{
			Conns:          r.connsSnapshot(nil),
			Advanced:       r.advance(),
			VideoState:     r.video,
			Playlist:       r.playlistSnapshot(),
			SystemUsername: s.systemUsername,
		}
	})

	return resp, err
}

// advance pops the head of the playlist and loads it as the current video.
// Must be called with r.mu held.
func (r *room) advance() *domain.PlaylistEntry {
	if len(r.playlist) == 0 {
		return nil
	}

	entry := r.playlist[0]
	r.playlist = append([]domain.PlaylistEntry{}, r.playlist[1:]...)

	r.video.VideoId = entry.VideoId
	r.video.IsPlaying = false
	r.video.CurrentTime = 0

	return &entry
}
