package room

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlperDog/watch-party/internal/domain"
)

func TestPlaylistAdd(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	alice := newTestConn()
	_, err := service.JoinRoom(ctx, &JoinRoomParams{Conn: alice, RoomId: "R1", Username: "alice"})
	require.NoError(t, err)

	addResp, err := service.AddVideo(ctx, &AddVideoParams{Conn: alice, VideoId: "v1", Title: "first"})
	require.NoError(t, err)
	require.Len(t, addResp.Playlist, 1)
	assert.Equal(t, domain.PlaylistEntry{VideoId: "v1", Title: "first", AddedBy: "alice"}, addResp.Playlist[0])

	// no deduplication
	addResp, err = service.AddVideo(ctx, &AddVideoParams{Conn: alice, VideoId: "v1", Title: "first"})
	require.NoError(t, err)
	assert.Len(t, addResp.Playlist, 2)
}

func TestPlaylistRemove(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	alice := newTestConn()
	_, err := service.JoinRoom(ctx, &JoinRoomParams{Conn: alice, RoomId: "R1", Username: "alice"})
	require.NoError(t, err)

	for _, id := range []string{"v1", "v2"} {
		_, err := service.AddVideo(ctx, &AddVideoParams{Conn: alice, VideoId: id, Title: id})
		require.NoError(t, err)
	}

	removeResp, err := service.RemoveVideo(ctx, &RemoveVideoParams{Conn: alice, Index: 0})
	require.NoError(t, err)
	require.Len(t, removeResp.Playlist, 1)
	assert.Equal(t, "v2", removeResp.Playlist[0].VideoId)

	// out-of-bounds removal is a no-op that still reports the snapshot
	before := removeResp.Playlist
	removeResp, err = service.RemoveVideo(ctx, &RemoveVideoParams{Conn: alice, Index: 5})
	require.NoError(t, err)
	assert.Equal(t, before, removeResp.Playlist)

	removeResp, err = service.RemoveVideo(ctx, &RemoveVideoParams{Conn: alice, Index: -1})
	require.NoError(t, err)
	assert.Equal(t, before, removeResp.Playlist)
}

func TestPlaylistReorder(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	alice := newTestConn()
	_, err := service.JoinRoom(ctx, &JoinRoomParams{Conn: alice, RoomId: "R1", Username: "alice"})
	require.NoError(t, err)

	for _, id := range []string{"v1", "v2", "v3"} {
		_, err := service.AddVideo(ctx, &AddVideoParams{Conn: alice, VideoId: id, Title: id})
		require.NoError(t, err)
	}

	reorderResp, err := service.ReorderPlaylist(ctx, &ReorderPlaylistParams{Conn: alice, SourceIndex: 0, DestIndex: 2})
	require.NoError(t, err)
	ids := make([]string, 0, len(reorderResp.Playlist))
	for _, entry := range reorderResp.Playlist {
		ids = append(ids, entry.VideoId)
	}
	assert.Equal(t, []string{"v2", "v3", "v1"}, ids)

	reorderResp, err = service.ReorderPlaylist(ctx, &ReorderPlaylistParams{Conn: alice, SourceIndex: 2, DestIndex: 0})
	require.NoError(t, err)
	ids = ids[:0]
	for _, entry := range reorderResp.Playlist {
		ids = append(ids, entry.VideoId)
	}
	assert.Equal(t, []string{"v1", "v2", "v3"}, ids)

	// out-of-bounds indices leave the playlist unchanged
	before := reorderResp.Playlist
	reorderResp, err = service.ReorderPlaylist(ctx, &ReorderPlaylistParams{Conn: alice, SourceIndex: 0, DestIndex: 3})
	require.NoError(t, err)
	assert.Equal(t, before, reorderResp.Playlist)

	reorderResp, err = service.ReorderPlaylist(ctx, &ReorderPlaylistParams{Conn: alice, SourceIndex: -1, DestIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, before, reorderResp.Playlist)
}

func TestPlaylistNext(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	alice := newTestConn()
	_, err := service.JoinRoom(ctx, &JoinRoomParams{Conn: alice, RoomId: "R1", Username: "alice"})
	require.NoError(t, err)

	// advancing an empty playlist does nothing
	nextResp, err := service.NextVideo(ctx, alice)
	require.NoError(t, err)
	assert.Nil(t, nextResp.Advanced)
	assert.Equal(t, "", nextResp.VideoState.VideoId)

	for _, id := range []string{"v1", "v2"} {
		_, err := service.AddVideo(ctx, &AddVideoParams{Conn: alice, VideoId: id, Title: id})
		require.NoError(t, err)
	}

	nextResp, err = service.NextVideo(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, nextResp.Advanced)
	assert.Equal(t, "v1", nextResp.Advanced.VideoId)
	assert.Equal(t, "v1", nextResp.VideoState.VideoId)
	assert.Equal(t, false, nextResp.VideoState.IsPlaying)
	assert.Equal(t, float64(0), nextResp.VideoState.CurrentTime)
	assert.Equal(t, "system", nextResp.SystemUsername)
	require.Len(t, nextResp.Playlist, 1)
	assert.Equal(t, "v2", nextResp.Playlist[0].VideoId)
}
