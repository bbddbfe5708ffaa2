package room

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

func joinN(t *testing.T, service *service, roomId string, n int) []*wsrouter.Conn {
	t.Helper()

	conns := make([]*wsrouter.Conn, 0, n)
	for i := 0; i < n; i++ {
		conn := newTestConn()
		_, err := service.JoinRoom(context.Background(), &JoinRoomParams{
			Conn:     conn,
			RoomId:   roomId,
			Username: fmt.Sprintf("user%d", i+1),
		})
		require.NoError(t, err)
		conns = append(conns, conn)
	}

	return conns
}

func TestVoteSkipQuorum(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	conns := joinN(t, service, "R1", 3)

	for _, id := range []string{"v1", "v2"} {
		_, err := service.AddVideo(ctx, &AddVideoParams{Conn: conns[0], VideoId: id, Title: id})
		require.NoError(t, err)
	}

	// 1 of 3: below quorum, progress only
	voteResp, err := service.CastVoteSkip(ctx, conns[0])
	require.NoError(t, err)
	assert.Equal(t, false, voteResp.Skipped)
	assert.Equal(t, []string{"user1"}, voteResp.Votes)
	assert.Equal(t, 3, voteResp.Total)
	assert.Len(t, voteResp.Conns, 3)

	// re-vote by the same user counts once but still reports progress
	voteResp, err = service.CastVoteSkip(ctx, conns[0])
	require.NoError(t, err)
	assert.Equal(t, false, voteResp.Skipped)
	assert.Equal(t, []string{"user1"}, voteResp.Votes)

	// 2 of 3 is a strict majority: resolve and advance
	voteResp, err = service.CastVoteSkip(ctx, conns[1])
	require.NoError(t, err)
	assert.Equal(t, true, voteResp.Skipped)
	assert.Empty(t, voteResp.Votes, "votes reset on resolution")
	assert.Equal(t, 3, voteResp.Total)
	require.NotNil(t, voteResp.Advanced)
	assert.Equal(t, "v1", voteResp.Advanced.VideoId)
	assert.Equal(t, "v1", voteResp.VideoState.VideoId)
	require.Len(t, voteResp.Playlist, 1)

	// resolution resets the state machine: the next vote starts from scratch
	voteResp, err = service.CastVoteSkip(ctx, conns[2])
	require.NoError(t, err)
	assert.Equal(t, false, voteResp.Skipped)
	assert.Equal(t, []string{"user3"}, voteResp.Votes)
}

func TestVoteSkipSingleConnection(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	conns := joinN(t, service, "R1", 1)
	_, err := service.AddVideo(ctx, &AddVideoParams{Conn: conns[0], VideoId: "v1", Title: "v1"})
	require.NoError(t, err)

	// 1 of 1 is already a strict majority
	voteResp, err := service.CastVoteSkip(ctx, conns[0])
	require.NoError(t, err)
	assert.Equal(t, true, voteResp.Skipped)
	assert.Equal(t, "v1", voteResp.VideoState.VideoId)
}

func TestVoteSkipTwoConnectionsNeedBoth(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	conns := joinN(t, service, "R1", 2)

	voteResp, err := service.CastVoteSkip(ctx, conns[0])
	require.NoError(t, err)
	assert.Equal(t, false, voteResp.Skipped, "1 of 2 is not a strict majority")

	voteResp, err = service.CastVoteSkip(ctx, conns[1])
	require.NoError(t, err)
	assert.Equal(t, true, voteResp.Skipped)
}

func TestVoteSkipEmptyPlaylist(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	conns := joinN(t, service, "R1", 1)

	_, err := service.ChangeVideo(ctx, &ChangeVideoParams{Conn: conns[0], VideoId: "current"})
	require.NoError(t, err)

	// the skip resolves even with nothing to skip to; the video is untouched
	voteResp, err := service.CastVoteSkip(ctx, conns[0])
	require.NoError(t, err)
	assert.Equal(t, true, voteResp.Skipped)
	assert.Nil(t, voteResp.Advanced)
	assert.Equal(t, "current", voteResp.VideoState.VideoId)
	assert.Empty(t, voteResp.Votes)
}

func TestVoteSkipSharedUsername(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	// two connections under one username: dedup keys on the username, so the
	// pair counts as a single vote
	alice1, alice2 := newTestConn(), newTestConn()
	_, err := service.JoinRoom(ctx, &JoinRoomParams{Conn: alice1, RoomId: "R1", Username: "alice"})
	require.NoError(t, err)
	_, err = service.JoinRoom(ctx, &JoinRoomParams{Conn: alice2, RoomId: "R1", Username: "alice"})
	require.NoError(t, err)
	bob := newTestConn()
	_, err = service.JoinRoom(ctx, &JoinRoomParams{Conn: bob, RoomId: "R1", Username: "bob"})
	require.NoError(t, err)

	voteResp, err := service.CastVoteSkip(ctx, alice1)
	require.NoError(t, err)
	assert.Equal(t, false, voteResp.Skipped)

	voteResp, err = service.CastVoteSkip(ctx, alice2)
	require.NoError(t, err)
	assert.Equal(t, false, voteResp.Skipped, "same username must count once")
	assert.Equal(t, []string{"alice"}, voteResp.Votes)

	voteResp, err = service.CastVoteSkip(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, true, voteResp.Skipped)
}
