package inmemory

import (
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlperDog/watch-party/internal/repository/connection"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

func TestRepo(t *testing.T) {
	repo := NewRepo()

	conn := wsrouter.NewConn(&websocket.Conn{})
	session := connection.Session{Id: "c1", RoomId: "R1", Username: "alice"}

	_, err := repo.Get(conn)
	assert.ErrorIs(t, err, connection.ErrNotFound)

	require.NoError(t, repo.Add(conn, session))
	assert.Equal(t, 1, repo.Len())

	got, err := repo.Get(conn)
	require.NoError(t, err)
	assert.Equal(t, session, got)

	// a connection binds at most once
	err = repo.Add(conn, connection.Session{Id: "c2", RoomId: "R2", Username: "alice"})
	assert.ErrorIs(t, err, connection.ErrAlreadyExists)
	got, err = repo.Get(conn)
	require.NoError(t, err)
	assert.Equal(t, "R1", got.RoomId, "rebinding must not overwrite the session")

	removed, err := repo.RemoveByConn(conn)
	require.NoError(t, err)
	assert.Equal(t, session, removed)
	assert.Equal(t, 0, repo.Len())

	_, err = repo.RemoveByConn(conn)
	assert.ErrorIs(t, err, connection.ErrNotFound)
}
