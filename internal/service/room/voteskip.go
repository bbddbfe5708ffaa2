package room

import (
	"context"
	"slices"

	"github.com/AlperDog/watch-party/internal/domain"
	"github.com/AlperDog/watch-party/pkg/wsrouter"
)

type CastVoteSkipResponse struct {
	Conns []*wsrouter.Conn
	// Votes lists the usernames that have voted so far; empty once resolved.
	Votes []string
	Total int
	// Skipped reports that the vote reached quorum and was resolved.
	Skipped bool
	// Advanced is the playlist entry loaded by the resolution, nil when the
	// playlist was empty (the skip still resolves, nothing changes video).
	Advanced       *domain.PlaylistEntry
	VideoState     domain.VideoState
	Playlist       []domain.PlaylistEntry
	SystemUsername string
}

// CastVoteSkip registers one vote by the sender's username. Re-votes are
// idempotent but still re-broadcast progress. Quorum is a strict majority of
// the room's current connection count; resolution resets the vote state and
// advances the playlist.
func (s *service) CastVoteSkip(ctx context.Context, conn *wsrouter.Conn) (CastVoteSkipResponse, error) {
	var resp CastVoteSkipResponse
	err := s.withRoom(conn, func(r *room, username string) {
		r.voteActive = true
		r.votes[username] = struct{}{}

		total := len(r.conns)
		if 2*len(r.votes) > total {
			r.voteActive = false
			r.votes = make(map[string]struct{})

			resp = CastVoteSkipResponse{
				Conns:          r.connsSnapshot(nil),
				Votes:          []string{},
				Total:          total,
				Skipped:        true,
				Advanced:       r.advance(),
				VideoState:     r.video,
				Playlist:       r.playlistSnapshot(),
				SystemUsername: s.systemUsername,
			}
			return
		}

		votes := make([]string, 0, len(r.votes))
		for voter := range r.votes {
			votes = append(votes, voter)
		}
		slices.Sort(votes)

		resp = CastVoteSkipResponse{
			Conns: r.connsSnapshot(nil),
			Votes: votes,
			Total: total,
		}
	})

	return resp, err
}
