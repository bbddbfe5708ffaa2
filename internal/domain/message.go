package domain

// Inbound message type tags.
const (
	MessageTypeJoin     = "join"
	MessageTypeChat     = "chat"
	MessageTypeVideo    = "video"
	MessageTypePlaylist = "playlist"
	MessageTypeVoteSkip = "vote-skip"
)

// Outbound-only message type tags.
const (
	MessageTypeInit       = "init"
	MessageTypeUserJoined = "user-joined"
	MessageTypeUserLeft   = "user-left"
)

type VideoAction string

const (
	VideoActionChangeVideo VideoAction = "changeVideo"
	VideoActionPlay        VideoAction = "play"
	VideoActionPause       VideoAction = "pause"
	VideoActionSeek        VideoAction = "seek"
	VideoActionVolume      VideoAction = "volume"
)

type PlaylistAction string

const (
	PlaylistActionAdd     PlaylistAction = "add"
	PlaylistActionRemove  PlaylistAction = "remove"
	PlaylistActionNext    PlaylistAction = "next"
	PlaylistActionReorder PlaylistAction = "reorder"

	// outbound only
	PlaylistActionUpdate PlaylistAction = "update"
)
