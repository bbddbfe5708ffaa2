package domain

import "time"

// Field names follow the wire format the client speaks, hence camelCase tags.

const DefaultVolume = 50

type VideoState struct {
	VideoId     string  `json:"videoId"`
	IsPlaying   bool    `json:"isPlaying"`
	CurrentTime float64 `json:"currentTime"`
	Volume      int     `json:"volume"`
}

// NewVideoState is the state of a room before any video is loaded.
func NewVideoState() VideoState {
	return VideoState{
		VideoId:     "",
		IsPlaying:   false,
		CurrentTime: 0,
		Volume:      DefaultVolume,
	}
}

type ChatMessage struct {
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type PlaylistEntry struct {
	VideoId string `json:"videoId"`
	Title   string `json:"title"`
	AddedBy string `json:"addedBy"`
}
