package controller

import (
	"encoding/json"
	"net/http"
)

type statusResponse struct {
	Rooms       int `json:"rooms"`
	Connections int `json:"connections"`
}

func (c *controller) status(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(statusResponse{
		Rooms:       c.roomService.RoomCount(),
		Connections: c.roomService.TotalConnections(),
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write status", "error", err)
	}
}
