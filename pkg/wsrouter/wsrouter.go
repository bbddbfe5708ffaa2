package wsrouter

import (
	"context"
	"encoding/json"
	"log/slog"
)

type envelope struct {
	Type string `json:"type"`
}

// HandlerFunc receives the full raw frame, not just a payload field: the
// protocol keeps most fields at the top level of the message.
type HandlerFunc func(ctx context.Context, conn *Conn, raw json.RawMessage) error

type WSRouter struct {
	routes map[string]HandlerFunc
	logger *slog.Logger
}

func New(logger *slog.Logger) *WSRouter {
	return &WSRouter{
		routes: make(map[string]HandlerFunc),
		logger: logger,
	}
}

func (r *WSRouter) Handle(messageType string, handler HandlerFunc) {
	r.routes[messageType] = handler
}

// ServeConn reads frames until the connection errors out and dispatches them
// by their type tag. Malformed frames and unknown types are dropped without
// a reply.
func (r *WSRouter) ServeConn(ctx context.Context, conn *Conn) error {
	defer conn.Close()

	for {
		raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			r.logger.DebugContext(ctx, "dropping malformed frame", "error", err)
			continue
		}

		handler, exists := r.routes[env.Type]
		if !exists {
			r.logger.DebugContext(ctx, "dropping frame of unknown type", "type", env.Type)
			continue
		}

		if err := handler(ctx, conn, raw); err != nil {
			r.logger.DebugContext(ctx, "handler error", "type", env.Type, "error", err)
		}
	}
}
