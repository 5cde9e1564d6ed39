package listener

import (
	"context"
	"io"
	"log/slog"
)

// SessionRunner plays one connection from login to quit.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections, whatever their transport,
// to the player manager.
type ConnectionManager struct {
	sr SessionRunner
}

func NewConnectionManager(sr SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sr: sr,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	err := m.sr.RunSession(ctx, conn)
	if err != nil && ctx.Err() == nil {
		slog.WarnContext(ctx, "player session ended", "error", err)
	}
}
