// Package replaystore persists the replay.Frame chain a room's Recorder
// produces so a disconnected client (or an operator debugging a dispute)
// can rewind a room after the process that ran it has exited.
package replaystore

import (
	"context"

	"github.com/gorbit/orbitalrush/internal/replay"
)

// Store is the persistence boundary replay frames are written through.
// Implementations must make AppendFrame safe to call once per captured
// tick without the caller having to batch.
type Store interface {
	SaveKeyframe(ctx context.Context, roomId string, tick int64, canonical interface{}) error
	AppendFrame(ctx context.Context, roomId string, frame replay.Frame) error
	LoadKeyframe(ctx context.Context, roomId string) (interface{}, bool, error)
	LoadFrames(ctx context.Context, roomId string, fromTick int64) ([]replay.Frame, error)
	Close(ctx context.Context) error
}
