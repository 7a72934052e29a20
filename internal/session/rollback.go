package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorbit/orbitalrush/internal/replay"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// Snapshot is one captured point in a room's history: the tick it was
// captured at and the wall-clock time of the capture. It carries no state;
// the state at that tick is reconstructed by rewinding the frame chain
// rather than stored as a full GameState copy.
type Snapshot struct {
	Tick int64
	Time time.Time
}

// RollbackHook is an interface for components that need to react to rollback events.
type RollbackHook interface {
	// BeforeSnapshot is called before a snapshot is taken.
	// This allows hooks to prepare for snapshot capture.
	BeforeSnapshot(snapshot *Snapshot)

	// AfterRestore is called after a snapshot is restored.
	// This allows hooks to react to state restoration.
	AfterRestore(snapshot *Snapshot)
}

// SnapshotManager manages a room's rewind history using internal/replay's
// diff-based frame chain instead of a full GameState copy per captured
// tick: one keyframe plus a sequence of patches is enough to reconstruct
// any captured tick on demand, at a fraction of the memory a snapshot-per-
// tick approach costs over a long-running room.
type SnapshotManager struct {
	recorder     *replay.Recorder
	keyframe     interface{}
	keyframeTick int64
	frames       []replay.Frame
	hooks        []RollbackHook
}

// NewSnapshotManager seeds a manager with initial as the keyframe at tick
// 0; CaptureSnapshot records every subsequent tick as a diff against the
// state captured before it.
func NewSnapshotManager(initial entities.GameState) (*SnapshotManager, error) {
	recorder, keyframe, err := replay.NewRecorder(initial)
	if err != nil {
		return nil, fmt.Errorf("session: seed snapshot manager: %w", err)
	}
	return &SnapshotManager{
		recorder: recorder,
		keyframe: keyframe,
		hooks:    make([]RollbackHook, 0),
	}, nil
}

// RegisterHook registers a rollback hook that will be called during snapshot operations.
func (sm *SnapshotManager) RegisterHook(hook RollbackHook) {
	sm.hooks = append(sm.hooks, hook)
}

// CaptureSnapshot diffs state against the previously captured state (the
// keyframe, for the first capture) and appends the resulting frame to the
// rewind chain.
func (sm *SnapshotManager) CaptureSnapshot(state entities.GameState, tick int64, clock Clock) (*Snapshot, error) {
	snapshot := &Snapshot{Tick: tick, Time: clock.Now()}

	for _, hook := range sm.hooks {
		hook.BeforeSnapshot(snapshot)
	}

	frame, err := sm.recorder.Capture(tick, state)
	if err != nil {
		return nil, fmt.Errorf("session: capture snapshot at tick %d: %w", tick, err)
	}
	sm.frames = append(sm.frames, frame)

	return snapshot, nil
}

// RestoreSnapshot rewinds the frame chain to the snapshot's tick and
// decodes the resulting canonical value back into a GameState.
func (sm *SnapshotManager) RestoreSnapshot(snapshot *Snapshot) (entities.GameState, error) {
	state, err := sm.GetStateAt(snapshot.Tick)
	if err != nil {
		return entities.GameState{}, err
	}

	for _, hook := range sm.hooks {
		hook.AfterRestore(snapshot)
	}

	return state, nil
}

// GetStateAt reconstructs the GameState at targetTick by rewinding the
// keyframe forward through every captured frame up to and including it.
func (sm *SnapshotManager) GetStateAt(targetTick int64) (entities.GameState, error) {
	canon, err := replay.RewindTo(sm.keyframe, sm.frames, targetTick)
	if err != nil {
		return entities.GameState{}, fmt.Errorf("session: rewind to tick %d: %w", targetTick, err)
	}
	return decodeGameState(canon)
}

// ClearSnapshots drops every captured frame and re-seeds the keyframe from
// current, so rewinding can no longer reach ticks before it.
func (sm *SnapshotManager) ClearSnapshots(current entities.GameState) error {
	recorder, keyframe, err := replay.NewRecorder(current)
	if err != nil {
		return fmt.Errorf("session: reseed snapshot manager: %w", err)
	}
	sm.recorder = recorder
	sm.keyframe = keyframe
	sm.frames = nil
	return nil
}

// decodeGameState round-trips a canonical JSON value tree (as produced by
// replay.Canonicalize/RewindTo) back into a concrete GameState.
func decodeGameState(canon interface{}) (entities.GameState, error) {
	raw, err := json.Marshal(canon)
	if err != nil {
		return entities.GameState{}, fmt.Errorf("session: marshal canonical state: %w", err)
	}
	var state entities.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return entities.GameState{}, fmt.Errorf("session: decode game state: %w", err)
	}
	return state, nil
}
