package session

import (
	"time"

	"github.com/go-logr/logr"
	"github.com/gorbit/orbitalrush/internal/observability"
	"github.com/gorbit/orbitalrush/internal/replay"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/rules"
)

// tickIntervalMicro is the elapsed time rules.Step advances by on every
// tick, matching the session's 30Hz ticker.
const tickIntervalMicro = int64(1000000 / 30)

// Session orchestrates one room's game loop: draining queued commands,
// calling rules.Step at a fixed rate, and optionally recording the
// resulting state history for replay/rewind.
type Session struct {
	state    entities.GameState
	ctx      *rules.Context
	queue    *CommandQueue
	ticker   *Ticker
	clock    Clock
	recorder *replay.Recorder
	running  bool
	logger   logr.Logger // Optional logger for observability
}

// NewSession creates a new session with the given clock, initial game
// state, simulation context, and max queue size.
func NewSession(clock Clock, state entities.GameState, ctx *rules.Context, maxQueueSize int) *Session {
	return &Session{
		state:   state,
		ctx:     ctx,
		queue:   NewCommandQueue(maxQueueSize),
		ticker:  NewFixedRateTicker(clock),
		clock:   clock,
		running: false,
	}
}

// EnableRecording seeds a replay.Recorder against the session's current
// state, returning the keyframe's canonical form for the caller to persist
// via internal/replaystore. Recording is optional: a session with no
// recorder just skips the Capture call every tick.
func (s *Session) EnableRecording() (interface{}, error) {
	recorder, keyframe, err := replay.NewRecorder(s.state)
	if err != nil {
		return nil, err
	}
	s.recorder = recorder
	return keyframe, nil
}

// EnqueueCommand adds a command to the queue with the specified sequence number.
// Returns true if the command was successfully enqueued, false otherwise.
func (s *Session) EnqueueCommand(seq uint32, cmd rules.Command) bool {
	return s.queue.Enqueue(seq, cmd)
}

// Run executes the tick loop for up to maxTicks iterations.
// The loop drains every queued command due this tick and calls rules.Step()
// at the correct tick rate. Returns nil on success, or an error if
// something goes wrong.
func (s *Session) Run(maxTicks int) error {
	s.running = true
	defer func() {
		s.running = false
	}()

	ticksProcessed := 0
	now := s.clock.Now()

	// Calculate how many ticks should occur based on elapsed time.
	// This handles the case where time was advanced by multiple intervals.
	elapsed := now.Sub(s.ticker.lastTick)

	totalTicksNeeded := int(elapsed / s.ticker.interval)
	// Ensure we process at least 1 tick if any time has passed, covering
	// the edge case where elapsed is slightly less than interval.
	if totalTicksNeeded == 0 && elapsed > 0 {
		totalTicksNeeded = 1
	}
	if totalTicksNeeded > maxTicks {
		totalTicksNeeded = maxTicks
	}

	for ticksProcessed < totalTicksNeeded && !s.state.GameOver {
		tickStart := time.Now()

		s.ticker.lastTick = s.ticker.lastTick.Add(s.ticker.interval)

		cmds := s.drainDueCommands()
		rules.Step(&s.state, tickIntervalMicro, cmds, s.ctx)

		if s.recorder != nil {
			if _, err := s.recorder.Capture(s.state.Ticks, s.state); err != nil {
				return err
			}
		}

		ticksProcessed++

		tickDuration := time.Since(tickStart)
		tickDurationSeconds := tickDuration.Seconds()

		if histogram := observability.GetTickDurationHistogram(); histogram != nil {
			histogram.Observe(tickDurationSeconds)
		}

		const thresholdSeconds = 0.01 // 10ms
		if tickDurationSeconds > thresholdSeconds {
			if s.logger.Enabled() {
				durationMs := tickDurationSeconds * 1000.0
				thresholdMs := thresholdSeconds * 1000.0
				s.logger.WithValues(
					"component", "session",
					"tick", s.state.Ticks,
					"duration_ms", durationMs,
					"threshold_ms", thresholdMs,
				).Info("Tick execution exceeded threshold")
			}
		}

		if s.state.GameOver {
			break
		}
	}

	return nil
}

// drainDueCommands dequeues every currently queued command: a client
// batches one tick's worth of input together, so there is no notion of a
// command being "not yet due" beyond having already been enqueued.
func (s *Session) drainDueCommands() []rules.Command {
	var cmds []rules.Command
	for {
		queued, ok := s.queue.Dequeue()
		if !ok {
			break
		}
		cmds = append(cmds, queued.Command)
	}
	return cmds
}

// GetState returns the current game state.
func (s *Session) GetState() entities.GameState {
	return s.state
}

// IsRunning returns true if the session is currently running.
func (s *Session) IsRunning() bool {
	return s.running
}

// Stop stops the session (sets running to false).
func (s *Session) Stop() {
	s.running = false
}

// SetLogger sets the logger for this session. This is optional and can be nil.
// When set, the logger will be used for structured logging of tick performance.
func (s *Session) SetLogger(logger logr.Logger) {
	s.logger = logger
}
