package replaystore

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/gorbit/orbitalrush/internal/replay"
)

// DiskStore persists each room's keyframe and frame log as lz4-framed JSON
// under baseDir/<roomId>/. The frame log is append-only on disk but lz4's
// framing means an append still has to decompress-and-recompress the
// whole log; rooms are expected to rewind within a single session's
// lifetime and are short-lived enough that this is not a scaling concern.
type DiskStore struct {
	baseDir string
	mu      sync.Mutex
}

// NewDiskStore creates a DiskStore rooted at baseDir, creating it if
// necessary.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("replaystore: create base dir: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

func (d *DiskStore) roomDir(roomId string) string {
	return filepath.Join(d.baseDir, roomId)
}

func (d *DiskStore) keyframePath(roomId string) string {
	return filepath.Join(d.roomDir(roomId), "keyframe.json.lz4")
}

func (d *DiskStore) framesPath(roomId string) string {
	return filepath.Join(d.roomDir(roomId), "frames.jsonl.lz4")
}

type keyframeEnvelope struct {
	Tick      int64       `json:"tick"`
	Canonical interface{} `json:"canonical"`
}

// SaveKeyframe overwrites the room's stored keyframe and truncates its
// frame log, since a new keyframe invalidates any frames recorded against
// the previous one.
func (d *DiskStore) SaveKeyframe(ctx context.Context, roomId string, tick int64, canonical interface{}) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(d.roomDir(roomId), 0o755); err != nil {
		return fmt.Errorf("replaystore: create room dir: %w", err)
	}

	raw, err := json.Marshal(keyframeEnvelope{Tick: tick, Canonical: canonical})
	if err != nil {
		return fmt.Errorf("replaystore: marshal keyframe: %w", err)
	}
	if err := writeLZ4File(d.keyframePath(roomId), raw); err != nil {
		return err
	}
	if err := os.Remove(d.framesPath(roomId)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replaystore: truncate frame log: %w", err)
	}
	return nil
}

// AppendFrame decompresses the room's existing frame log, appends frame as
// one JSON line, and recompresses.
func (d *DiskStore) AppendFrame(ctx context.Context, roomId string, frame replay.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	existing, err := readLZ4File(d.framesPath(roomId))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	line, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("replaystore: marshal frame: %w", err)
	}

	buf := append(existing, line...)
	buf = append(buf, '\n')

	return writeLZ4File(d.framesPath(roomId), buf)
}

func (d *DiskStore) LoadKeyframe(ctx context.Context, roomId string) (interface{}, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := readLZ4File(d.keyframePath(roomId))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var env keyframeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("replaystore: unmarshal keyframe: %w", err)
	}
	return env.Canonical, true, nil
}

func (d *DiskStore) LoadFrames(ctx context.Context, roomId string, fromTick int64) ([]replay.Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := readLZ4File(d.framesPath(roomId))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var frames []replay.Frame
	scanner := bufio.NewScanner(bytes.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		var frame replay.Frame
		if err := json.Unmarshal(scanner.Bytes(), &frame); err != nil {
			return nil, fmt.Errorf("replaystore: unmarshal frame line: %w", err)
		}
		if frame.Tick < fromTick {
			continue
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("replaystore: scan frame log: %w", err)
	}
	return frames, nil
}

func (d *DiskStore) Close(ctx context.Context) error {
	return nil
}

func writeLZ4File(path string, raw []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replaystore: create %s: %w", path, err)
	}
	defer f.Close()

	w := lz4.NewWriter(f)
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("replaystore: lz4-compress %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("replaystore: close lz4 writer for %s: %w", path, err)
	}
	return nil
}

func readLZ4File(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := lz4.NewReader(f)
	var out []byte
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return out, fmt.Errorf("replaystore: lz4-decompress %s: %w", path, err)
		}
	}
	return out, nil
}
