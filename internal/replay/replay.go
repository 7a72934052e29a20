// Package replay implements diff/apply/rewind over a room's GameState
// history without storing a full snapshot per tick: each tick is recorded
// as a structured patch (Add/Modified/Removed operations) against the
// previous tick's canonical JSON form, and a rewind replays the patch
// chain from the nearest keyframe forward to the requested tick.
package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// OpKind tags one structured patch operation.
type OpKind uint8

const (
	OpAdd OpKind = iota
	OpModified
	OpRemoved
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "Add"
	case OpModified:
		return "Modified"
	case OpRemoved:
		return "Removed"
	default:
		return "Unknown"
	}
}

// PatchOp is one change at a path within the canonical JSON form of a
// GameState: a map key or an array index. Array indices are the string
// decimal encoding of the index at diff time.
type PatchOp struct {
	Kind  OpKind
	Path  []string
	Value interface{} `json:",omitempty"`
}

// Frame is one tick's worth of patch operations against the previous
// tick's canonical state.
type Frame struct {
	Tick int64
	Ops  []PatchOp
}

// Canonicalize renders a GameState into the generic JSON value tree
// (map[string]interface{} / []interface{} / primitives) that Diff and
// Apply operate over, so structural comparison never has to know about Go
// struct tags directly.
func Canonicalize(state entities.GameState) (interface{}, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("replay: marshal state: %w", err)
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("replay: unmarshal canonical form: %w", err)
	}
	return generic, nil
}

// Diff computes the patch operations that turn canonical value a into b.
func Diff(a, b interface{}) []PatchOp {
	return diffValue(nil, a, b)
}

func diffValue(path []string, a, b interface{}) []PatchOp {
	bMap, bIsMap := b.(map[string]interface{})
	if bIsMap {
		aMap, aIsMap := a.(map[string]interface{})
		if !aIsMap {
			aMap = nil
		}
		return diffMap(path, aMap, bMap)
	}
	bSlice, bIsSlice := b.([]interface{})
	if bIsSlice {
		aSlice, aIsSlice := a.([]interface{})
		if !aIsSlice {
			aSlice = nil
		}
		return diffSlice(path, aSlice, bSlice)
	}
	if reflect.DeepEqual(a, b) {
		return nil
	}
	if a == nil {
		return []PatchOp{{Kind: OpAdd, Path: clonePath(path), Value: b}}
	}
	return []PatchOp{{Kind: OpModified, Path: clonePath(path), Value: b}}
}

func diffMap(path []string, a, b map[string]interface{}) []PatchOp {
	var ops []PatchOp
	keys := make(map[string]bool, len(a)+len(b))
	for k := range a {
		keys[k] = true
	}
	for k := range b {
		keys[k] = true
	}
	sortedKeys := make([]string, 0, len(keys))
	for k := range keys {
		sortedKeys = append(sortedKeys, k)
	}
	sort.Strings(sortedKeys)

	for _, k := range sortedKeys {
		av, aok := a[k]
		bv, bok := b[k]
		childPath := append(clonePath(path), k)
		switch {
		case !aok && bok:
			ops = append(ops, PatchOp{Kind: OpAdd, Path: childPath, Value: bv})
		case aok && !bok:
			ops = append(ops, PatchOp{Kind: OpRemoved, Path: childPath})
		default:
			ops = append(ops, diffValue(childPath, av, bv)...)
		}
	}
	return ops
}

// diffSlice walks overlapping indices first, then handles a length
// mismatch: appended elements become Add ops in ascending order, and
// elements dropped from the tail become Removed ops in descending index
// order — the descending order is what lets Apply remove them one at a
// time from the same parent array without the remaining indices shifting
// out from under the next op in the same Frame.
func diffSlice(path []string, a, b []interface{}) []PatchOp {
	var ops []PatchOp
	overlap := len(a)
	if len(b) < overlap {
		overlap = len(b)
	}
	for i := 0; i < overlap; i++ {
		childPath := append(clonePath(path), strconv.Itoa(i))
		ops = append(ops, diffValue(childPath, a[i], b[i])...)
	}
	if len(b) > len(a) {
		for i := len(a); i < len(b); i++ {
			childPath := append(clonePath(path), strconv.Itoa(i))
			ops = append(ops, PatchOp{Kind: OpAdd, Path: childPath, Value: b[i]})
		}
	} else if len(a) > len(b) {
		for i := len(a) - 1; i >= len(b); i-- {
			childPath := append(clonePath(path), strconv.Itoa(i))
			ops = append(ops, PatchOp{Kind: OpRemoved, Path: childPath})
		}
	}
	return ops
}

func clonePath(path []string) []string {
	out := make([]string, len(path))
	copy(out, path)
	return out
}

var (
	ErrEmptyPath  = errors.New("replay: patch op has an empty path")
	ErrBadPathElem = errors.New("replay: path segment does not resolve against the current value")
)

// Apply returns a new canonical value with every op in ops applied in
// order against base. ops within one Frame must already carry the
// descending-index ordering Diff produces for same-parent Removed runs;
// Apply does not re-sort, since a caller composing ops from multiple
// sources is responsible for that ordering.
func Apply(base interface{}, ops []PatchOp) (interface{}, error) {
	result := deepCopy(base)
	for _, op := range ops {
		var err error
		result, err = applyOp(result, op)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func applyOp(root interface{}, op PatchOp) (interface{}, error) {
	if len(op.Path) == 0 {
		return nil, ErrEmptyPath
	}
	return setAtPath(root, op.Path, op)
}

// setAtPath recurses to the parent of the final path segment and performs
// the mutation there, since maps/slices in Go are reference types but the
// top-level `root` value itself may need replacing (e.g. root is itself
// the target of a Removed/Modified op one level up).
func setAtPath(node interface{}, path []string, op PatchOp) (interface{}, error) {
	key := path[0]
	rest := path[1:]

	switch n := node.(type) {
	case map[string]interface{}:
		if len(rest) == 0 {
			switch op.Kind {
			case OpAdd, OpModified:
				n[key] = op.Value
			case OpRemoved:
				delete(n, key)
			}
			return n, nil
		}
		child, ok := n[key]
		if !ok {
			return nil, fmt.Errorf("%w: map key %q", ErrBadPathElem, key)
		}
		updated, err := setAtPath(child, rest, op)
		if err != nil {
			return nil, err
		}
		n[key] = updated
		return n, nil
	case []interface{}:
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 || idx > len(n) {
			return nil, fmt.Errorf("%w: array index %q", ErrBadPathElem, key)
		}
		if len(rest) == 0 {
			switch op.Kind {
			case OpAdd:
				if idx == len(n) {
					return append(n, op.Value), nil
				}
				n[idx] = op.Value
				return n, nil
			case OpModified:
				n[idx] = op.Value
				return n, nil
			case OpRemoved:
				return append(n[:idx:idx], n[idx+1:]...), nil
			}
			return n, nil
		}
		if idx >= len(n) {
			return nil, fmt.Errorf("%w: array index %q out of range", ErrBadPathElem, key)
		}
		updated, err := setAtPath(n[idx], rest, op)
		if err != nil {
			return nil, err
		}
		n[idx] = updated
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %q into non-container value", ErrBadPathElem, key)
	}
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return t
	}
}

// Recorder captures successive GameState snapshots as a chain of Frames
// against the previous snapshot's canonical form.
type Recorder struct {
	last interface{}
}

// NewRecorder seeds a Recorder with the room's initial state as the
// keyframe, returning the keyframe's canonical form for replaystore to
// persist directly.
func NewRecorder(initial entities.GameState) (*Recorder, interface{}, error) {
	canon, err := Canonicalize(initial)
	if err != nil {
		return nil, nil, err
	}
	return &Recorder{last: canon}, canon, nil
}

// Capture diffs state against the last captured snapshot and returns the
// resulting Frame, advancing the recorder's internal snapshot.
func (r *Recorder) Capture(tick int64, state entities.GameState) (Frame, error) {
	canon, err := Canonicalize(state)
	if err != nil {
		return Frame{}, err
	}
	ops := Diff(r.last, canon)
	r.last = canon
	return Frame{Tick: tick, Ops: ops}, nil
}

// RewindTo replays frames (in ascending Tick order, as recorded) from
// keyframe forward up to and including the last Frame whose Tick does not
// exceed targetTick, returning the canonical state at that point.
func RewindTo(keyframe interface{}, frames []Frame, targetTick int64) (interface{}, error) {
	result := keyframe
	for _, frame := range frames {
		if frame.Tick > targetTick {
			break
		}
		var err error
		result, err = Apply(result, frame.Ops)
		if err != nil {
			return nil, fmt.Errorf("replay: rewind stopped at tick %d: %w", frame.Tick, err)
		}
	}
	return result, nil
}
