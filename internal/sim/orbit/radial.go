package orbit

import (
	"fmt"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// UpdateRadialMovement advances every body's phase and relative (anchor-
// centered) position. It never touches absolute position —
// RestoreAbsolutePositions walks the anchor tree afterward to turn relative offsets into world
// coordinates. Bodies outside limitArea are skipped entirely, the same
// "limit_area" pruning the tick driver applies to every per-location
// sub-phase.
func UpdateRadialMovement(currentTicks int64, limitArea entities.AABB, indexes *entities.GameStateIndexes, cache *PhaseCache, bodies []entities.Body) {
	for _, body := range bodies {
		spatial := body.GetSpatial()
		if !limitArea.Contains(spatial.Position) {
			continue
		}
		m := body.GetMovement()
		if m.Kind != entities.MovementRadialMonotonous {
			panic(fmt.Sprintf("orbit: unsupported movement kind %d for radial update", m.Kind))
		}

		anchorDist := indexes.AnchorDistance(body.Specifier())
		entry := cache.Get(anchorDist)

		idx := PhaseIndex(currentTicks, m.FullPeriodTicks, m.StartPhase)
		phase := idx
		m.Phase = &phase
		m.RelativePos = entry.Table[idx]
		body.SetMovement(m)
	}
}

// RestoreAbsolutePositions turns every radial or anchored-static body's
// relative offset into a world-space position by walking the anchor tree
// outward from star, one resolvable tier at a time. Bodies are matched to
// their anchor strictly by ObjectSpecifier, so the
// pass tolerates anchors appearing in any order in bodies — a moon anchored
// to a planet resolves in the second pass once the planet itself is placed.
func RestoreAbsolutePositions(star *entities.Star, bodies []entities.Body) {
	resolved := map[entities.ObjectSpecifier]entities.Vec2{
		star.Specifier(): star.Spatial.Position,
	}

	remaining := make([]entities.Body, len(bodies))
	copy(remaining, bodies)

	for len(remaining) > 0 {
		progressed := false
		next := remaining[:0]
		for _, body := range remaining {
			m := body.GetMovement()
			anchorPos, ok := resolved[m.Anchor]
			if !ok {
				next = append(next, body)
				continue
			}
			abs := anchorPos.Add(m.RelativePos)
			spatial := body.GetSpatial()
			spatial.Position = abs
			body.SetSpatial(spatial)
			resolved[body.Specifier()] = abs
			progressed = true
		}
		remaining = next
		if !progressed {
			panic("orbit: anchor tree has a body whose anchor never resolves (missing or cyclic anchor)")
		}
	}
}
