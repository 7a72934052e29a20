// Package tractor resolves a ship's tractor beam: locking onto a nearby
// mineral or container, pulling it inward tick by tick, and consuming it
// into the ship's cargo on contact.
package tractor

import "github.com/gorbit/orbitalrush/internal/sim/entities"

// MaxLockDistance is how far a ship may be from an object and still latch
// its tractor beam onto it.
const MaxLockDistance = 30.0

// SpeedPerSec is how fast a tractored object closes the distance to its
// ship, expressed per second of elapsed time.
const SpeedPerSec = 10.0

// PickupDistance is how close a tractored object must get before it is
// consumed into the ship's inventory instead of taking another step.
const PickupDistance = 1.0

// UpdateLocks re-evaluates every ship's tractor lock: a ship keeps its
// current target only while that target still exists and remains within
// MaxLockDistance; otherwise the lock is dropped. Locking onto a new target
// is a player action handled by the caller, not by this pass.
func UpdateLocks(loc *entities.Location) {
	for i := range loc.Ships {
		ship := &loc.Ships[i]
		if ship.TractorTarget == nil {
			continue
		}
		pos, ok := tractorablePosition(loc, *ship.TractorTarget)
		if !ok || ship.Spatial.Position.DistanceTo(pos) > MaxLockDistance {
			ship.TractorTarget = nil
		}
	}
}

// AdvanceTractoredObjects pulls every tractored mineral/container toward
// each ship that has it locked, consuming it into cargo the instant any
// locking ship gets within PickupDistance. A mineral or container may be
// pulled by more than one ship at once; the first ship close enough wins
// the consumption for that tick.
func AdvanceTractoredObjects(loc *entities.Location, elapsedMicro int64) {
	elapsedSec := float64(elapsedMicro) / 1_000_000.0
	shipsByTarget := indexShipsByTarget(loc)

	for i := range loc.Minerals {
		advanceOne(loc, shipsByTarget, loc.Minerals[i].Specifier(), &loc.Minerals[i].Position,
			elapsedSec, func(ship *entities.Ship) {
				loc.Minerals[i].ToClean = true
				ship.Inventory = ship.Inventory.Add(entities.NewInventoryItem(entities.NewRandomId(), loc.Minerals[i].Type, 1))
			})
	}
	for i := range loc.Containers {
		advanceOne(loc, shipsByTarget, loc.Containers[i].Specifier(), &loc.Containers[i].Position,
			elapsedSec, func(ship *entities.Ship) {
				loc.Containers[i].ToClean = true
				for _, item := range loc.Containers[i].Items {
					ship.Inventory = ship.Inventory.Add(item)
				}
			})
	}
}

func advanceOne(loc *entities.Location, shipsByTarget map[entities.ObjectSpecifier][]*entities.Ship, spec entities.ObjectSpecifier, pos *entities.Vec2, elapsedSec float64, consume func(ship *entities.Ship)) {
	ships := shipsByTarget[spec]
	if len(ships) == 0 {
		return
	}
	for _, ship := range ships {
		toShip := ship.Spatial.Position.Sub(*pos)
		if toShip.Length() < PickupDistance {
			consume(ship)
			ship.TractorTarget = nil
			return
		}
		step := toShip.Normalize().Scale(SpeedPerSec * elapsedSec)
		*pos = pos.Add(step)
	}
}

func indexShipsByTarget(loc *entities.Location) map[entities.ObjectSpecifier][]*entities.Ship {
	out := make(map[entities.ObjectSpecifier][]*entities.Ship)
	for i := range loc.Ships {
		ship := &loc.Ships[i]
		if ship.TractorTarget == nil {
			continue
		}
		out[*ship.TractorTarget] = append(out[*ship.TractorTarget], ship)
	}
	return out
}

func tractorablePosition(loc *entities.Location, spec entities.ObjectSpecifier) (entities.Vec2, bool) {
	switch spec.Kind {
	case entities.ObjectMineral:
		for i := range loc.Minerals {
			if loc.Minerals[i].Id == spec.Id {
				return loc.Minerals[i].Position, true
			}
		}
	case entities.ObjectContainer:
		for i := range loc.Containers {
			if loc.Containers[i].Id == spec.Id {
				return loc.Containers[i].Position, true
			}
		}
	}
	return entities.Vec2{}, false
}
