package rules

import (
	"github.com/gorbit/orbitalrush/internal/sim/autofocus"
	"github.com/gorbit/orbitalrush/internal/sim/combat"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/market"
	"github.com/gorbit/orbitalrush/internal/sim/modes"
	"github.com/gorbit/orbitalrush/internal/sim/orbit"
	"github.com/gorbit/orbitalrush/internal/sim/spatial"
	"github.com/gorbit/orbitalrush/internal/sim/tractor"
)

// orbitUpdateMargin extends a location's body-derived bounds before
// culling which bodies get an orbital update this tick, so a planet
// sitting exactly on the edge of another body's orbit radius isn't
// dropped by a too-tight box.
const orbitUpdateMargin = 200.0

// Step advances state by elapsedMicro, applying cmds and then every
// sub-phase of one tick in a fixed order: clock, commands, pause/game-over
// check, per-location orbital mechanics, ship navigation and manual flight,
// tractoring, combat bookkeeping and ship death, long-action tick/finish,
// mode rules, bots, autofocus, and market shake, finishing with a cleanup
// sweep of everything marked ToClean. The same (state, elapsedMicro, cmds)
// triple always produces the same resulting state, which is what makes
// replay reconstruction and rewind possible.
func Step(state *entities.GameState, elapsedMicro int64, cmds []Command, ctx *Context) []entities.Event {
	state.Ticks++
	state.Millis += elapsedMicro / 1000

	idx := entities.BuildIndexes(state)
	events := applyCommands(state, idx, cmds, ctx)

	if state.Paused || state.GameOver {
		state.Events = events
		return events
	}

	for li := range state.Locations {
		loc := &state.Locations[li]
		advanceOrbits(state.Ticks, idx, ctx, loc)
		updateShipMovement(elapsedMicro, state.Millis, loc)
		tractor.UpdateLocks(loc)
		tractor.AdvanceTractoredObjects(loc, elapsedMicro)

		decrementTurretCooldowns(loc, elapsedMicro)
		regenShipHealth(loc)
		advanceWrecks(loc, elapsedMicro)
		combat.TickProjectiles(loc, elapsedMicro, state.Millis, friendOrFoe(loc))
		events = append(events, processShipDeaths(state, loc)...)
	}

	// Ship deaths reshuffle loc.Ships, so indexes built before this point
	// are stale; long actions, bots, and mode rules all need a fresh one.
	idx = entities.BuildIndexes(state)
	events = append(events, tickLongActions(state, idx, elapsedMicro)...)

	events = append(events, modes.Apply(state, elapsedMicro, ctx.Prng)...)

	idx = entities.BuildIndexes(state)
	events = append(events, runBots(state, idx, elapsedMicro, ctx)...)

	for li := range state.Locations {
		loc := &state.Locations[li]
		index := spatial.Build(spatial.PointsFromLocation(loc))
		autofocus.UpdateLocation(loc, index)
	}

	market.TickShake(&state.Market, elapsedMicro, allPlanetIds(state), ctx.Prng)

	sweepState(state)

	state.Events = events
	return events
}

// advanceOrbits runs the phase-cache orbital update for one location: every
// radial body's phase and relative position, the anchor-tree walk that
// turns those into absolute positions, and the rigid belt carry for member
// asteroids.
func advanceOrbits(currentTicks int64, idx *entities.GameStateIndexes, ctx *Context, loc *entities.Location) {
	bodies := radialBodies(loc)
	bounds := loc.Bounds(orbitUpdateMargin)
	orbit.UpdateRadialMovement(currentTicks, bounds, idx, ctx.Cache, bodies)
	if loc.Star != nil {
		orbit.RestoreAbsolutePositions(loc.Star, bodies)
	}
	for bi := range loc.Belts {
		orbit.CarryBeltAsteroids(&loc.Belts[bi])
	}
}

func allPlanetIds(state *entities.GameState) []entities.Id {
	var out []entities.Id
	for li := range state.Locations {
		for _, p := range state.Locations[li].Planets {
			out = append(out, p.Id)
		}
	}
	return out
}
