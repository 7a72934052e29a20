package entities

import "strconv"

// ShipLocation locates a ship within GameState.Locations by index pair,
// valid only for the tick it was built in.
type ShipLocation struct {
	LocationIdx int
	ShipIdx     int
}

// GameStateIndexes is rebuilt at the start of every sub-phase group that
// needs id lookups, and discarded at the end of the tick — never held
// across ticks.
type GameStateIndexes struct {
	ShipsByID        map[Id]ShipLocation
	PlayersByID      map[Id]int
	PlayersByShipID  map[Id]Id
	PlanetsByID      map[Id]struct{ LocationIdx, Idx int }
	AsteroidsByID    map[Id]struct{ LocationIdx, Idx int }
	BeltsByID        map[Id]struct{ LocationIdx, Idx int }
	StarsByID        map[Id]int // location idx

	// AnchorDistances caches distance(body, anchor) computed at body
	// construction time, so orbit phase lookups never recompute it.
	AnchorDistances map[ObjectSpecifier]float64
}

// BuildIndexes rebuilds every lookup table from scratch. It is pure,
// allocates fresh maps, and is cheap relative to a tick's other work; the
// alternative (incremental index maintenance across mutations) is exactly
// the kind of cross-entity bookkeeping design notes warn against.
func BuildIndexes(state *GameState) *GameStateIndexes {
	idx := &GameStateIndexes{
		ShipsByID:       make(map[Id]ShipLocation),
		PlayersByID:     make(map[Id]int),
		PlayersByShipID: make(map[Id]Id),
		PlanetsByID:     make(map[Id]struct{ LocationIdx, Idx int }),
		AsteroidsByID:   make(map[Id]struct{ LocationIdx, Idx int }),
		BeltsByID:       make(map[Id]struct{ LocationIdx, Idx int }),
		StarsByID:       make(map[Id]int),
		AnchorDistances: make(map[ObjectSpecifier]float64),
	}

	for li := range state.Locations {
		loc := &state.Locations[li]
		if loc.Star != nil {
			idx.StarsByID[loc.Star.Id] = li
		}
		for pi := range loc.Planets {
			p := &loc.Planets[pi]
			idx.PlanetsByID[p.Id] = struct{ LocationIdx, Idx int }{li, pi}
			if p.Movement.Kind == MovementRadialMonotonous {
				idx.AnchorDistances[p.Specifier()] = p.Movement.Radius
			}
		}
		for ai := range loc.Asteroids {
			a := &loc.Asteroids[ai]
			idx.AsteroidsByID[a.Id] = struct{ LocationIdx, Idx int }{li, ai}
			if a.Movement.Kind == MovementRadialMonotonous {
				idx.AnchorDistances[a.Specifier()] = a.Movement.Radius
			}
		}
		for bi := range loc.Belts {
			b := &loc.Belts[bi]
			idx.BeltsByID[b.Id] = struct{ LocationIdx, Idx int }{li, bi}
			if b.Movement.Kind == MovementRadialMonotonous {
				idx.AnchorDistances[b.Specifier()] = b.Movement.Radius
			}
		}
		for si := range loc.Ships {
			s := &loc.Ships[si]
			idx.ShipsByID[s.Id] = ShipLocation{LocationIdx: li, ShipIdx: si}
		}
	}
	for pi := range state.Players {
		p := &state.Players[pi]
		idx.PlayersByID[p.Id] = pi
		if p.ShipId != nil {
			idx.PlayersByShipID[*p.ShipId] = p.Id
		}
	}
	return idx
}

// FindShip resolves a ship id to its current location/index, or ok=false.
func (idx *GameStateIndexes) FindShip(state *GameState, id Id) (*Ship, bool) {
	loc, ok := idx.ShipsByID[id]
	if !ok {
		return nil, false
	}
	return &state.Locations[loc.LocationIdx].Ships[loc.ShipIdx], true
}

// FindPlayer resolves a player id, or ok=false.
func (idx *GameStateIndexes) FindPlayer(state *GameState, id Id) (*Player, bool) {
	pi, ok := idx.PlayersByID[id]
	if !ok {
		return nil, false
	}
	return &state.Players[pi], true
}

// FindPlayerByShip resolves the player owning a given ship, or ok=false.
func (idx *GameStateIndexes) FindPlayerByShip(state *GameState, shipId Id) (*Player, bool) {
	pid, ok := idx.PlayersByShipID[shipId]
	if !ok {
		return nil, false
	}
	return idx.FindPlayer(state, pid)
}

// AnchorDistance looks up the fixed orbit radius for a body, panicking if
// none was recorded — a missing anchor distance means construction skipped
// a required invariant, so this is a broken-invariant panic rather than an
// error return.
func (idx *GameStateIndexes) AnchorDistance(spec ObjectSpecifier) float64 {
	d, ok := idx.AnchorDistances[spec]
	if !ok {
		panic("no anchor distance recorded for " + specString(spec))
	}
	return d
}

func specString(s ObjectSpecifier) string {
	return strconv.Itoa(int(s.Kind)) + ":" + s.Id.String()
}
