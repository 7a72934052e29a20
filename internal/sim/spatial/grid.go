// Package spatial builds a per-tick point index over every locatable
// object in a location, answering radius and AABB queries without a linear
// scan of every ship/asteroid/projectile/mineral for every querying ship.
package spatial

import (
	"math"
	"sort"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// cellSize is chosen so a typical combat/tractor query radius spans a small,
// constant number of cells rather than degenerating into one giant bucket or
// thousands of near-empty ones.
const cellSize = 50.0

// Point is one indexed object: its specifier, position, and friend-or-foe
// classification (queries filter by FoF relative to a caster without the
// caller re-resolving the entity).
type Point struct {
	Spec entities.ObjectSpecifier
	Pos  entities.Vec2
	FoF  entities.FriendOrFoe
}

type cellKey struct{ cx, cy int64 }

func cellOf(p entities.Vec2) cellKey {
	return cellKey{
		cx: int64(math.Floor(p.X / cellSize)),
		cy: int64(math.Floor(p.Y / cellSize)),
	}
}

// Index is a rebuilt-every-tick grid over one location's objects. It holds
// no references into GameState — only copied Points — so it outlives the
// GameState mutations the rest of the tick performs after it's built.
type Index struct {
	cells map[cellKey][]Point
}

// Build indexes every point, bucketing by grid cell.
func Build(points []Point) *Index {
	idx := &Index{cells: make(map[cellKey][]Point, len(points))}
	for _, p := range points {
		k := cellOf(p.Pos)
		idx.cells[k] = append(idx.cells[k], p)
	}
	return idx
}

// WithinRadius returns every indexed point within radius of center, ordered
// by ascending distance and, for ties, ascending specifier id — the stable
// tie-break autofocus relies on.
func (idx *Index) WithinRadius(center entities.Vec2, radius float64) []Point {
	if radius < 0 {
		return nil
	}
	minCx := int64(math.Floor((center.X - radius) / cellSize))
	maxCx := int64(math.Floor((center.X + radius) / cellSize))
	minCy := int64(math.Floor((center.Y - radius) / cellSize))
	maxCy := int64(math.Floor((center.Y + radius) / cellSize))

	radiusSq := radius * radius
	var out []Point
	for cx := minCx; cx <= maxCx; cx++ {
		for cy := minCy; cy <= maxCy; cy++ {
			for _, p := range idx.cells[cellKey{cx, cy}] {
				if p.Pos.DistanceSqTo(center) <= radiusSq {
					out = append(out, p)
				}
			}
		}
	}
	sortByDistanceThenID(out, center)
	return out
}

// WithinAABB returns every indexed point inside box, in the same stable
// order as WithinRadius (ordered by distance to the box center).
func (idx *Index) WithinAABB(box entities.AABB) []Point {
	minCx := int64(math.Floor(box.TopLeft.X / cellSize))
	maxCx := int64(math.Floor(box.BottomRight.X / cellSize))
	minCy := int64(math.Floor(box.TopLeft.Y / cellSize))
	maxCy := int64(math.Floor(box.BottomRight.Y / cellSize))

	var out []Point
	for cx := minCx; cx <= maxCx; cx++ {
		for cy := minCy; cy <= maxCy; cy++ {
			for _, p := range idx.cells[cellKey{cx, cy}] {
				if box.Contains(p.Pos) {
					out = append(out, p)
				}
			}
		}
	}
	sortByDistanceThenID(out, box.Center())
	return out
}

func sortByDistanceThenID(points []Point, origin entities.Vec2) {
	sort.SliceStable(points, func(i, j int) bool {
		di := points[i].Pos.DistanceSqTo(origin)
		dj := points[j].Pos.DistanceSqTo(origin)
		if di != dj {
			return di < dj
		}
		return points[i].Spec.Id.String() < points[j].Spec.Id.String()
	})
}

// PointsFromLocation flattens every locatable entity in a location into
// index points. Ships are tagged Friend and every other entity Neutral; no
// shooter-relative friend-or-foe classification is applied here.
func PointsFromLocation(loc *entities.Location) []Point {
	var out []Point
	if loc.Star != nil {
		out = append(out, Point{Spec: loc.Star.Specifier(), Pos: loc.Star.Spatial.Position})
	}
	for i := range loc.Planets {
		p := &loc.Planets[i]
		out = append(out, Point{Spec: p.Specifier(), Pos: p.Spatial.Position})
	}
	for i := range loc.Asteroids {
		a := &loc.Asteroids[i]
		out = append(out, Point{Spec: a.Specifier(), Pos: a.Spatial.Position})
	}
	for bi := range loc.Belts {
		for ai := range loc.Belts[bi].Asteroids {
			a := &loc.Belts[bi].Asteroids[ai]
			out = append(out, Point{Spec: a.Specifier(), Pos: a.Spatial.Position})
		}
	}
	for i := range loc.Ships {
		s := &loc.Ships[i]
		out = append(out, Point{Spec: s.Specifier(), Pos: s.Spatial.Position, FoF: entities.Friend})
	}
	for i := range loc.Projectiles {
		p := &loc.Projectiles[i]
		out = append(out, Point{Spec: p.Specifier(), Pos: p.Spatial.Position})
	}
	for i := range loc.Minerals {
		m := &loc.Minerals[i]
		out = append(out, Point{Spec: m.Specifier(), Pos: m.Position})
	}
	for i := range loc.Containers {
		c := &loc.Containers[i]
		out = append(out, Point{Spec: c.Specifier(), Pos: c.Position})
	}
	return out
}
