// Package autofocus picks, for each ship, the nearest other object worth
// highlighting on the client's HUD.
package autofocus

import (
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/spatial"
)

// Radius bounds how far a ship looks for an autofocus candidate.
const Radius = 30.0

// UpdateLocation recomputes AutofocusTarget for every ship in loc. index
// must already cover every point in loc (built by the caller once per
// location per tick, and reused across every sub-phase that needs it).
func UpdateLocation(loc *entities.Location, index *spatial.Index) {
	targets := make([]*entities.ObjectSpecifier, len(loc.Ships))
	for i := range loc.Ships {
		ship := &loc.Ships[i]
		candidates := index.WithinRadius(ship.Spatial.Position, Radius)
		var chosen *entities.ObjectSpecifier
		for _, c := range candidates {
			if c.Spec == ship.Specifier() {
				continue
			}
			spec := c.Spec
			chosen = &spec
			break
		}
		targets[i] = chosen
	}
	for i := range loc.Ships {
		loc.Ships[i].AutofocusTarget = targets[i]
	}
}
