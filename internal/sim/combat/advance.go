package combat

import (
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/kinematics"
)

// TickProjectiles advances every in-flight projectile and resolves any
// expiries into explosions, then sweeps the location's projectiles,
// minerals and containers that are marked ToClean. It is
// the single entry point a tick driver needs for this package's per-tick
// work.
func TickProjectiles(loc *entities.Location, elapsedMicro, nowMs int64, resolve FoFResolver) {
	AdvanceProjectiles(loc, elapsedMicro, nowMs, resolve, func(p *entities.Projectile, elapsed int64) {
		kinematics.AdvanceProjectile(elapsed, &p.Spatial, p.Movement)
	})
	sweep(loc)
}

func sweep(loc *entities.Location) {
	loc.Projectiles = filterClean(loc.Projectiles, func(p entities.Projectile) bool { return p.ToClean })
	loc.Minerals = filterClean(loc.Minerals, func(m entities.Mineral) bool { return m.ToClean })
	loc.Containers = filterClean(loc.Containers, func(c entities.Container) bool { return c.ToClean })
}

func filterClean[T any](items []T, toClean func(T) bool) []T {
	kept := items[:0]
	for _, item := range items {
		if !toClean(item) {
			kept = append(kept, item)
		}
	}
	return kept
}
