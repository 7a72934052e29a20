package combat

import "github.com/gorbit/orbitalrush/internal/sim/entities"

// ResolveExplosion applies radial damage around center: every ship within
// radius whose relation to caster is not Friend takes damage scaled by
// linear falloff (full damage at the center, zero at the edge of radius).
// Wrecks additionally receive an outward impulse proportional to
// appliedForce / distance^2, the only entity in the model that carries a
// velocity vector an impulse can act on.
func ResolveExplosion(loc *entities.Location, caster entities.ObjectSpecifier, center entities.Vec2, radius, damage, appliedForce float64, nowMs int64, resolve FoFResolver) {
	if radius <= 0 {
		return
	}
	for i := range loc.Ships {
		ship := &loc.Ships[i]
		dist := ship.Spatial.Position.DistanceTo(center)
		if dist > radius {
			continue
		}
		if resolve(caster, ship.Specifier()) == entities.Friend {
			continue
		}
		applied := damage * falloff(dist/radius)
		ship.Health.Damage(applied, caster)
		addDamageEffect(ship, caster, "explosion", applied, nowMs)
	}
	for i := range loc.Wrecks {
		w := &loc.Wrecks[i]
		dist := w.Spatial.Position.DistanceTo(center)
		if dist > radius || dist == 0 {
			continue
		}
		impulseMag := appliedForce / (dist * dist)
		direction := w.Spatial.Position.Sub(center).Normalize()
		w.Velocity = w.Velocity.Add(direction.Scale(impulseMag))
	}
}

// falloff maps a normalized distance ratio in [0,1] to a damage multiplier:
// full strength at the blast center, tapering linearly to nothing at the
// edge of the blast radius. Ratios beyond 1 (shouldn't happen given the
// caller's radius pre-filter) are clamped to zero.
func falloff(ratio float64) float64 {
	if ratio >= 1 {
		return 0
	}
	if ratio <= 0 {
		return 1
	}
	return 1 - ratio
}

// AdvanceProjectiles advances every projectile's position by its own
// movement law, expiring and exploding those whose health or remaining
// ticks have run out.
func AdvanceProjectiles(loc *entities.Location, elapsedMicro int64, nowMs int64, resolve FoFResolver, advance func(*entities.Projectile, int64)) {
	for i := range loc.Projectiles {
		p := &loc.Projectiles[i]
		advance(p, elapsedMicro)

		expired := false
		if p.Expires != nil {
			*p.Expires = p.Expires.Tick(elapsedMicro)
			expired = p.Expires.Expired()
		}
		destroyed := p.Health != nil && p.Health.Dead()
		if !expired && !destroyed {
			continue
		}
		p.ToClean = true
		if p.Explosion != nil {
			ResolveExplosion(loc, p.Owner, p.Spatial.Position, p.Explosion.Radius, p.Explosion.Damage, p.Explosion.AppliedForce, nowMs, resolve)
		}
	}
}
