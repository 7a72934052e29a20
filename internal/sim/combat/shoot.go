// Package combat resolves shooting, projectile launches, projectile motion,
// and radial explosion damage.
package combat

import (
	"errors"
	"fmt"
	"math"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// ErrNoSuchTurret, ErrOnCooldown, ErrOutOfRange, and ErrForbiddenTarget are
// precondition failures callers should treat as a silent no-op rather than
// a client-visible error; no state changes when one of these is returned.
var (
	ErrNoSuchTurret    = errors.New("combat: no such turret")
	ErrOnCooldown      = errors.New("combat: turret on cooldown")
	ErrNoSuchTarget    = errors.New("combat: target does not exist")
	ErrOutOfRange      = errors.New("combat: target out of range")
	ErrForbiddenTarget = errors.New("combat: target is a friend")
)

// FoFResolver classifies the relationship between a shooter and a target,
// mode rules (e.g. pirate-defence teams) deciding the answer.
type FoFResolver func(shooter, target entities.ObjectSpecifier) entities.FriendOrFoe

// Shoot resolves a hitscan attack from ship against target through turretId.
// On success it damages the target in place, resets the turret's cooldown,
// and records a local effect on the target ship (if the target is a ship).
func Shoot(loc *entities.Location, shooter *entities.Ship, turretId string, target entities.ObjectSpecifier, nowMs int64, resolve FoFResolver) error {
	turret := shooter.FindTurret(turretId)
	if turret == nil {
		return ErrNoSuchTurret
	}
	if !turret.ReadyToFire() {
		return ErrOnCooldown
	}

	targetPos, targetShip, ok := resolveTarget(loc, target)
	if !ok {
		return ErrNoSuchTarget
	}
	if shooter.Spatial.Position.DistanceTo(targetPos) > turret.Range {
		return ErrOutOfRange
	}
	if resolve(shooter.Specifier(), target) == entities.Friend {
		return ErrForbiddenTarget
	}

	turret.CooldownRemaining = turret.CooldownTicks

	if targetShip == nil {
		// Minerals/containers are one-shot destroyed rather than damaged:
		// mark for cleanup instead of subtracting health they don't have.
		markDestroyed(loc, target)
		return nil
	}
	targetShip.Health.Damage(turret.Damage, shooter.Specifier())
	addDamageEffect(targetShip, shooter.Specifier(), turretId, turret.Damage, nowMs)
	return nil
}

// markDestroyed flags a non-ship target for removal on the next cleanup
// pass, mirroring how ships and projectiles are swept after death.
func markDestroyed(loc *entities.Location, target entities.ObjectSpecifier) {
	switch target.Kind {
	case entities.ObjectMineral:
		for i := range loc.Minerals {
			if loc.Minerals[i].Id == target.Id {
				loc.Minerals[i].ToClean = true
				return
			}
		}
	case entities.ObjectContainer:
		for i := range loc.Containers {
			if loc.Containers[i].Id == target.Id {
				loc.Containers[i].ToClean = true
				return
			}
		}
	}
}

// Launch resolves a projectile-firing attack, spawning a Projectile cloned
// from template and oriented toward target. Preconditions mirror Shoot.
func Launch(loc *entities.Location, shooter *entities.Ship, turretId string, target entities.ObjectSpecifier, template entities.Projectile, nowMs int64, resolve FoFResolver) (*entities.Projectile, error) {
	turret := shooter.FindTurret(turretId)
	if turret == nil {
		return nil, ErrNoSuchTurret
	}
	if !turret.ReadyToFire() {
		return nil, ErrOnCooldown
	}
	targetPos, _, ok := resolveTarget(loc, target)
	if !ok {
		return nil, ErrNoSuchTarget
	}
	if shooter.Spatial.Position.DistanceTo(targetPos) > turret.Range {
		return nil, ErrOutOfRange
	}
	if resolve(shooter.Specifier(), target) == entities.Friend {
		return nil, ErrForbiddenTarget
	}

	turret.CooldownRemaining = turret.CooldownTicks

	instance := template
	instance.Id = entities.NewRandomId()
	instance.Owner = shooter.Specifier()
	instance.Target = target
	direction := targetPos.Sub(shooter.Spatial.Position)
	// Rotation 0 faces +y (Vec2(0,1).Rotate(rotation)), as for ships.
	instance.Spatial = entities.SpatialProps{
		Position: shooter.Spatial.Position,
		Rotation: math.Atan2(-direction.X, direction.Y),
	}
	loc.Projectiles = append(loc.Projectiles, instance)
	return &loc.Projectiles[len(loc.Projectiles)-1], nil
}

func resolveTarget(loc *entities.Location, target entities.ObjectSpecifier) (entities.Vec2, *entities.Ship, bool) {
	switch target.Kind {
	case entities.ObjectShip:
		for i := range loc.Ships {
			if loc.Ships[i].Id == target.Id {
				return loc.Ships[i].Spatial.Position, &loc.Ships[i], true
			}
		}
	case entities.ObjectMineral:
		for i := range loc.Minerals {
			if loc.Minerals[i].Id == target.Id {
				return loc.Minerals[i].Position, nil, true
			}
		}
	case entities.ObjectContainer:
		for i := range loc.Containers {
			if loc.Containers[i].Id == target.Id {
				return loc.Containers[i].Position, nil, true
			}
		}
	}
	return entities.Vec2{}, nil, false
}

func addDamageEffect(target *entities.Ship, from entities.ObjectSpecifier, turretId string, hp float64, nowMs int64) {
	key := fmt.Sprintf("D:%s:%s", from.Id, turretId)
	for i := range target.LocalEffects {
		if target.LocalEffects[i].Key == key {
			target.LocalEffects[i].Hp += hp
			target.LocalEffects[i].LastTickMs = nowMs
			return
		}
	}
	target.LocalEffects = append(target.LocalEffects, entities.LocalEffect{
		Key:        key,
		Kind:       entities.EffectDamageDone,
		Hp:         hp,
		LastTickMs: nowMs,
	})
}
