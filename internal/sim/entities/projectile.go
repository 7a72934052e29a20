package entities

// ExplosionProps marks that, on expiry or impact, the carrying entity
// should spawn a radial-damage explosion.
type ExplosionProps struct {
	Radius        float64
	Damage        float64
	AppliedForce  float64
}

// ProcessProps decays an entity over time — used by Wreck and by any
// projectile whose life is capped by elapsed ticks rather than impact.
type ProcessProps struct {
	RemainingTicks int64
}

// Expired reports whether the remaining-ticks counter has run out.
func (p ProcessProps) Expired() bool {
	return p.RemainingTicks <= 0
}

// Tick decrements the remaining-ticks counter by delta, floored at 0.
func (p ProcessProps) Tick(delta int64) ProcessProps {
	p.RemainingTicks -= delta
	if p.RemainingTicks < 0 {
		p.RemainingTicks = 0
	}
	return p
}

// Projectile is a fired shot in flight.
type Projectile struct {
	Id        Id
	Spatial   SpatialProps
	Movement  Movement
	Owner     ObjectSpecifier
	Target    ObjectSpecifier
	Damage    float64
	Health    *Health // present only for projectiles that can be shot down
	Expires   *ProcessProps
	Explosion *ExplosionProps
	ToClean   bool
}

func (p *Projectile) Specifier() ObjectSpecifier { return Specifier(ObjectProjectile, p.Id) }

// Wreck is the decaying remnant of a destroyed ship, inheriting a
// scaled-down fraction of the ship's momentum at death.
type Wreck struct {
	Id       Id
	Spatial  SpatialProps
	Velocity Vec2
	Decay    ProcessProps
	ToClean  bool
}

func (w *Wreck) Specifier() ObjectSpecifier { return Specifier(ObjectWreck, w.Id) }

// WreckVelocityScale is the fraction of a destroyed ship's velocity
// inherited by its wreck.
const WreckVelocityScale = 0.3
