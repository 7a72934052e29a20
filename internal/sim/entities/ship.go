package entities

// Turret is a weapon mount on a Ship.
type Turret struct {
	Id                 string
	Damage             float64
	Range              float64
	CooldownTicks      int64
	CooldownRemaining  int64
	ProjectileTemplate string // empty means "instant hitscan shoot", non-empty names a projectile template for Launch
	WindupMicro        int64  // duration of the Shoot long action for this turret
}

// ReadyToFire reports whether the turret's cooldown has elapsed.
func (t Turret) ReadyToFire() bool {
	return t.CooldownRemaining <= 0
}

// ManualMovementMarker tracks a single gas/turn input and the tick it was
// last (re-)asserted, so the throttle-drop policy can detect a stale
// marker and drop it.
type ManualMovementMarker struct {
	Sign         int8 // -1, 0, or 1
	SetAtTick    int64
	Set          bool
}

// Ship is a player- or bot-controlled vessel.
type Ship struct {
	Id       Id
	PlayerId *Id // nil for unowned/derelict ships
	Spatial  SpatialProps
	Movement Movement // MovementShipMonotonous or MovementShipAccelerated
	Health   Health
	Inventory Inventory
	Turrets  []Turret

	TractorTarget *ObjectSpecifier

	// Navigation (trajectory following).
	NavigateTarget *Vec2
	Trajectory     []Vec2

	// Manual flight markers.
	Gas              ManualMovementMarker
	Turn             ManualMovementMarker
	SkipThrottleDrop bool

	DockedAtPlanetId *Id

	AutofocusTarget *ObjectSpecifier

	LocalEffects        []LocalEffect
	LocalEffectsCounter uint32

	ToClean bool
}

func (s *Ship) Specifier() ObjectSpecifier { return Specifier(ObjectShip, s.Id) }
func (s *Ship) GetSpatial() SpatialProps   { return s.Spatial }
func (s *Ship) SetSpatial(sp SpatialProps) { s.Spatial = sp }
func (s *Ship) GetMovement() Movement      { return s.Movement }
func (s *Ship) SetMovement(m Movement)     { s.Movement = m }

// NewShip builds a fresh ship at the given position with full health and no
// inventory, turrets attached by the caller.
func NewShip(id Id, pos Vec2, maxHealth float64) *Ship {
	return &Ship{
		Id:      id,
		Spatial: SpatialProps{Position: pos},
		Health:  NewHealth(maxHealth),
	}
}

// FindTurret returns the turret with the given id, or nil.
func (s *Ship) FindTurret(turretId string) *Turret {
	for i := range s.Turrets {
		if s.Turrets[i].Id == turretId {
			return &s.Turrets[i]
		}
	}
	return nil
}

// LocalEffectKind tags a LocalEffect's nature.
type LocalEffectKind uint8

const (
	EffectDamageDone LocalEffectKind = iota
	EffectHeal
	EffectPickup
)

// LocalEffect is a transient, client-facing annotation (a floating damage
// number, a heal sparkle) keyed so repeated hits from the same
// (from,to,extra) accumulate rather than spawning a new effect each tick.
type LocalEffect struct {
	Key        string
	Kind       LocalEffectKind
	Hp         float64
	Text       string
	LastTickMs int64
}

// ExpireLocalEffects drops effects whose last update is older than maxAgeMs.
func ExpireLocalEffects(effects []LocalEffect, nowMs, maxAgeMs int64) []LocalEffect {
	out := effects[:0:0]
	for _, e := range effects {
		if nowMs-e.LastTickMs <= maxAgeMs {
			out = append(out, e)
		}
	}
	return out
}
