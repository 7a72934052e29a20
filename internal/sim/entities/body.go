package entities

// Body is the shared contract for anything that can anchor an orbit or be
// anchored to one: stars, planets, and asteroids. Rather than virtual
// inheritance, heterogeneous bodies share this interface and are walked by
// id through GameStateIndexes — never by pointer.
type Body interface {
	Specifier() ObjectSpecifier
	GetSpatial() SpatialProps
	SetSpatial(SpatialProps)
	GetMovement() Movement
	SetMovement(Movement)
	AnchorTier() uint32
}

// Star is the sole gravity/orbit root of a Location.
type Star struct {
	Id       Id
	Name     string
	Radius   float64
	Spatial  SpatialProps
	Movement Movement // always MovementNone for a Star
}

func (s *Star) Specifier() ObjectSpecifier   { return Specifier(ObjectStar, s.Id) }
func (s *Star) GetSpatial() SpatialProps     { return s.Spatial }
func (s *Star) SetSpatial(sp SpatialProps)   { s.Spatial = sp }
func (s *Star) GetMovement() Movement        { return s.Movement }
func (s *Star) SetMovement(m Movement)       { s.Movement = m }
func (s *Star) AnchorTier() uint32           { return 0 }

// PlanetV2 is a planet or moon; anchor_tier is 1 for a planet orbiting the
// star directly, 2 for a moon orbiting a planet.
type PlanetV2 struct {
	Id       Id
	Name     string
	Radius   float64
	Tier     uint32 // 1 = orbits the star directly, 2 = orbits a planet
	Spatial  SpatialProps
	Movement Movement // always MovementRadialMonotonous
}

func (p *PlanetV2) Specifier() ObjectSpecifier { return Specifier(ObjectPlanet, p.Id) }
func (p *PlanetV2) GetSpatial() SpatialProps   { return p.Spatial }
func (p *PlanetV2) SetSpatial(sp SpatialProps) { p.Spatial = sp }
func (p *PlanetV2) GetMovement() Movement      { return p.Movement }
func (p *PlanetV2) SetMovement(m Movement)     { p.Movement = m }
func (p *PlanetV2) AnchorTier() uint32         { return p.Tier }

// Asteroid is a single tractorable/shootable rock, usually spawned as part
// of an AsteroidBelt. Its anchor/period rules mirror PlanetV2.
type Asteroid struct {
	Id       Id
	Spatial  SpatialProps
	Movement Movement
	Health   *Health
}

func (a *Asteroid) Specifier() ObjectSpecifier { return Specifier(ObjectAsteroid, a.Id) }
func (a *Asteroid) GetSpatial() SpatialProps   { return a.Spatial }
func (a *Asteroid) SetSpatial(sp SpatialProps) { a.Spatial = sp }
func (a *Asteroid) GetMovement() Movement      { return a.Movement }
func (a *Asteroid) SetMovement(m Movement)     { a.Movement = m }
func (a *Asteroid) AnchorTier() uint32         { return 1 }

// AsteroidBelt is a ring of asteroids anchored to the star, orbiting as one
// rigid body (see DESIGN.md: the belt itself advances like a
// RadialMonotonous body and each member Asteroid's absolute position is the
// belt's anchor position plus the asteroid's fixed offset within the belt,
// so the belt rotates rigidly rather than each rock orbiting
// independently).
type AsteroidBelt struct {
	Id            Id
	Spatial       SpatialProps
	Movement      Movement
	Width         float64
	MiddleRadius  float64
	Asteroids     []Asteroid
	// Offsets holds each asteroid's fixed relative offset from the belt's
	// own position, established at spawn time and preserved for the
	// belt's lifetime — this is what "rigid" means here.
	Offsets []Vec2
}

func (b *AsteroidBelt) Specifier() ObjectSpecifier { return Specifier(ObjectAsteroidBelt, b.Id) }
func (b *AsteroidBelt) GetSpatial() SpatialProps   { return b.Spatial }
func (b *AsteroidBelt) SetSpatial(sp SpatialProps) { b.Spatial = sp }
func (b *AsteroidBelt) GetMovement() Movement      { return b.Movement }
func (b *AsteroidBelt) SetMovement(m Movement)     { b.Movement = m }
func (b *AsteroidBelt) AnchorTier() uint32         { return 1 }
