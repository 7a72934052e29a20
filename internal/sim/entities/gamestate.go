package entities

// GameMode selects which mode-rules package hooks into ship spawn/dock/death.
type GameMode uint8

const (
	ModeSandbox GameMode = iota
	ModeCargoRush
	ModePirateDefence
	ModeTutorial
)

// GameState is the single root of one Room's simulated world. It
// owns every entity except the orbital phase cache, which the Room holds
// separately so it can persist (and be shared read-only) across the
// GameState values a replay reconstructs.
type GameState struct {
	Id     Id
	Ticks  int64
	Millis int64

	Mode   GameMode
	Paused bool
	GameOver bool
	Winner   *Id // player id, if GameOver and the mode has a winner concept

	Locations []Location
	Players   []Player
	Market    Market

	// Events is the intra-tick event queue: long actions
	// and other sub-phases append here during a tick, and the dialogue /
	// mode-rules sub-phases drain it deterministically within the same
	// tick, never across ticks.
	Events []Event
}

// NewGameState builds an empty GameState ready for a Room to populate.
func NewGameState(id Id) GameState {
	return GameState{Id: id, Market: NewMarket()}
}
