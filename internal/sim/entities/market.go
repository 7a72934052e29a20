package entities

// Price is a planet's buy/sell quote for one item type.
type Price struct {
	Sell int32
	Buy  int32
}

// Market holds every planet's prices and ware stock, plus the shared
// countdown to the next price-shake event. It lives on GameState.
type Market struct {
	Prices               map[Id]map[ItemType]Price
	Wares                map[Id]Inventory
	TimeBeforeNextShakeTicks int64
}

// NewMarket builds an empty market whose shake countdown starts at zero.
func NewMarket() Market {
	return Market{
		Prices: make(map[Id]map[ItemType]Price),
		Wares:  make(map[Id]Inventory),
	}
}
