// Package market implements planet trading: default price tables, the
// weighted price-shake event roll, and atomic-per-leg TradeAction
// validation/transfer between a ship's inventory and a planet's wares.
package market

import (
	"errors"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
)

// ShakeIntervalMicro is how often a planet's prices/stock get a price
// event rolled against them.
const ShakeIntervalMicro = 60 * 1000 * 1000

// PriceEvent is one outcome of a market shake.
type PriceEvent uint8

const (
	EventNormalize PriceEvent = iota
	EventFoodShortage
	EventCivilWar
	EventIndustrialBoom
	EventEpidemic
)

var priceEvents = []PriceEvent{EventNormalize, EventFoodShortage, EventCivilWar, EventIndustrialBoom, EventEpidemic}
var priceEventWeights = []float64{70, 10, 5, 10, 5}

// RollPriceEvent performs the weighted roll: Normalize 70%, FoodShortage
// 10%, CivilWar 5%, IndustrialBoom 10%, Epidemic 5%.
func RollPriceEvent(prng *entities.Prng) PriceEvent {
	return entities.WeightedPick(prng, priceEvents, priceEventWeights)
}

// DefaultPrices returns the baseline sell/buy quote for every item type.
func DefaultPrices() map[entities.ItemType]entities.Price {
	return map[entities.ItemType]entities.Price{
		entities.ItemUnknown:         {Sell: 0, Buy: 0},
		entities.ItemCommonMineral:   {Sell: 110, Buy: 90},
		entities.ItemUncommonMineral: {Sell: 220, Buy: 180},
		entities.ItemRareMineral:     {Sell: 540, Buy: 460},
		entities.ItemQuestCargo:      {Sell: 1000, Buy: 0},
		entities.ItemFood:            {Sell: 50, Buy: 40},
		entities.ItemMedicament:      {Sell: 160, Buy: 140},
		entities.ItemHandWeapon:      {Sell: 250, Buy: 200},
	}
}

// DefaultWareQuantities is the baseline stock a fresh planet market holds
// per item type.
func DefaultWareQuantities() map[entities.ItemType]int32 {
	return map[entities.ItemType]int32{
		entities.ItemCommonMineral:   100,
		entities.ItemUncommonMineral: 50,
		entities.ItemRareMineral:     20,
		entities.ItemFood:            200,
		entities.ItemMedicament:      50,
		entities.ItemHandWeapon:      10,
	}
}

func defaultWares(prng *entities.Prng) entities.Inventory {
	quantities := DefaultWareQuantities()
	var inv entities.Inventory
	for _, t := range []entities.ItemType{
		entities.ItemCommonMineral, entities.ItemUncommonMineral, entities.ItemRareMineral,
		entities.ItemFood, entities.ItemMedicament, entities.ItemHandWeapon,
	} {
		if q := quantities[t]; q > 0 {
			inv = inv.Add(entities.NewInventoryItem(prng.Id(), t, q))
		}
	}
	return inv
}

// scaleQuantity replaces an inventory's stock of one item type with that
// type's default quantity times factor, leaving other types untouched; a
// result of zero or less collapses the stack away.
func scaleQuantity(inv entities.Inventory, t entities.ItemType, factor float64) entities.Inventory {
	base := DefaultWareQuantities()[t]
	target := int32(float64(base) * factor)
	existing, _ := inv.Consume(t, inv.QuantityOf(t))
	if target <= 0 {
		return existing
	}
	return existing.Add(entities.InventoryItem{ItemType: t, Quantity: target})
}

func scalePrice(prices map[entities.ItemType]entities.Price, t entities.ItemType, sellFactor, buyFactor float64) {
	base := DefaultPrices()[t]
	prices[t] = entities.Price{
		Sell: int32(float64(base.Sell) * sellFactor),
		Buy:  int32(float64(base.Buy) * buyFactor),
	}
}

// ApplyPriceEvent mutates a planet's own price/ware maps in place according
// to the rolled event, following the five hand-tuned scenarios: food
// shortages spike food prices and drain stock, civil wars additionally
// flood hand weapons and zero out common minerals, industrial booms flood
// common minerals and weapons while food booms, and epidemics zero
// medicament while draining common minerals. Normalize drifts both price
// and stock 10-20% back toward the baseline each time it rolls, rather than
// snapping instantly, so repeated Normalize rolls settle the market over
// several shakes.
func ApplyPriceEvent(prices map[entities.ItemType]entities.Price, wares entities.Inventory, event PriceEvent, prng *entities.Prng) entities.Inventory {
	switch event {
	case EventNormalize:
		return applyNormalize(prices, wares, prng)
	case EventFoodShortage:
		wares = scaleQuantity(wares, entities.ItemFood, 0.3)
		scalePrice(prices, entities.ItemFood, 1.5, 2.5)
		scalePrice(prices, entities.ItemCommonMineral, 0.5, 0.5)
		return wares
	case EventCivilWar:
		wares = scaleQuantity(wares, entities.ItemFood, 0.6)
		scalePrice(prices, entities.ItemFood, 1.5, 2.5)
		wares = scaleQuantity(wares, entities.ItemHandWeapon, 1.5)
		scalePrice(prices, entities.ItemHandWeapon, 2.0, 2.0)
		scalePrice(prices, entities.ItemMedicament, 1.5, 2.5)
		scalePrice(prices, entities.ItemCommonMineral, 0.5, 0.5)
		wares = scaleQuantity(wares, entities.ItemCommonMineral, 0)
		return wares
	case EventIndustrialBoom:
		wares = scaleQuantity(wares, entities.ItemCommonMineral, 3.0)
		scalePrice(prices, entities.ItemCommonMineral, 0.75, 0.25)
		scalePrice(prices, entities.ItemFood, 1.5, 1.5)
		scalePrice(prices, entities.ItemHandWeapon, 0.75, 0.25)
		wares = scaleQuantity(wares, entities.ItemHandWeapon, 1.5)
		return wares
	case EventEpidemic:
		wares = scaleQuantity(wares, entities.ItemMedicament, 0)
		scalePrice(prices, entities.ItemMedicament, 1.5, 2.5)
		scalePrice(prices, entities.ItemFood, 1.5, 2.5)
		scalePrice(prices, entities.ItemHandWeapon, 0.5, 0.5)
		scalePrice(prices, entities.ItemCommonMineral, 0.5, 0.5)
		wares = scaleQuantity(wares, entities.ItemCommonMineral, 0.6)
		return wares
	default:
		return wares
	}
}

const normalizeDriftPercent = 0.10

func applyNormalize(prices map[entities.ItemType]entities.Price, wares entities.Inventory, prng *entities.Prng) entities.Inventory {
	defaults := DefaultPrices()
	for t, price := range prices {
		def := defaults[t]
		price.Sell += int32(float64(def.Sell-price.Sell) * normalizeDriftPercent * 2)
		price.Buy += int32(float64(def.Buy-price.Buy) * normalizeDriftPercent * 2)
		prices[t] = price
	}
	defaultQuantities := DefaultWareQuantities()
	for t, defaultQty := range defaultQuantities {
		current := wares.QuantityOf(t)
		diff := int32(float64(defaultQty-current) * normalizeDriftPercent)
		if diff == 0 {
			continue
		}
		if diff > 0 {
			wares = wares.Add(entities.InventoryItem{ItemType: t, Quantity: diff})
		} else {
			wares, _ = wares.Consume(t, -diff)
		}
	}
	return wares
}

// EnsurePlanetMarket lazily initializes a planet's price/ware entries with
// the default table, a no-op if they already exist.
func EnsurePlanetMarket(m *entities.Market, planetId entities.Id, prng *entities.Prng) {
	if _, ok := m.Prices[planetId]; !ok {
		m.Prices[planetId] = DefaultPrices()
	}
	if _, ok := m.Wares[planetId]; !ok {
		m.Wares[planetId] = defaultWares(prng)
	}
}

// TickShake decrements the shared shake countdown and, once it elapses,
// rolls and applies a price event for every planet with a market entry,
// resetting the countdown.
func TickShake(m *entities.Market, elapsedMicro int64, planetIds []entities.Id, prng *entities.Prng) {
	m.TimeBeforeNextShakeTicks -= elapsedMicro
	if m.TimeBeforeNextShakeTicks > 0 {
		return
	}
	m.TimeBeforeNextShakeTicks = ShakeIntervalMicro
	for _, id := range planetIds {
		EnsurePlanetMarket(m, id, prng)
		event := RollPriceEvent(prng)
		m.Wares[id] = ApplyPriceEvent(m.Prices[id], m.Wares[id], event, prng)
	}
}

// TradeLeg is one item-type/quantity pair within a TradeAction.
type TradeLeg struct {
	Item     entities.ItemType
	Quantity int32
}

// TradeAction is a player's proposed trade at a docked planet: items sold
// to the planet and items bought from it, resolved in a single call.
type TradeAction struct {
	PlanetId entities.Id
	Sells    []TradeLeg
	Buys     []TradeLeg
}

var (
	ErrUnknownPlanetMarket = errors.New("market: planet has no market entry")
	ErrInsufficientCargo   = errors.New("market: ship lacks the quantity being sold")
	ErrInsufficientStock   = errors.New("market: planet lacks the quantity being bought")
	ErrInsufficientFunds   = errors.New("market: player cannot afford this buy")
)

// AttemptTrade validates and executes every leg of a TradeAction atomically
// per leg (each leg either fully succeeds or is rejected outright; a
// rejected leg does not roll back legs that already succeeded, matching
// the original's "skip and warn" behavior for an individual invalid sell or
// buy within an otherwise-valid trade).
func AttemptTrade(m *entities.Market, player *entities.Player, ship *entities.Ship, action TradeAction) error {
	prices, ok := m.Prices[action.PlanetId]
	if !ok {
		return ErrUnknownPlanetMarket
	}
	wares := m.Wares[action.PlanetId]

	for _, sell := range action.Sells {
		price, ok := prices[sell.Item]
		if !ok || sell.Quantity <= 0 {
			continue
		}
		if ship.Inventory.QuantityOf(sell.Item) < sell.Quantity {
			continue
		}
		ship.Inventory, _ = ship.Inventory.Consume(sell.Item, sell.Quantity)
		wares = wares.Add(entities.InventoryItem{ItemType: sell.Item, Quantity: sell.Quantity})
		player.Money += price.Buy * sell.Quantity
	}

	for _, buy := range action.Buys {
		price, ok := prices[buy.Item]
		if !ok || buy.Quantity <= 0 {
			continue
		}
		if wares.QuantityOf(buy.Item) < buy.Quantity {
			continue
		}
		cost := price.Sell * buy.Quantity
		if player.Money < cost {
			continue
		}
		wares, _ = wares.Consume(buy.Item, buy.Quantity)
		ship.Inventory = ship.Inventory.Add(entities.InventoryItem{ItemType: buy.Item, Quantity: buy.Quantity})
		player.Money -= cost
	}

	m.Wares[action.PlanetId] = wares
	return nil
}
