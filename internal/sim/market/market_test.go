package market

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestMarket(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Market Suite")
}

var _ = Describe("RollPriceEvent", Label("scope:unit", "layer:sim", "dep:none", "b:market", "r:med"), func() {
	It("always returns one of the five known events", func() {
		prng := entities.NewPrng(1)
		for i := 0; i < 200; i++ {
			event := RollPriceEvent(prng)
			Expect(event).To(BeNumerically(">=", EventNormalize))
			Expect(event).To(BeNumerically("<=", EventEpidemic))
		}
	})
})

var _ = Describe("EnsurePlanetMarket", Label("scope:unit", "layer:sim", "dep:none", "b:market", "r:high"), func() {
	It("seeds default prices and wares exactly once", func() {
		m := entities.NewMarket()
		planetId := entities.NewRandomId()
		prng := entities.NewPrng(1)
		EnsurePlanetMarket(&m, planetId, prng)
		Expect(m.Prices[planetId]).To(HaveLen(8))
		firstWares := m.Wares[planetId]
		EnsurePlanetMarket(&m, planetId, prng)
		Expect(m.Wares[planetId]).To(Equal(firstWares))
	})
})

var _ = Describe("AttemptTrade", Label("scope:unit", "layer:sim", "dep:none", "b:market", "r:high"), func() {
	var (
		m        entities.Market
		planetId entities.Id
		player   *entities.Player
		ship     *entities.Ship
	)

	BeforeEach(func() {
		m = entities.NewMarket()
		planetId = entities.NewRandomId()
		prng := entities.NewPrng(1)
		EnsurePlanetMarket(&m, planetId, prng)
		player = &entities.Player{Money: 1000}
		ship = entities.NewShip(entities.NewRandomId(), entities.Zero(), 100)
		ship.Inventory = ship.Inventory.Add(entities.InventoryItem{ItemType: entities.ItemCommonMineral, Quantity: 10})
	})

	It("pays the player on a valid sell and stocks the planet", func() {
		err := AttemptTrade(&m, player, ship, TradeAction{PlanetId: planetId, Sells: []TradeLeg{{Item: entities.ItemCommonMineral, Quantity: 5}}})
		Expect(err).NotTo(HaveOccurred())
		Expect(ship.Inventory.QuantityOf(entities.ItemCommonMineral)).To(Equal(int32(5)))
		Expect(player.Money).To(BeNumerically(">", 1000))
	})

	It("skips a sell leg the ship can't cover", func() {
		before := player.Money
		err := AttemptTrade(&m, player, ship, TradeAction{PlanetId: planetId, Sells: []TradeLeg{{Item: entities.ItemRareMineral, Quantity: 5}}})
		Expect(err).NotTo(HaveOccurred())
		Expect(player.Money).To(Equal(before))
	})

	It("rejects a buy the player can't afford", func() {
		player.Money = 0
		err := AttemptTrade(&m, player, ship, TradeAction{PlanetId: planetId, Buys: []TradeLeg{{Item: entities.ItemFood, Quantity: 5}}})
		Expect(err).NotTo(HaveOccurred())
		Expect(ship.Inventory.QuantityOf(entities.ItemFood)).To(Equal(int32(0)))
	})

	It("errors for a planet with no market entry", func() {
		err := AttemptTrade(&m, player, ship, TradeAction{PlanetId: entities.NewRandomId()})
		Expect(err).To(MatchError(ErrUnknownPlanetMarket))
	})
})
