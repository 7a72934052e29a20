package modes

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestModes(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Modes Suite")
}

var _ = Describe("Apply cargo rush", Label("scope:unit", "layer:sim", "dep:none", "b:modes", "r:high"), func() {
	It("assigns a fresh quest to a player with a ship and no quest", func() {
		shipId := entities.NewRandomId()
		state := &entities.GameState{
			Mode:      entities.ModeCargoRush,
			Players:   []entities.Player{{Id: entities.NewRandomId(), ShipId: &shipId}},
			Locations: []entities.Location{{Planets: []entities.PlanetV2{{Id: entities.NewRandomId()}, {Id: entities.NewRandomId()}}}},
		}
		Apply(state, 16000, entities.NewPrng(1))
		Expect(state.Players[0].Quest).NotTo(BeNil())
		Expect(state.Players[0].Quest.Stage).To(Equal(entities.QuestStarted))
	})

	It("pays out and reassigns once a quest is delivered", func() {
		shipId := entities.NewRandomId()
		pid := entities.NewRandomId()
		state := &entities.GameState{
			Mode: entities.ModeCargoRush,
			Players: []entities.Player{{
				Id: pid, ShipId: &shipId, Money: 0,
				Quest: &entities.Quest{Active: true, Stage: entities.QuestDelivered, Reward: 700},
			}},
			Locations: []entities.Location{{Planets: []entities.PlanetV2{{Id: entities.NewRandomId()}, {Id: entities.NewRandomId()}}}},
		}
		events := Apply(state, 16000, entities.NewPrng(1))
		Expect(state.Players[0].Money).To(Equal(int32(700)))
		Expect(events).To(HaveLen(1))
		Expect(events[0].Kind).To(Equal(entities.EventQuestCompleted))
	})
})

var _ = Describe("Apply pirate defence", Label("scope:unit", "layer:sim", "dep:none", "b:modes", "r:high"), func() {
	It("ends the game once every defender ship is dead", func() {
		state := &entities.GameState{
			Mode: entities.ModePirateDefence,
			Locations: []entities.Location{{Ships: []entities.Ship{
				{PlayerId: &entities.Id{}, Health: entities.Health{Current: 0, Max: 100}},
			}}},
		}
		Apply(state, 16000, entities.NewPrng(1))
		Expect(state.GameOver).To(BeTrue())
	})
})
