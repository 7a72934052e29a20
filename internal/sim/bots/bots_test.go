package bots

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/dialogue"
	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestBots(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Bots Suite")
}

var _ = Describe("Act", Label("scope:unit", "layer:sim", "dep:none", "b:bots", "r:high"), func() {
	It("does nothing for a player with no ship", func() {
		bot := Bot{Id: entities.NewRandomId()}
		state := &entities.GameState{Players: []entities.Player{{Id: bot.Id}}}
		_, actions := Act(bot, state, 16000, dialogue.CompiledTable{}, false)
		Expect(actions).To(BeEmpty())
	})

	It("requests navigation to the pickup planet when the quest hasn't started pickup", func() {
		shipId := entities.NewRandomId()
		bot := Bot{Id: entities.NewRandomId()}
		pickup := entities.NewRandomId()
		state := &entities.GameState{
			Players: []entities.Player{{
				Id: bot.Id, ShipId: &shipId,
				Quest: &entities.Quest{Active: true, Stage: entities.QuestStarted, PickupPlanetId: pickup},
			}},
			Locations: []entities.Location{{Ships: []entities.Ship{{Id: shipId}}}},
		}
		_, actions := Act(bot, state, 16000, dialogue.CompiledTable{}, false)
		Expect(actions).To(HaveLen(1))
		Expect(actions[0].Kind).To(Equal(ActionDockNavigate))
		Expect(actions[0].TargetPlanetId).To(Equal(pickup))
	})
})
