package worldgen

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWorldgen(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Worldgen Suite")
}

var _ = Describe("GenerateBelt", Label("scope:unit", "layer:sim", "dep:none", "b:worldgen", "r:med"), func() {
	spec := BeltSpec{
		Anchor:          entities.Specifier(entities.ObjectStar, entities.NewRandomId()),
		MiddleRadius:    500,
		Width:           50,
		Count:           12,
		FullPeriodTicks: 10000,
		HealthPerRock:   20,
	}

	It("generates the requested count of asteroids with offsets", func() {
		belt := GenerateBelt(42, spec, 0, entities.NewPrng(1))
		Expect(belt.Asteroids).To(HaveLen(12))
		Expect(belt.Offsets).To(HaveLen(12))
		for _, a := range belt.Asteroids {
			Expect(a.Health).NotTo(BeNil())
		}
	})

	It("is deterministic for the same seed", func() {
		b1 := GenerateBelt(42, spec, 0, entities.NewPrng(7))
		b2 := GenerateBelt(42, spec, 0, entities.NewPrng(7))
		Expect(b1.Offsets).To(Equal(b2.Offsets))
	})
})
