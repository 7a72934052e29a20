package autofocus

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	"github.com/gorbit/orbitalrush/internal/sim/spatial"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAutofocus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Autofocus Suite")
}

var _ = Describe("UpdateLocation", Label("scope:unit", "layer:sim", "dep:none", "b:autofocus", "r:med"), func() {
	It("picks the nearest other object and never the ship itself", func() {
		shipA := entities.Ship{Id: entities.NewRandomId(), Spatial: entities.SpatialProps{Position: entities.Zero()}}
		shipB := entities.Ship{Id: entities.NewRandomId(), Spatial: entities.SpatialProps{Position: entities.NewVec2(5, 0)}}
		mineral := entities.Mineral{Id: entities.NewRandomId(), Position: entities.NewVec2(20, 0)}

		loc := &entities.Location{Ships: []entities.Ship{shipA, shipB}, Minerals: []entities.Mineral{mineral}}
		index := spatial.Build(spatial.PointsFromLocation(loc))

		UpdateLocation(loc, index)

		Expect(loc.Ships[0].AutofocusTarget).NotTo(BeNil())
		Expect(*loc.Ships[0].AutofocusTarget).To(Equal(shipB.Specifier()))
	})

	It("leaves the target nil when nothing is within radius", func() {
		lone := entities.Ship{Id: entities.NewRandomId(), Spatial: entities.SpatialProps{Position: entities.Zero()}}
		far := entities.Mineral{Id: entities.NewRandomId(), Position: entities.NewVec2(1000, 1000)}
		loc := &entities.Location{Ships: []entities.Ship{lone}, Minerals: []entities.Mineral{far}}
		index := spatial.Build(spatial.PointsFromLocation(loc))

		UpdateLocation(loc, index)
		Expect(loc.Ships[0].AutofocusTarget).To(BeNil())
	})
})
