package spatial

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSpatial(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Spatial Suite")
}

func pt(x, y float64) Point {
	return Point{Spec: entities.Specifier(entities.ObjectShip, entities.NewRandomId()), Pos: entities.NewVec2(x, y)}
}

var _ = Describe("Index", Label("scope:unit", "layer:sim", "dep:none", "b:spatial-index", "r:high"), func() {
	It("returns only points within the query radius, nearest first", func() {
		near := pt(1, 0)
		mid := pt(10, 0)
		far := pt(1000, 1000)
		idx := Build([]Point{far, mid, near})

		found := idx.WithinRadius(entities.Zero(), 20)
		Expect(found).To(HaveLen(2))
		Expect(found[0].Pos).To(Equal(near.Pos))
		Expect(found[1].Pos).To(Equal(mid.Pos))
	})

	It("spans multiple grid cells when the radius crosses cell boundaries", func() {
		a := pt(-60, 0)
		b := pt(60, 0)
		idx := Build([]Point{a, b})
		found := idx.WithinRadius(entities.Zero(), 100)
		Expect(found).To(HaveLen(2))
	})

	It("returns points inside an AABB query", func() {
		inside := pt(5, 5)
		outside := pt(500, 500)
		idx := Build([]Point{inside, outside})
		found := idx.WithinAABB(entities.AABBAround(entities.Zero(), 10))
		Expect(found).To(HaveLen(1))
		Expect(found[0].Pos).To(Equal(inside.Pos))
	})

	It("flattens a location's entities into indexable points", func() {
		loc := &entities.Location{
			Star:   &entities.Star{Id: entities.NewRandomId()},
			Ships:  []entities.Ship{{Id: entities.NewRandomId()}},
			Minerals: []entities.Mineral{{Id: entities.NewRandomId(), Position: entities.NewVec2(3, 3)}},
		}
		points := PointsFromLocation(loc)
		Expect(points).To(HaveLen(3))
	})
})
