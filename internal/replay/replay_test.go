package replay

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReplay(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Replay Suite")
}

var _ = Describe("Diff and Apply", Label("scope:unit", "layer:replay", "dep:none", "b:replay", "r:high"), func() {
	It("round-trips a modified map field", func() {
		a := map[string]interface{}{"ticks": float64(1), "name": "alice"}
		b := map[string]interface{}{"ticks": float64(2), "name": "alice"}

		ops := Diff(a, b)
		Expect(ops).To(HaveLen(1))
		Expect(ops[0].Kind).To(Equal(OpModified))

		result, err := Apply(a, ops)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(b))
	})

	It("emits Add for a new key and Removed for a dropped key", func() {
		a := map[string]interface{}{"x": float64(1)}
		b := map[string]interface{}{"y": float64(2)}

		ops := Diff(a, b)
		kinds := map[OpKind]bool{}
		for _, op := range ops {
			kinds[op.Kind] = true
		}
		Expect(kinds).To(HaveKey(OpAdd))
		Expect(kinds).To(HaveKey(OpRemoved))

		result, err := Apply(a, ops)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(b))
	})

	It("orders same-parent array removals in descending index order", func() {
		a := []interface{}{"keep", "drop-1", "drop-2"}
		b := []interface{}{"keep"}

		ops := Diff(a, b)
		Expect(ops).To(HaveLen(2))
		Expect(ops[0].Path).To(Equal([]string{"2"}))
		Expect(ops[1].Path).To(Equal([]string{"1"}))

		result, err := Apply(a, ops)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(b))
	})

	It("appends new array elements in ascending order", func() {
		a := []interface{}{"a"}
		b := []interface{}{"a", "b", "c"}

		ops := Diff(a, b)
		result, err := Apply(a, ops)
		Expect(err).NotTo(HaveOccurred())
		Expect(result).To(Equal(b))
	})

	It("rewinds through a chain of frames to an intermediate tick", func() {
		t0 := map[string]interface{}{"ticks": float64(0)}
		t1 := map[string]interface{}{"ticks": float64(1)}
		t2 := map[string]interface{}{"ticks": float64(2)}

		frames := []Frame{
			{Tick: 1, Ops: Diff(t0, t1)},
			{Tick: 2, Ops: Diff(t1, t2)},
		}

		at1, err := RewindTo(t0, frames, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(at1).To(Equal(t1))

		at2, err := RewindTo(t0, frames, 5)
		Expect(err).NotTo(HaveOccurred())
		Expect(at2).To(Equal(t2))
	})
})
