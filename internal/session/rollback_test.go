package session

import (
	"testing"

	"github.com/gorbit/orbitalrush/internal/sim/entities"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRollback(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rollback Infrastructure Suite")
}

func newStateWithMoney(money int32) entities.GameState {
	state := entities.NewGameState(entities.NewRandomId())
	state.Players = []entities.Player{{Id: entities.NewRandomId(), Money: money}}
	return state
}

var _ = Describe("Rollback Infrastructure", Label("scope:unit", "loop:g3-orch", "layer:sim", "double:fake-io", "b:rollback-infrastructure", "r:medium"), func() {
	Describe("Snapshot Capture and Restore", func() {
		It("captures a snapshot and restores the state at that tick", func() {
			clock := NewFakeClock()
			initial := newStateWithMoney(100)

			manager, err := NewSnapshotManager(initial)
			Expect(err).NotTo(HaveOccurred())

			initial.Ticks = 5
			initial.Players[0].Money = 100
			snapshot, err := manager.CaptureSnapshot(initial, 5, clock)
			Expect(err).NotTo(HaveOccurred())
			Expect(snapshot.Tick).To(Equal(int64(5)))

			// Advance the live state well past the captured tick.
			advanced := initial
			advanced.Ticks = 10
			advanced.Players[0].Money = 999
			_, err = manager.CaptureSnapshot(advanced, 10, clock)
			Expect(err).NotTo(HaveOccurred())

			restored, err := manager.RestoreSnapshot(snapshot)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.Ticks).To(Equal(int64(5)))
			Expect(restored.Players[0].Money).To(Equal(int32(100)))
		})

		It("reconstructs an arbitrary earlier tick via GetStateAt", func() {
			clock := NewFakeClock()
			initial := newStateWithMoney(0)
			manager, err := NewSnapshotManager(initial)
			Expect(err).NotTo(HaveOccurred())

			for tick := int64(1); tick <= 3; tick++ {
				state := initial
				state.Ticks = tick
				state.Players[0].Money = int32(tick * 10)
				_, err := manager.CaptureSnapshot(state, tick, clock)
				Expect(err).NotTo(HaveOccurred())
			}

			atTickTwo, err := manager.GetStateAt(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(atTickTwo.Ticks).To(Equal(int64(2)))
			Expect(atTickTwo.Players[0].Money).To(Equal(int32(20)))
		})

		It("invokes hooks around capture and restore", func() {
			clock := NewFakeClock()
			initial := newStateWithMoney(0)
			manager, err := NewSnapshotManager(initial)
			Expect(err).NotTo(HaveOccurred())

			var before, after int
			manager.RegisterHook(hookFuncs{
				before: func(*Snapshot) { before++ },
				after:  func(*Snapshot) { after++ },
			})

			state := initial
			state.Ticks = 1
			snapshot, err := manager.CaptureSnapshot(state, 1, clock)
			Expect(err).NotTo(HaveOccurred())
			Expect(before).To(Equal(1))

			_, err = manager.RestoreSnapshot(snapshot)
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(Equal(1))
		})
	})

	Describe("ClearSnapshots", func() {
		It("drops prior history and reseeds the keyframe from current", func() {
			clock := NewFakeClock()
			initial := newStateWithMoney(0)
			manager, err := NewSnapshotManager(initial)
			Expect(err).NotTo(HaveOccurred())

			state := initial
			state.Ticks = 1
			_, err = manager.CaptureSnapshot(state, 1, clock)
			Expect(err).NotTo(HaveOccurred())

			reseedAt := initial
			reseedAt.Ticks = 7
			reseedAt.Players[0].Money = 42
			Expect(manager.ClearSnapshots(reseedAt)).To(Succeed())

			restored, err := manager.GetStateAt(7)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.Ticks).To(Equal(int64(7)))
			Expect(restored.Players[0].Money).To(Equal(int32(42)))

			// Tick 1's history is gone: with the frame chain reset, asking
			// for tick 1 returns the reseeded keyframe without an error.
			_, err = manager.GetStateAt(1)
			Expect(err).NotTo(HaveOccurred())
		})
	})
})

type hookFuncs struct {
	before func(*Snapshot)
	after  func(*Snapshot)
}

func (h hookFuncs) BeforeSnapshot(s *Snapshot) { h.before(s) }
func (h hookFuncs) AfterRestore(s *Snapshot)   { h.after(s) }
