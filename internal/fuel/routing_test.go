package fuel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/apogee/internal/fuel"
	"github.com/san-kum/apogee/internal/vessel"
)

var (
	podSpec    = &vessel.Spec{Name: "pod", Class: vessel.Pod, Mass: 800}
	tankSpec   = &vessel.Spec{Name: "tank", Class: vessel.Tank, Mass: 250, FuelCapacity: 500}
	engSpec    = &vessel.Spec{Name: "engine", Class: vessel.Engine, Mass: 1200, MaxThrust: 215_000, BurnRate: 80}
	decSpec    = &vessel.Spec{Name: "dec", Class: vessel.Decoupler, Mass: 50}
	radDecSpec = &vessel.Spec{Name: "raddec", Class: vessel.Decoupler, Mass: 40, Radial: true}
	srbSpec    = &vessel.Spec{Name: "srb", Class: vessel.Engine, Mass: 1500, MaxThrust: 162_000, BurnRate: 60, FuelCapacity: 360}
)

func buildCraft(parts ...*vessel.Part) *vessel.Vessel {
	v, err := vessel.Build(parts)
	Expect(err).NotTo(HaveOccurred())
	return v
}

var _ = Describe("FindSources", func() {
	It("finds a tank through the stack", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
		)
		sources := fuel.FindSources(v, v.Part(3))
		Expect(sources).To(HaveLen(1))
		Expect(sources[0].Part.ID).To(Equal(2))
		Expect(sources[0].Distance).To(Equal(1))
	})

	It("counts an engine's internal tank at distance zero", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: srbSpec, ParentID: 1, Fuel: 360},
		)
		sources := fuel.FindSources(v, v.Part(2))
		Expect(sources).To(HaveLen(1))
		Expect(sources[0].Part.ID).To(Equal(2))
		Expect(sources[0].Distance).To(Equal(0))
	})

	It("measures hop distance through intermediate parts", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: tankSpec, ParentID: 2, Fuel: 500},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 3},
		)
		sources := fuel.FindSources(v, v.Part(4))
		Expect(sources).To(HaveLen(2))
		Expect(sources[0].Part.ID).To(Equal(3))
		Expect(sources[0].Distance).To(Equal(1))
		Expect(sources[1].Part.ID).To(Equal(2))
		Expect(sources[1].Distance).To(Equal(2))
	})

	It("never crosses a stack decoupler", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: decSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: tankSpec, ParentID: 3, Fuel: 500},
			&vessel.Part{ID: 5, Spec: engSpec, ParentID: 4},
		)
		sources := fuel.FindSources(v, v.Part(5))
		Expect(sources).To(HaveLen(1))
		Expect(sources[0].Part.ID).To(Equal(4))
	})

	It("treats radial decouplers as sealed joints too", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: radDecSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: srbSpec, ParentID: 3, Fuel: 360},
		)
		sources := fuel.FindSources(v, v.Part(4))
		Expect(sources).To(HaveLen(1))
		Expect(sources[0].Part.ID).To(Equal(4))
		Expect(sources[0].Distance).To(Equal(0))
	})

	It("routes across sibling branches through the shared parent", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 1},
		)
		sources := fuel.FindSources(v, v.Part(3))
		Expect(sources).To(HaveLen(1))
		Expect(sources[0].Part.ID).To(Equal(2))
		Expect(sources[0].Distance).To(Equal(2))
	})
})

var _ = Describe("StageBlocked", func() {
	It("blocks an engine with a stack decoupler below it", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: decSpec, ParentID: 3},
			&vessel.Part{ID: 5, Spec: tankSpec, ParentID: 4, Fuel: 500},
			&vessel.Part{ID: 6, Spec: engSpec, ParentID: 5},
		)
		Expect(fuel.StageBlocked(v, v.Part(3))).To(BeTrue())
		Expect(fuel.StageBlocked(v, v.Part(6))).To(BeFalse())
	})

	It("ignores radial decouplers", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: radDecSpec, ParentID: 3},
			&vessel.Part{ID: 5, Spec: srbSpec, ParentID: 4, Fuel: 360},
		)
		Expect(fuel.StageBlocked(v, v.Part(3))).To(BeFalse())
	})
})
