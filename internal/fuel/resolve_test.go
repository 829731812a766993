package fuel_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/apogee/internal/fuel"
	"github.com/san-kum/apogee/internal/vessel"
)

var params = fuel.Params{ThrottleEpsilon: 1e-3, MinSupplyRatio: 0.01}

var _ = Describe("Resolve", func() {
	It("burns fuel and produces full thrust at full throttle", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
		)
		burn := fuel.Resolve(v, 1.0, 1.0, params)

		Expect(burn.Thrust).To(BeNumerically("~", 215_000, 1e-6))
		Expect(burn.Consumed).To(BeNumerically("~", 80, 1e-9))
		Expect(v.Part(2).Fuel).To(BeNumerically("~", 420, 1e-9))
		Expect(v.Part(3).Thrusting).To(BeTrue())
	})

	It("scales thrust and burn with throttle", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
		)
		burn := fuel.Resolve(v, 0.5, 1.0, params)

		Expect(burn.Thrust).To(BeNumerically("~", 107_500, 1e-6))
		Expect(burn.Consumed).To(BeNumerically("~", 40, 1e-9))
	})

	It("treats near-zero throttle as shutdown", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
		)
		v.Part(3).Thrusting = true
		burn := fuel.Resolve(v, 1e-4, 1.0, params)

		Expect(burn.Thrust).To(BeZero())
		Expect(burn.Consumed).To(BeZero())
		Expect(v.Part(2).Fuel).To(BeNumerically("~", 500, 1e-9))
		Expect(v.Part(3).Thrusting).To(BeFalse())
	})

	It("drains a tier in proportion to fuel level", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 100},
			&vessel.Part{ID: 3, Spec: tankSpec, ParentID: 1, Fuel: 50},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 1},
		)
		// Demand 30 kg against 100 and 50 leaves 80 and 40.
		fuel.Resolve(v, 1.0, 0.375, params)

		Expect(v.Part(2).Fuel).To(BeNumerically("~", 80, 1e-9))
		Expect(v.Part(3).Fuel).To(BeNumerically("~", 40, 1e-9))
	})

	It("drains the farthest tier first", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 100},
			&vessel.Part{ID: 3, Spec: tankSpec, ParentID: 2, Fuel: 100},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 3},
		)
		// Demand 50 kg comes entirely out of the far tank.
		fuel.Resolve(v, 1.0, 0.625, params)

		Expect(v.Part(2).Fuel).To(BeNumerically("~", 50, 1e-9))
		Expect(v.Part(3).Fuel).To(BeNumerically("~", 100, 1e-9))
	})

	It("spills into nearer tiers when the far tier runs dry", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 30},
			&vessel.Part{ID: 3, Spec: tankSpec, ParentID: 2, Fuel: 100},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 3},
		)
		fuel.Resolve(v, 1.0, 0.625, params)

		Expect(v.Part(2).Fuel).To(BeNumerically("~", 0, 1e-9))
		Expect(v.Part(3).Fuel).To(BeNumerically("~", 80, 1e-9))
	})

	It("drains an engine's internal tank last", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 100},
			&vessel.Part{ID: 3, Spec: srbSpec, ParentID: 2, Fuel: 360},
		)
		fuel.Resolve(v, 1.0, 1.0, params)

		Expect(v.Part(2).Fuel).To(BeNumerically("~", 40, 1e-9))
		Expect(v.Part(3).Fuel).To(BeNumerically("~", 360, 1e-9))
	})

	It("shares an oversubscribed tank fairly between engines", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 50},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 2},
		)
		// Each engine wants 80 kg; the tank holds 50, so each gets 25.
		burn := fuel.Resolve(v, 1.0, 1.0, params)

		Expect(v.Part(2).Fuel).To(BeNumerically("~", 0, 1e-9))
		Expect(burn.Consumed).To(BeNumerically("~", 50, 1e-9))
		ratio := 25.0 / 80.0
		Expect(burn.Thrust).To(BeNumerically("~", 2*215_000*ratio, 1e-6))
		Expect(v.Part(3).Thrusting).To(BeTrue())
		Expect(v.Part(4).Thrusting).To(BeTrue())
	})

	It("conserves propellant", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 73},
			&vessel.Part{ID: 3, Spec: tankSpec, ParentID: 1, Fuel: 19},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 1},
			&vessel.Part{ID: 5, Spec: engSpec, ParentID: 1},
		)
		before := v.FuelRemaining()
		burn := fuel.Resolve(v, 0.8, 0.4, params)
		after := v.FuelRemaining()

		Expect(before - after).To(BeNumerically("~", burn.Consumed, 1e-9))
		Expect(after).To(BeNumerically(">=", 0))
	})

	It("yields partial thrust on a nearly dry craft", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 10},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
		)
		// Demand 16 kg against 10 leaves a 62.5% burn.
		burn := fuel.Resolve(v, 1.0, 0.2, params)

		Expect(burn.Thrust).To(BeNumerically("~", 215_000*0.625, 1e-6))
		Expect(v.Part(2).Fuel).To(BeNumerically("~", 0, 1e-9))
		Expect(v.Part(3).Thrusting).To(BeTrue())
	})

	It("cuts thrust below the minimum supply ratio", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 0.05},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
		)
		burn := fuel.Resolve(v, 1.0, 1.0, params)

		Expect(burn.Thrust).To(BeZero())
		Expect(v.Part(3).Thrusting).To(BeFalse())
	})

	It("gives an isolated engine nothing", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: radDecSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: engSpec, ParentID: 3},
		)
		burn := fuel.Resolve(v, 1.0, 1.0, params)

		Expect(burn.Thrust).To(BeZero())
		Expect(burn.Consumed).To(BeZero())
		Expect(v.Part(2).Fuel).To(BeNumerically("~", 500, 1e-9))
		Expect(v.Part(4).Thrusting).To(BeFalse())
	})

	It("keeps a blocked upper engine dark while the lower one fires", func() {
		v := buildCraft(
			&vessel.Part{ID: 1, Spec: podSpec},
			&vessel.Part{ID: 2, Spec: tankSpec, ParentID: 1, Fuel: 500},
			&vessel.Part{ID: 3, Spec: engSpec, ParentID: 2},
			&vessel.Part{ID: 4, Spec: decSpec, ParentID: 3},
			&vessel.Part{ID: 5, Spec: tankSpec, ParentID: 4, Fuel: 500},
			&vessel.Part{ID: 6, Spec: engSpec, ParentID: 5},
		)
		burn := fuel.Resolve(v, 1.0, 1.0, params)

		Expect(v.Part(3).Thrusting).To(BeFalse())
		Expect(v.Part(6).Thrusting).To(BeTrue())
		Expect(burn.Thrust).To(BeNumerically("~", 215_000, 1e-6))
		Expect(burn.Consumed).To(BeNumerically("~", 80, 1e-9))
		Expect(v.Part(2).Fuel).To(BeNumerically("~", 500, 1e-9))
		Expect(v.Part(5).Fuel).To(BeNumerically("~", 420, 1e-9))
	})
})
