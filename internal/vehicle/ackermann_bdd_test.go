package vehicle_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mvsim/internal/vehicle"
)

var _ = Describe("Ackermann steering resolver", func() {
	geom := vehicle.SteeringGeometry{Wheelbase: 1.3, TrackWidth: 1.0, MaxSteer: math.Pi / 2}

	When("the commanded angle is zero", func() {
		It("resolves both front wheels to zero", func() {
			resolved, err := vehicle.ResolveAckermann(geom, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.Left).To(BeZero())
			Expect(resolved.Right).To(BeZero())
		})
	})

	When("the commanded angle is a positive (left) turn", func() {
		It("assigns the larger magnitude to the inner (left) wheel", func() {
			resolved, err := vehicle.ResolveAckermann(geom, 0.3)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.Left).To(BeNumerically(">", resolved.Right))
			Expect(resolved.Left).To(BeNumerically("~", 0.33766, 1e-3))
			Expect(resolved.Right).To(BeNumerically("~", 0.26971, 1e-3))
		})
	})

	When("geometry is degenerate", func() {
		It("fails rather than dividing by zero", func() {
			_, err := vehicle.ResolveAckermann(vehicle.SteeringGeometry{Wheelbase: 0, TrackWidth: 1}, 0.2)
			Expect(err).To(MatchError(vehicle.ErrDegenerateGeometry))
		})
	})
})
