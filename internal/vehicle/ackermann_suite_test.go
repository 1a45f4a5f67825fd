package vehicle_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAckermannSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ackermann Steering Suite")
}
