package tether

import (
	"context"
	"time"

	"github.com/dogmatiq/tether/endpoint"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("func Run()", func() {
	var (
		registry *Registry
		ep       *endpoint.MemoryEndpoint
	)

	BeforeEach(func() {
		registry = New(
			WithMigrationTTL(5 * time.Millisecond),
		)

		ep = &endpoint.MemoryEndpoint{EndpointID: "<endpoint>"}
		ep.SetProcessID("<process-1>")
	})

	pendingMigration := func(contextID string) bool {
		registry.m.Lock()
		defer registry.m.Unlock()

		_, ok := registry.migrations[contextID]
		return ok
	}

	It("evicts a migration entry that is never confirmed", func() {
		registry.Add(ep, "<context>", &struct{ value int }{})
		ep.SwapProcess("<process-2>")

		Expect(pendingMigration("<context>")).To(BeTrue())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go registry.Run(ctx)

		Eventually(func() bool {
			return pendingMigration("<context>")
		}).Should(BeFalse())
	})

	It("retains entries younger than the TTL", func() {
		registry = New(
			WithMigrationTTL(1 * time.Hour),
		)

		registry.Add(ep, "<context>", &struct{ value int }{})
		ep.SwapProcess("<process-2>")

		registry.evictMigrations()

		Expect(pendingMigration("<context>")).To(BeTrue())
	})

	It("returns when ctx is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Expect(registry.Run(ctx)).To(Equal(context.Canceled))
	})
})
