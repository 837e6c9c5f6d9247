package expr_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fibsearch/internal/expr"
)

var _ = Describe("Cache", func() {
	It("returns the same expression for equivalent source", func() {
		c := expr.NewCache(4)
		first, err := c.Parse("x**2")
		Expect(err).NotTo(HaveOccurred())
		second, err := c.Parse("  x**2 ")
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(BeIdenticalTo(first))
		hits, misses := c.Stats()
		Expect(hits).To(Equal(uint64(1)))
		Expect(misses).To(Equal(uint64(1)))
	})

	It("does not store failed parses", func() {
		c := expr.NewCache(4)
		_, err := c.Parse("import os")
		Expect(err).To(HaveOccurred())
		Expect(c.Len()).To(Equal(0))
	})

	It("evicts the least recently used entry", func() {
		c := expr.NewCache(2)
		for _, src := range []string{"x", "x+1", "x+2"} {
			_, err := c.Parse(src)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(c.Len()).To(Equal(2))

		_, err := c.Parse("x")
		Expect(err).NotTo(HaveOccurred())
		_, misses := c.Stats()
		Expect(misses).To(Equal(uint64(4)))
	})

	It("falls back to the default size", func() {
		c := expr.NewCache(0)
		_, err := c.Parse("x")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(1))
	})

	It("is safe for concurrent use", func() {
		c := expr.NewCache(8)
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				e, err := c.Parse("sin(x) + cos(x)")
				Expect(err).NotTo(HaveOccurred())
				Expect(e.String()).To(Equal("sin(x) + cos(x)"))
			}()
		}
		wg.Wait()
		Expect(c.Len()).To(Equal(1))
	})
})
