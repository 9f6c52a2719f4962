package id

import (
	"github.com/bwmarrin/snowflake"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Init", func() {
	var saved *snowflake.Node

	BeforeEach(func() {
		mu.Lock()
		saved, node = node, nil
		mu.Unlock()
	})

	AfterEach(func() {
		mu.Lock()
		node = saved
		mu.Unlock()
	})

	It("falls back to node 0 after a failed Init", func() {
		Expect(Init(-1)).To(HaveOccurred())

		var v int64
		Expect(func() { v = New() }).NotTo(Panic())
		Expect(snowflake.ParseInt64(v).Node()).To(Equal(int64(0)))
	})

	It("accepts a valid node after a failed one", func() {
		Expect(Init(1 << 20)).To(HaveOccurred())
		Expect(Init(7)).To(Succeed())
		Expect(snowflake.ParseInt64(New()).Node()).To(Equal(int64(7)))
	})

	It("keeps the first node", func() {
		Expect(Init(3)).To(Succeed())
		Expect(Init(4)).To(Succeed())
		Expect(snowflake.ParseInt64(New()).Node()).To(Equal(int64(3)))
	})
})
