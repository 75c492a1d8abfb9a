package testutils

import (
	"context"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/memory"
)

// DescribeHistoryDriver registers the behaviour every memory.Driver must have.
func DescribeHistoryDriver(newDriver func() memory.Driver) {
	var (
		driver memory.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		driver = newDriver()
	})

	AfterEach(func() {
		Expect(driver.Close()).To(Succeed())
	})

	It("starts empty", func() {
		entries, err := driver.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("appends trimmed entries in order and ignores blank ones", func() {
		Expect(driver.Append(ctx, " Tú ", " hola ")).To(Succeed())
		Expect(driver.Append(ctx, "", "sin rol")).To(Succeed())
		Expect(driver.Append(ctx, "Asistente", "   ")).To(Succeed())
		Expect(driver.Append(ctx, "Asistente", "¡Hola!")).To(Succeed())

		entries, err := driver.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(Equal([]memory.Entry{
			{Role: "Tú", Text: "hola"},
			{Role: "Asistente", Text: "¡Hola!"},
		}))
	})

	It("keeps only the newest entries", func() {
		for i := range memory.MaxEntries + 5 {
			Expect(driver.Append(ctx, "Tú", fmt.Sprintf("mensaje %d", i))).To(Succeed())
		}

		entries, err := driver.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(memory.MaxEntries))
		Expect(entries[0].Text).To(Equal("mensaje 5"))
		Expect(entries[len(entries)-1].Text).To(Equal(fmt.Sprintf("mensaje %d", memory.MaxEntries+4)))
	})

	It("replaces the transcript dropping invalid entries", func() {
		Expect(driver.Append(ctx, "Tú", "viejo")).To(Succeed())
		Expect(driver.Replace(ctx, []memory.Entry{
			{Role: "Tú", Text: "nuevo"},
			{Role: "", Text: "huérfano"},
		})).To(Succeed())

		entries, err := driver.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(Equal([]memory.Entry{{Role: "Tú", Text: "nuevo"}}))
	})

	It("clears the transcript", func() {
		Expect(driver.Append(ctx, "Tú", "hola")).To(Succeed())
		Expect(driver.Clear(ctx)).To(Succeed())

		entries, err := driver.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})
}
