package reminder_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/reminder"
)

var _ = Describe("speech", func() {
	DescribeTable("FormatForSpeech",
		func(in, want string) {
			Expect(reminder.FormatForSpeech(in)).To(Equal(want))
		},
		Entry("full date", "05/03/2026 09:05", "el 5 de marzo de 2026 a las 9 horas con 05 minutos"),
		Entry("time only on the hour", "13:00", "a las 13 horas en punto"),
		Entry("one o'clock", "1:00", "a las 1 hora en punto"),
		Entry("empty", "  ", "a la hora indicada"),
		Entry("unparsable", "pronto", "pronto"),
	)

	It("clamps out of range values", func() {
		Expect(reminder.TimePhrase(30, -4)).To(Equal("23 horas en punto"))
		Expect(reminder.TimePhrase(1, 7)).To(Equal("1 hora con 07 minutos"))
	})

	It("names months in Spanish", func() {
		Expect(reminder.MonthName(time.December)).To(Equal("diciembre"))
		Expect(reminder.MonthName(0)).To(BeEmpty())
	})
})
