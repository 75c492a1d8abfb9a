package cliui_test

import (
	"bytes"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/cliui"
)

var _ = Describe("cliui", func() {
	Describe("FormatDuration", func() {
		It("uses milliseconds below one second", func() {
			Expect(cliui.FormatDuration(12 * time.Millisecond)).To(Equal("12ms"))
		})

		It("uses seconds with one decimal above one second", func() {
			Expect(cliui.FormatDuration(3200 * time.Millisecond)).To(Equal("3.2s"))
		})
	})

	Describe("Mark", func() {
		It("returns the success mark for nil", func() {
			Expect(cliui.Mark(nil)).To(Equal(cliui.SuccessMark))
		})

		It("returns the fail mark for an error", func() {
			Expect(cliui.Mark(errors.New("boom"))).To(Equal(cliui.FailMark))
		})
	})

	Describe("Step", func() {
		It("returns the error from fn and prints the message", func() {
			var buf bytes.Buffer
			err := cliui.Step(&buf, "guardando", func() error { return errors.New("boom") })
			Expect(err).To(MatchError("boom"))
			Expect(buf.String()).To(ContainSubstring("guardando"))
		})
	})

	Describe("Mask", func() {
		It("keeps the last four characters", func() {
			Expect(cliui.Mask("sk-123456789")).To(Equal("****6789"))
		})

		It("hides short secrets completely", func() {
			Expect(cliui.Mask("abc")).To(Equal("****"))
		})

		It("leaves empty values empty", func() {
			Expect(cliui.Mask("")).To(BeEmpty())
		})
	})

	Describe("KeyValue", func() {
		It("shows <not set> for empty values", func() {
			Expect(cliui.KeyValue("chat.model", 10, "")).To(ContainSubstring("<not set>"))
		})
	})
})
