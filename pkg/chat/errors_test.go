package chat_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/chat"
)

var _ = Describe("FriendlyError", func() {
	DescribeTable("maps failures to Spanish replies",
		func(err error, want string) {
			Expect(chat.FriendlyError(err)).To(Equal(want))
		},
		Entry("nil", nil, ""),
		Entry("not configured", fmt.Errorf("wrap: %w", chat.ErrNotConfigured), chat.ErrorSetup),
		Entry("unauthorized", &chat.StatusError{Backend: "openai", StatusCode: 401}, chat.ErrorAuth),
		Entry("rate limited", &chat.StatusError{Backend: "openai", StatusCode: 429}, chat.ErrorQuota),
		Entry("invalid key text", errors.New("Invalid API key provided"), chat.ErrorAuth),
		Entry("quota text", errors.New("You exceeded your current quota"), chat.ErrorQuota),
		Entry("connection text", errors.New("dial tcp: connection refused"), chat.ErrorNetwork),
		Entry("anything else", errors.New("boom"), chat.ErrorGeneric),
	)

	It("describes status errors", func() {
		err := &chat.StatusError{Backend: "ollama", StatusCode: 500, Body: "model not found"}
		Expect(err.Error()).To(Equal("ollama returned status 500: model not found"))
	})
})
