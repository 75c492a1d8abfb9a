package chat_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/chat"
	"github.com/papercomputeco/neno/pkg/logger"
	testutils "github.com/papercomputeco/neno/pkg/utils/test"
)

var _ = Describe("Session", func() {
	var (
		ctx     context.Context
		backend *testutils.MockBackend
		session *chat.Session
	)

	BeforeEach(func() {
		ctx = context.Background()
		backend = &testutils.MockBackend{Replies: []string{" ¡Hola! ", "Muy bien."}}
		session = chat.NewSession(backend, logger.Nop())
	})

	It("is unavailable without a backend", func() {
		s := chat.NewSession(nil, logger.Nop())
		Expect(s.Available()).To(BeFalse())
		Expect(s.BackendName()).To(BeEmpty())
		Expect(s.Start()).To(MatchError(chat.ErrNotConfigured))

		_, err := s.Send(ctx, "hola")
		Expect(err).To(MatchError(chat.ErrNotConfigured))
	})

	It("starts with the system prompt", func() {
		Expect(session.Start()).To(Succeed())
		Expect(session.Active()).To(BeTrue())

		reply, err := session.Send(ctx, "hola")
		Expect(err).NotTo(HaveOccurred())
		Expect(reply).To(Equal("¡Hola!"))

		calls := backend.Calls()
		Expect(calls).To(HaveLen(1))
		Expect(calls[0]).To(Equal([]chat.Message{
			{Role: chat.RoleSystem, Content: chat.SystemPrompt},
			{Role: chat.RoleUser, Content: "hola"},
		}))
	})

	It("sends the running conversation", func() {
		_, err := session.Send(ctx, "hola")
		Expect(err).NotTo(HaveOccurred())
		_, err = session.Send(ctx, "¿qué tal?")
		Expect(err).NotTo(HaveOccurred())

		calls := backend.Calls()
		Expect(calls[1]).To(HaveLen(4))
		Expect(calls[1][2]).To(Equal(chat.Message{Role: chat.RoleAssistant, Content: "¡Hola!"}))
		Expect(session.History()).To(Equal([]chat.Turn{
			{User: "hola", Assistant: "¡Hola!"},
			{User: "¿qué tal?", Assistant: "Muy bien."},
		}))
	})

	It("drops the failed message so it can be retried", func() {
		Expect(session.Start()).To(Succeed())
		backend.Err = errors.New("connection refused")

		_, err := session.Send(ctx, "hola")
		Expect(err).To(HaveOccurred())
		Expect(session.History()).To(BeEmpty())

		backend.Err = nil
		_, err = session.Send(ctx, "hola")
		Expect(err).NotTo(HaveOccurred())
		Expect(backend.Calls()[1]).To(HaveLen(2))
	})

	It("ends and clears conversations", func() {
		_, err := session.Send(ctx, "hola")
		Expect(err).NotTo(HaveOccurred())

		session.Clear()
		Expect(session.History()).To(BeEmpty())
		Expect(session.Active()).To(BeTrue())

		Expect(session.End()).To(Equal(chat.EndMessage))
		Expect(session.Active()).To(BeFalse())
	})
})
