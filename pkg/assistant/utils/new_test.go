package assistantutils_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	assistantutils "github.com/papercomputeco/neno/pkg/assistant/utils"
	"github.com/papercomputeco/neno/pkg/config"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/reminder"
)

var _ = Describe("New", func() {
	var (
		ctx context.Context
		dir string
		cfg *config.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		cfg = config.NewDefaultConfig()
		cfg.Assistant.User = "ana lópez"
	})

	It("requires a directory", func() {
		_, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{Config: cfg})
		Expect(err).To(HaveOccurred())
	})

	It("keeps reminders and history in the per-user directory", func() {
		rt, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{
			Dir:    dir,
			Config: cfg,
			Logger: logger.Nop(),
		})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(rt.Close)

		Expect(rt.User).To(Equal("ana_l_pez"))
		Expect(rt.UserDir).To(Equal(filepath.Join(dir, "users", "ana_l_pez")))

		_, err = rt.Reminders.Add(ctx, "caminar", "24/12/2026 10:00", reminder.RepeatNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Join(rt.UserDir, "reminders.json")).To(BeAnExistingFile())

		Expect(rt.History.Append(ctx, memory.RoleUser, "hola")).To(Succeed())
		Expect(filepath.Join(rt.UserDir, "conversation_history.json")).To(BeAnExistingFile())

		Expect(filepath.Join(dir, "knowledge_base.json")).To(BeAnExistingFile())
	})

	It("keeps the sqlite database in the user directory when no path is set", func() {
		cfg.Storage.Driver = "sqlite"

		rt, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{Dir: dir, Config: cfg, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(rt.Close)

		_, err = rt.Reminders.Add(ctx, "regar las plantas", "24/12/2026 10:00", reminder.RepeatNone)
		Expect(err).NotTo(HaveOccurred())
		Expect(filepath.Join(rt.UserDir, "reminders.db")).To(BeAnExistingFile())
	})

	It("keeps nothing on disk with the memory driver", func() {
		cfg.Storage.Driver = "memory"

		rt, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{Dir: dir, Config: cfg, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(rt.Close)

		Expect(rt.History.Append(ctx, memory.RoleUser, "me llamo Ana")).To(Succeed())
		Expect(filepath.Join(rt.UserDir, "conversation_history.json")).NotTo(BeAnExistingFile())

		name, ok, err := memory.Recall(ctx, rt.History, memory.KindName)
		Expect(err).NotTo(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(name).To(Equal("Ana"))
	})

	It("leaves chat unavailable without a provider", func() {
		rt, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{Dir: dir, Config: cfg, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(rt.Close)

		Expect(rt.Chat.Available()).To(BeFalse())
	})

	It("fails on an unsupported chat provider", func() {
		cfg.Chat.Provider = "parrot"
		_, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{Dir: dir, Config: cfg, Logger: logger.Nop()})
		Expect(err).To(MatchError(ContainSubstring("unsupported chat provider")))
	})

	It("migrates a shared reminders file into the user directory", func() {
		legacy := `[{"id":"r1","text":"viejo","when":"24/12/2026 10:00","repeat":null,"notified":false}]`
		Expect(os.WriteFile(filepath.Join(dir, "reminders.json"), []byte(legacy), 0o644)).To(Succeed())

		rt, err := assistantutils.New(ctx, &assistantutils.NewAssistantOpts{Dir: dir, Config: cfg, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(rt.Close)

		list, err := rt.Reminders.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(list).To(HaveLen(1))
		Expect(list[0].Text).To(Equal("viejo"))
	})
})
