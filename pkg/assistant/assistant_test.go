package assistant_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/assistant"
	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/memory/local"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/storage/inmemory"
)

// recordingLauncher remembers what it was asked to open.
type recordingLauncher struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (l *recordingLauncher) record(what string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opened = append(l.opened, what)
	return l.err
}

func (l *recordingLauncher) OpenURL(_ context.Context, url string) error { return l.record(url) }
func (l *recordingLauncher) OpenMail(context.Context) error             { return l.record("mail") }
func (l *recordingLauncher) OpenEditor(context.Context) error           { return l.record("editor") }
func (l *recordingLauncher) OpenTerminal(context.Context) error         { return l.record("terminal") }

func (l *recordingLauncher) Opened() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.opened...)
}

var _ = Describe("Assistant", func() {
	var (
		ctx       context.Context
		history   *local.Driver
		launcher  *recordingLauncher
		interp    *interpreter.Interpreter
		a         *assistant.Assistant
		followUps chan string
	)

	BeforeEach(func() {
		ctx = context.Background()
		history = local.NewDriver()
		launcher = &recordingLauncher{}
		followUps = make(chan string, 1)

		interp = interpreter.New(&interpreter.Config{
			Reminders: service.New(inmemory.NewDriver(), service.WithLogger(logger.Nop())),
			History:   history,
			Knowledge: knowledge.NewStatic(nil),
			Logger:    logger.Nop(),
		})
		a = assistant.New(&assistant.Config{
			Interpreter: interp,
			History:     history,
			Launcher:    launcher,
			FollowUp:    func(s string) { followUps <- s },
			Logger:      logger.Nop(),
		})
	})

	It("records both sides of the exchange", func() {
		res := a.Handle(ctx, "  hola  ")
		Expect(res.Reply).To(Equal("¡Hola! ¿En qué puedo ayudarte?"))

		entries, err := history.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(Equal([]memory.Entry{
			{Role: memory.RoleUser, Text: "hola"},
			{Role: memory.RoleAssistant, Text: "¡Hola! ¿En qué puedo ayudarte?"},
		}))
	})

	It("ignores blank messages", func() {
		Expect(a.Handle(ctx, "   ").Reply).To(BeEmpty())
		entries, err := history.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(BeEmpty())
	})

	It("remembers facts across messages", func() {
		a.Handle(ctx, "me llamo Rosa")
		Expect(a.Handle(ctx, "¿recuerdas mi nombre?").Reply).To(Equal("Me dijiste que te llamas Rosa."))
	})

	It("launches actions", func() {
		res := a.Handle(ctx, "Neno, busca farmacia de guardia")
		Expect(res.Action).NotTo(BeNil())
		Expect(launcher.Opened()).To(Equal([]string{"https://www.google.com/search?q=farmacia+de+guardia"}))
	})

	It("reports launch failures", func() {
		launcher.err = errors.New("no display")
		res := a.Handle(ctx, "Neno, escribe un correo")
		Expect(res.Reply).To(Equal("No pude abrir tu gestor de correo en este sistema."))
	})

	It("runs blocking actions in the background and releases the lock", func() {
		res := a.Handle(ctx, "neno abre una terminal")
		Expect(res.Action.Blocking()).To(BeTrue())

		Eventually(followUps).Should(Receive(Equal("Terminal abierta. Avísame cuando necesites otra cosa.")))
		a.Wait()
		Expect(interp.Busy()).To(BeFalse())
		Expect(launcher.Opened()).To(Equal([]string{"terminal"}))
	})

	It("greets the user by name", func() {
		Expect(assistant.Greeting("ana")).To(HavePrefix("Asistente iniciado. Hola ana,"))
	})
})
