package interpreter_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/neno/pkg/chat"
	"github.com/papercomputeco/neno/pkg/interpreter"
	"github.com/papercomputeco/neno/pkg/knowledge"
	"github.com/papercomputeco/neno/pkg/logger"
	"github.com/papercomputeco/neno/pkg/memory"
	"github.com/papercomputeco/neno/pkg/memory/local"
	"github.com/papercomputeco/neno/pkg/reminder"
	"github.com/papercomputeco/neno/pkg/reminder/service"
	"github.com/papercomputeco/neno/pkg/storage/inmemory"
	testutils "github.com/papercomputeco/neno/pkg/utils/test"
)

var _ = Describe("Interpreter", func() {
	var (
		ctx      context.Context
		now      time.Time
		store    *inmemory.Driver
		history  *local.Driver
		backend  *testutils.MockBackend
		interp   *interpreter.Interpreter
		newInterp func(engine string, session *chat.Session) *interpreter.Interpreter
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2026, 10, 19, 8, 5, 0, 0, time.Local)
		store = inmemory.NewDriver()
		history = local.NewDriver()
		backend = &testutils.MockBackend{Replies: []string{"Claro que sí."}}

		newInterp = func(engine string, session *chat.Session) *interpreter.Interpreter {
			clock := func() time.Time { return now }
			return interpreter.New(&interpreter.Config{
				Reminders: service.New(store, service.WithClock(clock), service.WithLogger(logger.Nop())),
				History:   history,
				Knowledge: knowledge.NewStatic([]knowledge.Entry{
					{Triggers: []string{"capital de francia"}, Answer: "París."},
				}),
				Chat:         session,
				SearchEngine: engine,
				Clock:        clock,
				Rand:         func(int) int { return 2 },
				Logger:       logger.Nop(),
			})
		}
		interp = newInterp("", chat.NewSession(backend, logger.Nop()))
	})

	reply := func(text string) string {
		return interp.Interpret(ctx, text).Reply
	}

	Describe("personal facts", func() {
		DescribeTable("acknowledges statements",
			func(text, want string) {
				Expect(reply(text)).To(Equal(want))
			},
			Entry("name", "Me llamo Carmen", "Encantado, Carmen. Haré lo posible por recordarlo."),
			Entry("age", "tengo 82 años", "Perfecto, tomo nota: tienes 82 años."),
			Entry("doctor", "mi médico es el doctor Ruiz", "Entendido, tu profesional de cabecera es el doctor Ruiz."),
			Entry("medication", "mis pastillas son sintrom", "Gracias por avisarme. Recordaré que tu medicación incluye sintrom."),
			Entry("hospital", "voy al hospital Gregorio Marañón", "Perfecto, tendré presente que te atienden en Gregorio Marañón."),
			Entry("condition", "padezco artrosis", "Lo siento, cuidaré de recordarte que padeces artrosis."),
			Entry("treatment", "estoy en tratamiento de fisioterapia", "De acuerdo, tomaré nota de que sigues el tratamiento fisioterapia."),
		)

		It("answers questions from the transcript", func() {
			Expect(history.Append(ctx, memory.RoleUser, "me llamo Carmen")).To(Succeed())
			Expect(history.Append(ctx, memory.RoleUser, "tengo 82 años")).To(Succeed())

			Expect(reply("¿Cómo me llamo?")).To(Equal("Me dijiste que te llamas Carmen."))
			Expect(reply("¿cuántos años tengo?")).To(Equal("Recuerdo que me dijiste que tienes 82 años."))
		})

		It("hints when the fact is unknown", func() {
			Expect(reply("¿Cuál es mi nombre?")).To(Equal("Aún no me has dicho tu nombre. Puedes decirme: 'Mi nombre es ...'."))
			Expect(reply("¿a qué hospital voy?")).To(Equal("No recuerdo que me hayas mencionado tu hospital o clínica habitual."))
		})
	})

	Describe("actions", func() {
		It("opens the mail client", func() {
			res := interp.Interpret(ctx, "Neno, escribe un correo a mi hija")
			Expect(res.Reply).To(Equal("Abriendo tu gestor de correo predeterminado."))
			Expect(res.Action.Kind).To(Equal(interpreter.ActionOpenMail))
		})

		It("opens the editor", func() {
			res := interp.Interpret(ctx, "neno escribe un texto")
			Expect(res.Action.Kind).To(Equal(interpreter.ActionOpenEditor))
			Expect(res.Action.Blocking()).To(BeFalse())
		})

		It("locks while the terminal is open", func() {
			res := interp.Interpret(ctx, "Neno, abre la consola")
			Expect(res.Reply).To(Equal("Abriendo la terminal predeterminada del sistema..."))
			Expect(res.Action.Blocking()).To(BeTrue())
			Expect(interp.Busy()).To(BeTrue())

			again := interp.Interpret(ctx, "Neno, abre la terminal")
			Expect(again.Reply).To(Equal(interpreter.BusyReply))
			Expect(again.Action).To(BeNil())

			search := interp.Interpret(ctx, "Neno, busca farmacias")
			Expect(search.Reply).To(Equal(interpreter.BusyReply))

			Expect(reply("hola")).To(Equal("¡Hola! ¿En qué puedo ayudarte?"))

			interp.Release()
			Expect(interp.Interpret(ctx, "Neno, busca farmacias").Action).NotTo(BeNil())
		})

		It("searches the web with the configured engine", func() {
			res := interp.Interpret(ctx, `Neno, busca "clima en Madrid"`)
			Expect(res.Reply).To(Equal("Buscando 'clima en Madrid' en tu navegador predeterminado."))
			Expect(res.Action.URL).To(Equal("https://www.google.com/search?q=clima+en+Madrid"))

			ddg := newInterp("DuckDuckGo", nil)
			res = ddg.Interpret(ctx, "neno buscar en la web recetas & postres")
			Expect(res.Action.Query).To(Equal("recetas & postres"))
			Expect(res.Action.URL).To(Equal("https://duckduckgo.com/?q=recetas+%26+postres"))
		})

		It("explains the wake word for bare searches", func() {
			Expect(reply("busca el tiempo")).To(Equal(interpreter.SearchHint))
		})
	})

	Describe("reminders", func() {
		It("creates a reminder from a full date", func() {
			Expect(reply("Recuérdame llamar a Luis el 24/12/2026 a las 18:30")).
				To(Equal("Listo, recordaré 'llamar a Luis el' el 24 de diciembre de 2026 a las 18 horas con 30 minutos."))

			list, err := store.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].When).To(Equal("24/12/2026 18:30"))
		})

		It("creates a daily reminder from a time", func() {
			Expect(reply("recuérdame tomar la pastilla a las 9:00 cada día")).
				To(Equal("Listo, recordaré 'tomar la pastilla cada día' el 19 de octubre de 2026 a las 9 horas en punto diariamente."))

			list, err := store.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(list[0].Repeat).To(Equal(reminder.RepeatDaily))
		})

		It("asks for a time when none is given", func() {
			Expect(reply("recuérdame comprar pan")).To(Equal(interpreter.MissingTimeReply))
		})

		It("rejects impossible times", func() {
			Expect(reply("recordatorio a las 25:99")).To(Equal("No pude interpretar la hora del recordatorio."))
		})
	})

	Describe("conversational mode", func() {
		It("needs a backend", func() {
			i := newInterp("", chat.NewSession(nil, logger.Nop()))
			Expect(i.Interpret(ctx, "Neno, charlemos").Reply).To(Equal(chat.ErrorSetup))
			Expect(i.ChatMode()).To(BeFalse())
		})

		It("routes messages to the backend until told to stop", func() {
			Expect(reply("Neno, charlemos un rato")).To(Equal(interpreter.ChatEnterReply))
			Expect(interp.ChatMode()).To(BeTrue())

			Expect(reply("¿Qué opinas del mar?")).To(Equal("Claro que sí."))
			Expect(backend.Calls()).To(HaveLen(1))

			Expect(reply("neno, termina")).To(Equal(chat.EndMessage))
			Expect(interp.ChatMode()).To(BeFalse())
			Expect(reply("¿Qué opinas del mar?")).NotTo(Equal("Claro que sí."))
		})

		It("stays in the conversation when the backend fails", func() {
			Expect(reply("Neno, charlemos")).To(Equal(interpreter.ChatEnterReply))
			backend.Err = errors.New("dial tcp: connection refused")

			Expect(reply("cuéntame algo")).To(Equal(chat.ErrorNetwork))
			Expect(interp.ChatMode()).To(BeTrue())

			backend.Err = nil
			Expect(reply("cuéntame algo")).To(Equal("Claro que sí."))
			Expect(interp.ChatMode()).To(BeTrue())

			Expect(reply("neno, termina")).To(Equal(chat.EndMessage))
			Expect(interp.ChatMode()).To(BeFalse())
		})

		It("stays in the conversation when a turn is cancelled", func() {
			Expect(reply("Neno, charlemos")).To(Equal(interpreter.ChatEnterReply))
			backend.Err = context.Canceled

			Expect(reply("cuéntame algo")).To(Equal(interpreter.ChatInterruptedReply))
			Expect(interp.ChatMode()).To(BeTrue())
		})
	})

	Describe("small talk and knowledge", func() {
		It("tells the time", func() {
			Expect(reply("¿Qué hora es?")).To(Equal("Son las 08:05 del 19/10/2026"))
		})

		DescribeTable("canned replies",
			func(text, want string) {
				Expect(reply(text)).To(Equal(want))
			},
			Entry("greeting", "Buenos días", "¡Hola! ¿En qué puedo ayudarte?"),
			Entry("how are you", "¿cómo estás?", "Estoy funcionando perfectamente, gracias por preguntar. ¿Y tú?"),
			Entry("thanks", "muchas gracias", "De nada, estoy aquí para ayudarte."),
			Entry("bye", "chao", "¡Hasta pronto! Que tengas un buen día."),
		)

		It("answers from the knowledge base", func() {
			Expect(reply("¿Cuál es la capital de Francia?")).To(Equal("París."))
		})

		It("falls back with the knowledge base path", func() {
			Expect(reply("xyzzy")).To(ContainSubstring("guardadas en : "))
		})
	})
})
