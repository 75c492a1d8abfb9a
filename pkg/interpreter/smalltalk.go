package interpreter

import (
	"context"
	"strings"
)

var fallbackReplies = []string{
	"Puedo ayudarte con recordatorios, la hora o charlar un poco. ¿Qué te gustaría hacer?",
	"Todavía no tengo información sobre eso, pero sí puedo crear recordatorios o indicarte la hora actual.",
	"Ese dato no lo sé aún. Puedes enseñármelo editando mis respuestas locales guardadas en : {kb_file} ... para añadir una respuesta personalizada.",
	"No estoy seguro de cómo responder a eso. Si quieres, dime: Neno, busca ... para abrir una búsqueda web.",
}

type smallTalkRule struct {
	triggers []string
	reply    string
}

var smallTalkRules = []smallTalkRule{
	{[]string{"hola", "buenos días", "buenas tardes"}, "¡Hola! ¿En qué puedo ayudarte?"},
	{[]string{"cómo estás", "como estas"}, "Estoy funcionando perfectamente, gracias por preguntar. ¿Y tú?"},
	{[]string{"qué hora", "que hora"}, ""},
	{[]string{"recordatorio"}, "Para crear un recordatorio dime, por ejemplo: 'Neno, recuérdame tomar la pastilla a las 09:00'."},
	{[]string{"gracias"}, "De nada, estoy aquí para ayudarte."},
	{[]string{"adiós", "adios", "chao"}, "¡Hasta pronto! Que tengas un buen día."},
	{[]string{"ayuda"}, "Puedo ayudarte con recordatorios, la hora actual, o simplemente charlar contigo. ¿Qué necesitas?"},
}

func (i *Interpreter) smallTalk(_ context.Context, msg *message) (Result, bool) {
	for _, r := range smallTalkRules {
		if !containsAny(msg.lower, r.triggers) {
			continue
		}
		if r.reply == "" {
			now := i.clock()
			return Result{Reply: "Son las " + now.Format("15:04") + " del " + now.Format("02/01/2006")}, true
		}
		return Result{Reply: r.reply}, true
	}
	return Result{}, false
}

func (i *Interpreter) knowledgeAnswer(_ context.Context, msg *message) (Result, bool) {
	if i.kb == nil {
		return Result{}, false
	}
	answer, ok := i.kb.FindAnswer(msg.raw)
	return Result{Reply: answer}, ok
}

func (i *Interpreter) fallback() string {
	reply := fallbackReplies[i.rand(len(fallbackReplies))]
	if i.kb != nil {
		reply = strings.ReplaceAll(reply, "{kb_file}", i.kb.Path())
	}
	return reply
}
