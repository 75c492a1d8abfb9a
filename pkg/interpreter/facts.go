package interpreter

import (
	"context"
	"fmt"
	"strings"

	"github.com/papercomputeco/neno/pkg/memory"
)

type statement struct {
	kind  memory.Kind
	reply string
}

// Checked in this order; the first kind found in the message answers.
var statements = []statement{
	{memory.KindName, "Encantado, %s. Haré lo posible por recordarlo."},
	{memory.KindAge, "Perfecto, tomo nota: tienes %s años."},
	{memory.KindDoctor, "Entendido, tu profesional de cabecera es %s."},
	{memory.KindMedication, "Gracias por avisarme. Recordaré que tu medicación incluye %s."},
	{memory.KindHospital, "Perfecto, tendré presente que te atienden en %s."},
	{memory.KindCondition, "Lo siento, cuidaré de recordarte que padeces %s."},
	{memory.KindTreatment, "De acuerdo, tomaré nota de que sigues el tratamiento %s."},
}

type question struct {
	kind     memory.Kind
	triggers []string
	known    string
	unknown  string
}

var questions = []question{
	{
		kind: memory.KindName,
		triggers: []string{
			"cual es mi nombre", "cuál es mi nombre", "como me llamo", "cómo me llamo",
			"recuerdas mi nombre", "te acuerdas de mi nombre", "sabes como me llamo", "sabes cuál es mi nombre",
		},
		known:   "Me dijiste que te llamas %s.",
		unknown: "Aún no me has dicho tu nombre. Puedes decirme: 'Mi nombre es ...'.",
	},
	{
		kind: memory.KindAge,
		triggers: []string{
			"cuantos años tengo", "cuántos años tengo", "cual es mi edad", "cuál es mi edad",
			"recuerdas mi edad", "sabes cuantos años tengo", "sabes cuántos años tengo",
			"como cuantos años tengo", "cómo cuantos años tengo",
		},
		known:   "Recuerdo que me dijiste que tienes %s años.",
		unknown: "Todavía no sé tu edad. Puedes decirme: 'Tengo X años'.",
	},
	{
		kind: memory.KindDoctor,
		triggers: []string{
			"quien es mi medico", "quién es mi médico", "cuál es mi médico", "cual es mi medico",
			"recuerdas mi medico", "recuerdas mi médico", "sabes quien es mi medico",
			"como se llama mi doctor", "cómo se llama mi doctor",
		},
		known:   "Me comentaste que tu médico es %s.",
		unknown: "Aún no me has contado quién es tu médico habitual.",
	},
	{
		kind: memory.KindMedication,
		triggers: []string{
			"que medicacion tomo", "qué medicación tomo", "cual es mi medicacion", "cuál es mi medicación",
			"que pastillas tomo", "qué pastillas tomo", "recuerdas mi medicacion", "recuerdas mi medicación",
			"sabes que medicinas", "que medicina uso", "cual es mi tratamiento", "cuál es mi tratamiento",
		},
		known:   "Sé que tu medicación incluye %s.",
		unknown: "Todavía no sé qué medicación tomas. Puedes decirme: 'Mi medicación es ...'.",
	},
	{
		kind: memory.KindHospital,
		triggers: []string{
			"cual es mi hospital", "cuál es mi hospital", "a que hospital voy", "a qué hospital voy",
			"que clinica me atiende", "qué clínica me atiende", "recuerdas mi hospital",
		},
		known:   "Me dijiste que te atienden en %s.",
		unknown: "No recuerdo que me hayas mencionado tu hospital o clínica habitual.",
	},
	{
		kind: memory.KindCondition,
		triggers: []string{
			"que enfermedad tengo", "qué enfermedad tengo", "cual es mi enfermedad", "cuál es mi enfermedad",
			"que dolencia tengo", "qué dolencia tengo", "sabes que padezco", "recuerdas mi dolencia",
		},
		known:   "Recuerdo que padeces %s.",
		unknown: "Aún no me has contado qué dolencia o enfermedad tienes.",
	},
	{
		kind: memory.KindTreatment,
		triggers: []string{
			"cual es mi tratamiento", "cuál es mi tratamiento", "que terapia sigo", "qué terapia sigo",
			"recuerdas mi tratamiento", "que tratamiento sigo", "qué tratamiento sigo",
		},
		known:   "Sé que sigues el tratamiento %s.",
		unknown: "Todavía no me has contado qué tratamiento sigues.",
	},
}

func (i *Interpreter) factStatement(_ context.Context, msg *message) (Result, bool) {
	for _, s := range statements {
		if v, ok := memory.Extract(s.kind, msg.raw); ok {
			return Result{Reply: fmt.Sprintf(s.reply, v)}, true
		}
	}
	return Result{}, false
}

func (i *Interpreter) factQuestion(ctx context.Context, msg *message) (Result, bool) {
	for _, q := range questions {
		if !containsAny(msg.trimmed, q.triggers) {
			continue
		}

		v, ok, err := memory.Recall(ctx, i.history, q.kind)
		if err != nil {
			i.logger.Warn("could not recall fact", "kind", string(q.kind), "error", err)
		}
		if ok {
			return Result{Reply: fmt.Sprintf(q.known, v)}, true
		}
		return Result{Reply: q.unknown}, true
	}
	return Result{}, false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
