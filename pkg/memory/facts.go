package memory

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Kind names a personal fact.
type Kind string

const (
	KindName          Kind = "name"
	KindAge           Kind = "age"
	KindCity          Kind = "city"
	KindBirthday      Kind = "birthday"
	KindProfession    Kind = "profession"
	KindFavoriteColor Kind = "favorite_color"
	KindFavoriteFood  Kind = "favorite_food"
	KindFavoriteDrink Kind = "favorite_drink"
	KindFavoriteMusic Kind = "favorite_music"
	KindHobby         Kind = "hobby"
	KindDoctor        Kind = "doctor"
	KindMedication    Kind = "medication"
	KindHospital      Kind = "hospital"
	KindCondition     Kind = "medical_condition"
	KindTreatment     Kind = "treatment"
)

const matchTimeout = 50 * time.Millisecond

// value is the capture shared by most patterns: everything up to the next
// clause separator.
const value = `([^.,;\n]+)`

type extractor struct {
	patterns []*regexp2.Regexp
	validate func(string) (string, bool)
}

var extractors = map[Kind]extractor{
	KindName: textKind(2, 80,
		`(?:mi\s+nombre\s+es)\s+`+value,
		`(?:me\s+llamo)\s+`+value,
		`(?:llámame|llamame)\s+`+value,
	),
	KindAge: {
		patterns: compile(
			`(?:tengo|tendré|tendre)\s+(\d{1,3})\s+años`,
			`mi\s+edad\s+es\s+(\d{1,3})`,
			`cumplo\s+(\d{1,3})\s*(?:años)?`,
			`(?:voy\s+a\s+cumplir|va\s+a\s+cumplir|cumpliré|cumplire)\s+(\d{1,3})`,
		),
		validate: validAge,
	},
	KindCity: textKind(2, 80,
		`(?:soy|somos)\s+de\s+`+value,
		`(?:vivo|resido|estoy\s+viviendo)\s+en\s+`+value,
		`(?:mi\s+ciudad\s+(?:actual\s+)?es)\s+`+value,
	),
	KindBirthday: textKind(2, 100,
		`(?:mi\s+cumpleaños\s+es\s+el)\s+`+value,
		`(?:cumplo\s+años\s+el)\s+`+value,
		`(?:nací\s+el)\s+`+value,
	),
	KindProfession: textKind(2, 80,
		`(?:trabajo\s+como)\s+`+value,
		`(?:me\s+dedico\s+a)\s+`+value,
		`(?:mi\s+profesión\s+es)\s+`+value,
		`(?:soy)\s+(?!de\b)(?!del\b)(?!de\sla\b)`+value,
	),
	KindFavoriteColor: textKind(2, 80, `(?:mi\s+color\s+favorito\s+es)\s+`+value),
	KindFavoriteFood:  textKind(2, 80, `(?:mi\s+comida\s+favorita\s+es)\s+`+value),
	KindFavoriteDrink: textKind(2, 80, `(?:mi\s+bebida\s+favorita\s+es)\s+`+value),
	KindFavoriteMusic: textKind(2, 80,
		`(?:mi\s+música\s+favorita\s+es)\s+`+value,
		`(?:me\s+gusta\s+escuchar)\s+`+value,
	),
	KindHobby: textKind(2, 80,
		`(?:mi\s+pasatiempo\s+favorito\s+es)\s+`+value,
		`(?:mi\s+hobby\s+es)\s+`+value,
	),
	KindDoctor: textKind(2, 80,
		`(?:mi\s+(?:m[eé]dico|doctora?|especialista)\s+(?:es|se\s+llama))\s+`+value,
		`(?:me\s+atiende)\s+la?\s+(?:doctora?|m[eé]dico)\s+`+value,
	),
	KindMedication: medicalKind(
		`(?:mi\s+(?:medicaci[oó]n|tratamiento)\s+(?:es|incluye))\s+`+value,
		`(?:mis\s+pastillas\s+son)\s+`+value,
		`(?:tomo|estoy\s+tomando|me\s+recetaron)\s+`+value,
	),
	KindHospital: textKind(2, 120,
		`(?:voy|acudo)\s+al?\s+hospital\s+`+value,
		`(?:me\s+atienden)\s+en\s+el?\s+(?:hospital|cl[ií]nica)\s+`+value,
		`(?:mi\s+(?:hospital|cl[ií]nica)\s+(?:principal\s+)?es)\s+`+value,
	),
	KindCondition: medicalKind(
		`(?:tengo|padezco|sufro)\s+(?!\d{1,3}\s*(?:años|k(?:g|ilos)|años\s+de\s+edad))`+value,
		`(?:tengo|padezco|sufro)\s+de\s+`+value,
		`(?:mi\s+(?:enfermedad|dolencia)\s+es)\s+`+value,
		`(?:me\s+diagnosticaron)\s+`+value,
	),
	KindTreatment: medicalKind(
		`(?:mi\s+tratamiento\s+(?:actual\s+)?es)\s+`+value,
		`(?:estoy\s+en)\s+tratamiento\s+de\s+`+value,
		`(?:sigo)\s+una?\s+terapia\s+`+value,
	),
}

// Kinds lists every fact kind in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindName, KindAge, KindCity, KindBirthday, KindProfession,
		KindFavoriteColor, KindFavoriteFood, KindFavoriteDrink, KindFavoriteMusic, KindHobby,
		KindDoctor, KindMedication, KindHospital, KindCondition, KindTreatment,
	}
}

// ParseKind validates a fact kind name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extractors[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Extract returns the first valid value of kind stated in text. Ages are
// returned as decimal strings.
func Extract(kind Kind, text string) (string, bool) {
	ex, ok := extractors[kind]
	if !ok {
		return "", false
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	for _, re := range ex.patterns {
		m, err := re.FindStringMatch(text)
		if err != nil || m == nil {
			continue
		}

		candidate := normalize(m.GroupByNumber(1).String())
		if candidate == "" {
			continue
		}
		if v, ok := ex.validate(candidate); ok {
			return v, true
		}
	}
	return "", false
}

// normalize collapses whitespace and trims quotes and trailing punctuation.
func normalize(s string) string {
	return strings.Trim(strings.Join(strings.Fields(s), " "), " \"'.,;:!?")
}

func compile(patterns ...string) []*regexp2.Regexp {
	out := make([]*regexp2.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re := regexp2.MustCompile(p, regexp2.IgnoreCase)
		re.MatchTimeout = matchTimeout
		out = append(out, re)
	}
	return out
}

func textKind(minLen, maxLen int, patterns ...string) extractor {
	return extractor{
		patterns: compile(patterns...),
		validate: lengthBetween(minLen, maxLen),
	}
}

// medicalKind rejects values that talk about durations or ages, such as
// "tengo 3 horas libres".
func medicalKind(patterns ...string) extractor {
	inRange := lengthBetween(2, 120)
	return extractor{
		patterns: compile(patterns...),
		validate: func(s string) (string, bool) {
			if _, ok := inRange(s); !ok {
				return "", false
			}
			lowered := strings.ToLower(s)
			for _, token := range []string{"años", "año", "horas", "hora"} {
				if strings.Contains(lowered, token) {
					return "", false
				}
			}
			return s, true
		},
	}
}

func lengthBetween(minLen, maxLen int) func(string) (string, bool) {
	return func(s string) (string, bool) {
		n := utf8.RuneCountInString(s)
		return s, n >= minLen && n <= maxLen
	}
}

func validAge(s string) (string, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 120 {
		return "", false
	}
	return strconv.Itoa(n), true
}
