package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthName returns the Spanish name of m.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return monthNames[m-1]
}

// FormatForSpeech turns a When value into a phrase meant to be read aloud,
// e.g. "el 5 de marzo de 2026 a las 9 horas con 05 minutos".
func FormatForSpeech(when string) string {
	when = strings.TrimSpace(when)
	if when == "" {
		return "a la hora indicada"
	}

	if strings.Contains(when, "/") && strings.Contains(when, " ") {
		if t, err := time.Parse(dateLayout, when); err == nil {
			return fmt.Sprintf("el %d de %s de %d a las %s",
				t.Day(), MonthName(t.Month()), t.Year(), TimePhrase(t.Hour(), t.Minute()))
		}
	}

	if strings.Contains(when, ":") {
		if h, m, err := splitLoose(when); err == nil {
			return "a las " + TimePhrase(h, m)
		}
	}

	return when
}

// TimePhrase renders an hour and minute in spoken Spanish. Out of range
// values are clamped.
func TimePhrase(hour, minute int) string {
	hour = max(0, min(23, hour))
	minute = max(0, min(59, minute))

	word := "horas"
	if hour == 1 {
		word = "hora"
	}

	if minute == 0 {
		return fmt.Sprintf("%d %s en punto", hour, word)
	}
	return fmt.Sprintf("%d %s con %02d minutos", hour, word, minute)
}

// splitLoose reads H:M without range checks; TimePhrase clamps.
func splitLoose(s string) (int, int, error) {
	hs, ms, _ := strings.Cut(s, ":")
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(strings.TrimSpace(ms))
	if err != nil {
		return 0, 0, err
	}
	return h, m, nil
}
