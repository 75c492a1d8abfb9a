package interpreter

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/papercomputeco/neno/pkg/reminder"
)

// MissingTimeReply asks for a time when a reminder request has none.
const MissingTimeReply = "Dime la hora como HH:MM (y opcionalmente la fecha DD/MM/YYYY)."

var (
	reminderTriggers = []string{"recordatorio", "recordarme", "recuerdame", "recuérdame"}
	dailyPhrases     = []string{"cada dia", "cada día", "diario", "diariamente"}

	fullDateRe = regexp.MustCompile(`(?i)(\d{1,2}/\d{1,2}/\d{4})\s*(?:a\s+las\s+)?(\d{1,2}:\d{2})`)
	timeOnlyRe = regexp.MustCompile(`(?i)(?:a\s+las\s+)?(\d{1,2}:\d{2})`)

	// Removed once each, in this order, from the text left after the time.
	commandWords = []*regexp.Regexp{
		regexp.MustCompile(`(?i)recordatorio`),
		regexp.MustCompile(`(?i)recordarme`),
		regexp.MustCompile(`(?i)recuerdame`),
		regexp.MustCompile(`(?i)recu[é]rdame`),
		regexp.MustCompile(`(?i)añade`),
		regexp.MustCompile(`(?i)agrega`),
		regexp.MustCompile(`(?i)pon`),
		regexp.MustCompile(`(?i)crea`),
		regexp.MustCompile(`(?i)añadir`),
		regexp.MustCompile(`(?i)agregar`),
		regexp.MustCompile(`(?i)crear`),
	}
)

// ReminderRequest is a reminder parsed from a message.
type ReminderRequest struct {
	Text   string
	When   string
	Repeat reminder.Repeat
}

// ParseReminderRequest extracts the time, text and repetition of a spoken
// reminder request. It returns false when the message carries no time.
func ParseReminderRequest(message string) (ReminderRequest, bool) {
	var when string
	var span []int

	if m := fullDateRe.FindStringSubmatchIndex(message); m != nil {
		when = message[m[2]:m[3]] + " " + message[m[4]:m[5]]
		span = m[:2]
	} else if m := timeOnlyRe.FindStringSubmatchIndex(message); m != nil {
		when = message[m[2]:m[3]]
		span = m[:2]
	} else {
		return ReminderRequest{}, false
	}

	remaining := strings.TrimSpace(message[:span[0]] + message[span[1]:])
	for _, re := range commandWords {
		if loc := re.FindStringIndex(remaining); loc != nil {
			remaining = strings.TrimSpace(remaining[:loc[0]] + remaining[loc[1]:])
		}
	}
	remaining = strings.Trim(strings.Join(strings.Fields(remaining), " "), ",.;:- ")
	if remaining == "" {
		remaining = reminder.DefaultText
	}

	req := ReminderRequest{Text: remaining, When: when}
	if containsAny(strings.ToLower(message), dailyPhrases) {
		req.Repeat = reminder.RepeatDaily
	}
	return req, true
}

func (i *Interpreter) reminderRequest(ctx context.Context, msg *message) (Result, bool) {
	if !containsAny(msg.lower, reminderTriggers) {
		return Result{}, false
	}

	req, ok := ParseReminderRequest(msg.raw)
	if !ok {
		return Result{Reply: MissingTimeReply}, true
	}

	r, err := i.reminders.Add(ctx, req.Text, req.When, req.Repeat)
	if err != nil {
		if errors.Is(err, reminder.ErrInvalidWhen) {
			return Result{Reply: "No pude interpretar la hora del recordatorio."}, true
		}
		i.logger.Error("could not save reminder", "error", err)
		return Result{Reply: fmt.Sprintf("No pude guardar el recordatorio: %v", err)}, true
	}

	extra := ""
	if r.Daily() {
		extra = " diariamente"
	}
	return Result{
		Reply: fmt.Sprintf("Listo, recordaré '%s' %s%s.", r.Text, reminder.FormatForSpeech(r.When), extra),
	}, true
}
