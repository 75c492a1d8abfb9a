// Package knowledge answers questions from a user editable JSON file of
// trigger phrases, keyword sets and patterns.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/papercomputeco/neno/pkg/utils"
)

const patternTimeout = 100 * time.Millisecond

// Entry is one knowledge base record. An entry matches a message when any
// trigger is contained in it, when every keyword is, when the pattern
// matches, or when the question equals the message.
type Entry struct {
	Triggers []string `json:"triggers,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
	Question string   `json:"question,omitempty"`
	Answer   string   `json:"answer"`
}

// Base reads entries from a JSON file on every lookup, so edits made while
// the assistant runs are picked up without a restart.
type Base struct {
	path    string
	static  []Entry
	logger  *slog.Logger
	mu      sync.Mutex
	pattern map[string]*regexp2.Regexp
}

// New opens the knowledge base at path, seeding it with Defaults when the
// file does not exist yet.
func New(path string, logger *slog.Logger) (*Base, error) {
	if logger == nil {
		logger = slog.Default()
	}

	b := &Base{
		path:    path,
		logger:  logger,
		pattern: make(map[string]*regexp2.Regexp),
	}

	if err := b.ensureFile(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewStatic returns a Base over a fixed list of entries with no backing file.
func NewStatic(entries []Entry) *Base {
	return &Base{
		static:  entries,
		logger:  slog.Default(),
		pattern: make(map[string]*regexp2.Regexp),
	}
}

// Path returns the file users edit to teach new answers. Empty for a static
// base.
func (b *Base) Path() string {
	return b.path
}

// Entries returns the current entries. An unreadable file, or one that is
// not a JSON array, yields the defaults; array items that do not decode as
// an Entry are skipped.
func (b *Base) Entries() []Entry {
	if b.path == "" {
		return b.static
	}

	if err := b.ensureFile(); err != nil {
		b.logger.Warn("could not create knowledge base", "path", b.path, "error", err)
		return Defaults()
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		b.logger.Warn("could not read knowledge base", "path", b.path, "error", err)
		return Defaults()
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		b.logger.Warn("could not parse knowledge base", "path", b.path, "error", err)
		return Defaults()
	}

	entries := make([]Entry, 0, len(raw))
	for i, item := range raw {
		if string(item) == "null" {
			continue
		}
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			b.logger.Debug("skipping malformed knowledge entry", "path", b.path, "index", i, "error", err)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

// FindAnswer returns the answer of the first entry matching message.
// Entries with a blank answer are skipped.
func (b *Base) FindAnswer(message string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return "", false
	}

	for _, entry := range b.Entries() {
		if !b.matches(entry, normalized) {
			continue
		}
		if answer := strings.TrimSpace(entry.Answer); answer != "" {
			return answer, true
		}
	}
	return "", false
}

func (b *Base) matches(e Entry, msg string) bool {
	for _, trig := range e.Triggers {
		if trig != "" && strings.Contains(msg, strings.ToLower(trig)) {
			return true
		}
	}

	if len(e.Keywords) > 0 {
		all := true
		for _, kw := range e.Keywords {
			if !strings.Contains(msg, strings.ToLower(kw)) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}

	if e.Pattern != "" {
		if re := b.compile(e.Pattern); re != nil {
			if ok, err := re.MatchString(msg); err == nil && ok {
				return true
			}
		}
	}

	return e.Question != "" && strings.ToLower(e.Question) == msg
}

// compile caches compiled patterns. Invalid patterns cache as nil and never
// match.
func (b *Base) compile(pattern string) *regexp2.Regexp {
	b.mu.Lock()
	defer b.mu.Unlock()

	if re, ok := b.pattern[pattern]; ok {
		return re
	}

	re, err := regexp2.Compile(pattern, regexp2.IgnoreCase)
	if err != nil {
		b.logger.Debug("ignoring invalid knowledge pattern", "pattern", pattern, "error", err)
		re = nil
	} else {
		re.MatchTimeout = patternTimeout
	}
	b.pattern[pattern] = re
	return re
}

func (b *Base) ensureFile() error {
	_, err := os.Stat(b.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking knowledge base: %w", err)
	}

	if err := utils.WriteJSONFile(b.path, Defaults()); err != nil {
		return fmt.Errorf("seeding knowledge base: %w", err)
	}
	b.logger.Debug("seeded knowledge base", "path", b.path)
	return nil
}
