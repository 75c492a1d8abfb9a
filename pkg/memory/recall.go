package memory

import (
	"context"
	"fmt"
)

// Recall scans the transcript newest first and returns the first valid value
// of kind found in a user message.
func Recall(ctx context.Context, d Driver, kind Kind) (string, bool, error) {
	if _, ok := extractors[kind]; !ok {
		return "", false, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	entries, err := d.Load(ctx)
	if err != nil {
		return "", false, fmt.Errorf("loading conversation history: %w", err)
	}

	for i := len(entries) - 1; i >= 0; i-- {
		if !IsUserRole(entries[i].Role) {
			continue
		}
		if v, ok := Extract(kind, entries[i].Text); ok {
			return v, true, nil
		}
	}
	return "", false, nil
}

// RecallAll returns every fact kind the user has stated, in Kinds order.
func RecallAll(ctx context.Context, d Driver) ([]Fact, error) {
	entries, err := d.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading conversation history: %w", err)
	}

	var facts []Fact
	for _, kind := range Kinds() {
		for i := len(entries) - 1; i >= 0; i-- {
			if !IsUserRole(entries[i].Role) {
				continue
			}
			if v, ok := Extract(kind, entries[i].Text); ok {
				facts = append(facts, Fact{Kind: kind, Value: v})
				break
			}
		}
	}
	return facts, nil
}
