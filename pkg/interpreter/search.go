package interpreter

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// SearchHint teaches the command form when a search lacks the wake word.
const SearchHint = "Empieza la orden con 'Neno,' por ejemplo: 'Neno, busca clima en Madrid'."

var searchRe = regexp.MustCompile(`(?i)^neno[\s,]+(?:busca|buscar en la web)\s+(.+)$`)

// SearchQuery returns the query of a "Neno, busca ..." command with
// surrounding quotes removed.
func SearchQuery(message string) (string, bool) {
	m := searchRe.FindStringSubmatch(strings.TrimSpace(message))
	if m == nil {
		return "", false
	}

	q := strings.TrimSpace(m[1])
	if len(q) >= 2 && (q[0] == '"' && q[len(q)-1] == '"' || q[0] == '\'' && q[len(q)-1] == '\'') {
		q = strings.TrimSpace(q[1 : len(q)-1])
	}
	return q, q != ""
}

// SearchURL builds the results URL for query on engine.
func SearchURL(engine, query string) string {
	base := "https://www.google.com/search?q="
	if engine == "duckduckgo" {
		base = "https://duckduckgo.com/?q="
	}
	return base + url.QueryEscape(query)
}

func (i *Interpreter) webSearch(_ context.Context, msg *message) (Result, bool) {
	if q, ok := SearchQuery(msg.raw); ok {
		return i.act(fmt.Sprintf("Buscando '%s' en tu navegador predeterminado.", q), &Action{
			Kind:    ActionWebSearch,
			Query:   q,
			URL:     SearchURL(i.engine, q),
			Failure: "No pude abrir el navegador.",
		}), true
	}

	if hasPrefixAny(msg.lower, "buscar ", "busca ") || strings.Contains(msg.lower, "buscar en la web") {
		return Result{Reply: SearchHint}, true
	}
	return Result{}, false
}
