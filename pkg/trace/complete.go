package trace

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/aretw0/interchange/pkg/domain"
)

type candidate struct {
	value      string
	ignoreCase bool
}

// Complete suggests values for the last, possibly partial, token.
// Prefix matches come first, then values merely containing the token.
// Suggestions are unique.
func (tr *Tracer) Complete(tokens []string, executor domain.Executor) []string {
	if len(tokens) == 0 {
		tokens = []string{""}
	}
	last := len(tokens) - 1
	query := tokens[last]
	r := tr.Trace(tokens[:last], executor)

	var candidates []candidate
	seen := make(map[string]struct{})
	for _, ways := range [][]Way{r.Incomplete, r.Matching, r.NoDestination} {
		for _, w := range ways {
			if w.Depth != last {
				continue
			}
			cfg := tr.tree.Node(w.Node).Config
			for _, v := range w.Completion {
				if cfg.MultiWord && strings.ContainsFunc(v, unicode.IsSpace) {
					v = strconv.Quote(v)
				}
				if _, dup := seen[v]; dup {
					continue
				}
				seen[v] = struct{}{}
				candidates = append(candidates, candidate{value: v, ignoreCase: cfg.IgnoreCase})
			}
		}
	}

	prefixed := make([]string, 0, len(candidates))
	var containing []string
	lowerQuery := strings.ToLower(query)
	for _, c := range candidates {
		switch {
		case hasPrefix(c.value, query, c.ignoreCase):
			prefixed = append(prefixed, c.value)
		case strings.Contains(strings.ToLower(c.value), lowerQuery):
			containing = append(containing, c.value)
		}
	}
	return append(prefixed, containing...)
}

func hasPrefix(value, prefix string, ignoreCase bool) bool {
	if ignoreCase {
		return strings.HasPrefix(strings.ToLower(value), strings.ToLower(prefix))
	}
	return strings.HasPrefix(value, prefix)
}
