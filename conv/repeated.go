package conv

import "strings"

// repeated holds items of a delimited list literal
type repeated []string

// newRepeated splits "a,b" or "[1, 2, 3]" into items; numeric lists are trimmed and skip blank items
func newRepeated(literal string, numeric bool) repeated {
	literal = strings.TrimSpace(literal)
	if inner, ok := strings.CutPrefix(literal, "["); ok {
		if inner, ok = strings.CutSuffix(inner, "]"); ok {
			literal = inner
		}
	}
	if literal == "" {
		return repeated{}
	}
	items := repeated(strings.Split(literal, ","))
	if !numeric {
		return items
	}
	kept := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	return kept
}
