package tags

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	spaceToken = iota
	commaToken
	assignToken
	braceToken
	quoteToken
)

var (
	spaceMatcher  = parsly.NewToken(spaceToken, "space", matcher.NewWhiteSpace())
	commaMatcher  = parsly.NewToken(commaToken, ",", matcher.NewTerminator(',', true))
	assignMatcher = parsly.NewToken(assignToken, "=", matcher.NewTerminator('=', true))
	braceMatcher  = parsly.NewToken(braceToken, "{...}", matcher.NewBlock('{', '}', '\\'))
	quoteMatcher  = parsly.NewToken(quoteToken, "'...'", matcher.NewQuote('\'', '\\'))
)

// Values represents raw sqlmap tag literal
type Values string

// MatchPairs calls onMatch for every comma separated key[=value] pair, a value can be wrapped with {} or ''
func (v Values) MatchPairs(onMatch func(key, value string) error) error {
	cursor := parsly.NewCursor("", []byte(v), 0)
	for cursor.Pos < len(cursor.Input) {
		start := cursor.Pos
		key, value := nextPair(cursor)
		if cursor.Pos == start {
			return nil
		}
		if key == "" {
			continue
		}
		if err := onMatch(key, value); err != nil {
			return err
		}
	}
	return nil
}

func nextPair(cursor *parsly.Cursor) (string, string) {
	rest := cursor.Input[cursor.Pos:]
	terminator := commaMatcher
	if eq := bytes.IndexByte(rest, '='); eq != -1 {
		if comma := bytes.IndexByte(rest, ','); comma == -1 || eq < comma {
			terminator = assignMatcher
		}
	}
	match := cursor.MatchAfterOptional(spaceMatcher, braceMatcher, terminator)
	switch match.Code {
	case braceToken:
		key := unwrap(match.Text(cursor))
		cursor.MatchAny(commaMatcher)
		return strings.TrimSpace(key), ""
	case assignToken:
		key := strings.TrimSuffix(match.Text(cursor), "=")
		return strings.TrimSpace(key), strings.TrimSpace(matchValue(cursor))
	case commaToken:
		return splitPair(strings.TrimSuffix(match.Text(cursor), ","))
	}
	return splitPair(remaining(cursor))
}

func matchValue(cursor *parsly.Cursor) string {
	match := cursor.MatchAny(braceMatcher, quoteMatcher, commaMatcher)
	switch match.Code {
	case braceToken, quoteToken:
		value := unwrap(match.Text(cursor))
		cursor.MatchAny(commaMatcher)
		return value
	case commaToken:
		return strings.TrimSuffix(match.Text(cursor), ",")
	}
	return remaining(cursor)
}

// remaining consumes the rest of the input
func remaining(cursor *parsly.Cursor) string {
	if cursor.Pos >= len(cursor.Input) {
		return ""
	}
	text := string(cursor.Input[cursor.Pos:])
	cursor.Pos = len(cursor.Input)
	return text
}

func splitPair(text string) (string, string) {
	key, value, _ := strings.Cut(text, "=")
	return strings.TrimSpace(key), strings.TrimSpace(value)
}

func unwrap(text string) string {
	if len(text) < 2 {
		return text
	}
	switch text[0] {
	case '{':
		if text[len(text)-1] == '}' {
			return text[1 : len(text)-1]
		}
	case '\'':
		if text[len(text)-1] == '\'' {
			return text[1 : len(text)-1]
		}
	}
	return text
}
