// Package tags parses the sqlmap struct tag that controls column binding.
//
// Supported forms:
//
//	sqlmap:"customer_id"             source column name
//	sqlmap:"name=customer_id"        source column name
//	sqlmap:"-"                       do not map
//	sqlmap:"doNotMap"                do not map
//	sqlmap:"name=code,doNotMap=false"
package tags

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// TagName is the struct tag used for binding metadata
const TagName = "sqlmap"

// Tag represents parsed sqlmap tag
type Tag struct {
	Name     string
	DoNotMap bool
}

func (t *Tag) update(key, value string, position int) error {
	switch strings.ToLower(key) {
	case "name", "source", "sourcename", "column":
		t.Name = value
	case "donotmap", "ignore", "-":
		if value == "" {
			t.DoNotMap = true
			return nil
		}
		flag, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %v value: %q, %w", key, value, err)
		}
		t.DoNotMap = flag
	default:
		if position == 0 && value == "" {
			t.Name = key
			return nil
		}
		return fmt.Errorf("unsupported %v tag key: %v", TagName, key)
	}
	return nil
}

// Parse parses sqlmap tag from supplied struct tag, it returns nil tag if sqlmap tag is absent
func Parse(tag reflect.StructTag) (*Tag, error) {
	literal, ok := tag.Lookup(TagName)
	if !ok {
		return nil, nil
	}
	return ParseValues(Values(literal))
}

// ParseValues parses sqlmap tag values
func ParseValues(values Values) (*Tag, error) {
	ret := &Tag{}
	if strings.TrimSpace(string(values)) == "-" {
		ret.DoNotMap = true
		return ret, nil
	}
	position := 0
	err := values.MatchPairs(func(key, value string) error {
		defer func() { position++ }()
		return ret.update(key, value, position)
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
