package conv

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	DefaultDateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ToTime converts value to time.Time, strings are parsed with layout first, then with common layouts
func ToTime(value interface{}, layout string) (time.Time, error) {
	switch actual := value.(type) {
	case time.Time:
		return actual, nil
	case *time.Time:
		if actual == nil {
			return time.Time{}, fmt.Errorf("cannot convert nil %T to time.Time", value)
		}
		return *actual, nil
	case string:
		return parseTime(actual, layout)
	case []byte:
		return parseTime(string(actual), layout)
	}
	srcValue := reflect.ValueOf(value)
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.Unix(srcValue.Int(), 0), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.Unix(int64(srcValue.Uint()), 0), nil
	case reflect.Float32, reflect.Float64:
		seconds := srcValue.Float()
		whole := int64(seconds)
		return time.Unix(whole, int64((seconds-float64(whole))*1e9)), nil
	case reflect.String:
		return parseTime(srcValue.String(), layout)
	}
	return time.Time{}, fmt.Errorf("cannot convert %T to time.Time", value)
}

func parseTime(text string, layout string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if layout != "" {
		if ts, err := time.Parse(layout, text); err == nil {
			return ts, nil
		}
	}
	var err error
	var ts time.Time
	for _, candidate := range timeLayouts {
		if ts, err = time.Parse(candidate, text); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time string '%s': %w", text, err)
}
