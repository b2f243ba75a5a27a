package conv

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

// ErrOverflow is returned when a value is not representable in the destination type
var ErrOverflow = errors.New("value out of range")

// Unwrap resolves driver.Valuer values (sql.NullInt64, custom types) to their driver representation
func Unwrap(value interface{}) (interface{}, error) {
	valuer, ok := value.(driver.Valuer)
	if !ok {
		return value, nil
	}
	return valuer.Value()
}

// ToString returns text representation of primitive values
func ToString(value interface{}) (string, error) {
	switch actual := value.(type) {
	case string:
		return actual, nil
	case []byte:
		return string(actual), nil
	case bool:
		return strconv.FormatBool(actual), nil
	case time.Time:
		return actual.Format(time.RFC3339Nano), nil
	case fmt.Stringer:
		return actual.String(), nil
	}
	srcValue := reflect.ValueOf(value)
	switch srcValue.Kind() {
	case reflect.String:
		return srcValue.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(srcValue.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(srcValue.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(srcValue.Bool()), nil
	}
	return "", fmt.Errorf("cannot convert %T to string", value)
}

// Text returns text representation of any value, it never fails
func Text(value interface{}) string {
	if text, err := ToString(value); err == nil {
		return text
	}
	return fmt.Sprint(value)
}

// ToBool converts value to bool
func ToBool(value interface{}) (bool, error) {
	switch actual := value.(type) {
	case bool:
		return actual, nil
	case string:
		return parseBool(actual)
	case []byte:
		return parseBool(string(actual))
	}
	srcValue := reflect.ValueOf(value)
	switch srcValue.Kind() {
	case reflect.Bool:
		return srcValue.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return srcValue.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return srcValue.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return srcValue.Float() != 0, nil
	case reflect.String:
		return parseBool(srcValue.String())
	}
	return false, fmt.Errorf("cannot convert %T to bool", value)
}

func parseBool(text string) (bool, error) {
	text = strings.TrimSpace(text)
	result, err := strconv.ParseBool(text)
	if err == nil {
		return result, nil
	}
	if f, fErr := strconv.ParseFloat(text, 64); fErr == nil {
		return f != 0, nil
	}
	return false, err
}

// ToInt64 converts value to int64, floats are rounded half to even
func ToInt64(value interface{}) (int64, error) {
	switch actual := value.(type) {
	case int64:
		return actual, nil
	case int:
		return int64(actual), nil
	case string:
		return parseInt(actual)
	case []byte:
		return parseInt(string(actual))
	}
	srcValue := reflect.ValueOf(value)
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return srcValue.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := srcValue.Uint()
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("cannot convert %v to int64: %w", v, ErrOverflow)
		}
		return int64(v), nil
	case reflect.Float32, reflect.Float64:
		return floatToInt64(srcValue.Float())
	case reflect.Bool:
		if srcValue.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return parseInt(srcValue.String())
	}
	return 0, fmt.Errorf("cannot convert %T to int", value)
}

func parseInt(text string) (int64, error) {
	text = strings.TrimSpace(text)
	result, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("cannot convert %q to int64: %w", text, ErrOverflow)
	}
	f, fErr := strconv.ParseFloat(text, 64)
	if fErr != nil {
		return 0, err
	}
	return floatToInt64(f)
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %v to int64: %w", f, ErrOverflow)
	}
	f = math.RoundToEven(f)
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("cannot convert %v to int64: %w", f, ErrOverflow)
	}
	return int64(f), nil
}

// ToUint64 converts value to uint64, negative values fail
func ToUint64(value interface{}) (uint64, error) {
	switch actual := value.(type) {
	case uint64:
		return actual, nil
	case string:
		return parseUint(actual)
	case []byte:
		return parseUint(string(actual))
	}
	srcValue := reflect.ValueOf(value)
	switch srcValue.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return srcValue.Uint(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return 0, fmt.Errorf("cannot convert negative value %d to unsigned int: %w", v, ErrOverflow)
		}
		return uint64(v), nil
	case reflect.Float32, reflect.Float64:
		return floatToUint64(srcValue.Float())
	case reflect.Bool:
		if srcValue.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return parseUint(srcValue.String())
	}
	return 0, fmt.Errorf("cannot convert %T to uint", value)
}

func parseUint(text string) (uint64, error) {
	text = strings.TrimSpace(text)
	result, err := strconv.ParseUint(text, 10, 64)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("cannot convert %q to uint64: %w", text, ErrOverflow)
	}
	f, fErr := strconv.ParseFloat(text, 64)
	if fErr != nil {
		return 0, err
	}
	return floatToUint64(f)
}

func floatToUint64(f float64) (uint64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("cannot convert %v to uint64: %w", f, ErrOverflow)
	}
	f = math.RoundToEven(f)
	if f < 0 || f >= math.MaxUint64 {
		return 0, fmt.Errorf("cannot convert %v to uint64: %w", f, ErrOverflow)
	}
	return uint64(f), nil
}

// ToFloat64 converts value to float64
func ToFloat64(value interface{}) (float64, error) {
	switch actual := value.(type) {
	case float64:
		return actual, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(actual), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(actual)), 64)
	}
	srcValue := reflect.ValueOf(value)
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(srcValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(srcValue.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return srcValue.Float(), nil
	case reflect.Bool:
		if srcValue.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		return strconv.ParseFloat(strings.TrimSpace(srcValue.String()), 64)
	}
	return 0, fmt.Errorf("cannot convert %T to float", value)
}

// ToSigned converts value to signed integer type T with range check
func ToSigned[T constraints.Signed](value interface{}) (T, error) {
	v, err := ToInt64(value)
	if err != nil {
		return 0, err
	}
	result := T(v)
	if int64(result) != v {
		return 0, fmt.Errorf("cannot convert %v to %T: %w", v, result, ErrOverflow)
	}
	return result, nil
}

// ToUnsigned converts value to unsigned integer type T with range check
func ToUnsigned[T constraints.Unsigned](value interface{}) (T, error) {
	v, err := ToUint64(value)
	if err != nil {
		return 0, err
	}
	result := T(v)
	if uint64(result) != v {
		return 0, fmt.Errorf("cannot convert %v to %T: %w", v, result, ErrOverflow)
	}
	return result, nil
}

// ToFloat converts value to float type T with range check
func ToFloat[T constraints.Float](value interface{}) (T, error) {
	v, err := ToFloat64(value)
	if err != nil {
		return 0, err
	}
	result := T(v)
	if _, ok := any(result).(float32); ok && math.Abs(v) > math.MaxFloat32 && !math.IsInf(v, 0) {
		return 0, fmt.Errorf("cannot convert %v to %T: %w", v, result, ErrOverflow)
	}
	return result, nil
}
