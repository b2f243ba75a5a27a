package rowmapper

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/viant/rowmapper/conv"
	"github.com/viant/tagly/format"
	"golang.org/x/exp/constraints"
)

// Char is a single character field, it takes the first rune of the cell text representation;
// remaining characters are dropped, an empty text fails conversion.
type Char rune

// String returns character as text
func (c Char) String() string {
	return string(rune(c))
}

// Strategy identifies conversion strategy selected for a field type
type Strategy int

const (
	StrategyObject Strategy = iota
	StrategyBool
	StrategyInt
	StrategyInt8
	StrategyInt16
	StrategyInt32
	StrategyInt64
	StrategyUint
	StrategyUint8
	StrategyUint16
	StrategyUint32
	StrategyUint64
	StrategyFloat32
	StrategyFloat64
	StrategyDecimal
	StrategyTime
	StrategyChar
	StrategyText
	StrategyBytes
	StrategyScanner
	StrategyArray
)

var strategyNames = [...]string{"object", "bool", "int", "int8", "int16", "int32", "int64",
	"uint", "uint8", "uint16", "uint32", "uint64", "float32", "float64",
	"decimal", "time", "char", "text", "bytes", "scanner", "array"}

// String returns strategy name
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// Converter converts non null raw cell value into a value of the field type
type Converter func(raw interface{}) (interface{}, error)

type strategyFactory func(target reflect.Type, tag reflect.StructTag) Converter

var (
	timeType    = reflect.TypeOf(time.Time{})
	charType    = reflect.TypeOf(Char(0))
	decimalType = reflect.TypeOf(decimal.Decimal{})
	scannerType = reflect.TypeOf((*sql.Scanner)(nil)).Elem()

	errNoValue   = errors.New("no value")
	errEmptyChar = errors.New("cannot convert empty text to char")

	generic = conv.NewConverter(conv.DefaultOptions())
)

var strategies = map[Strategy]strategyFactory{
	StrategyObject:  genericStrategy,
	StrategyBool:    boolStrategy,
	StrategyInt:     signedStrategy[int],
	StrategyInt8:    signedStrategy[int8],
	StrategyInt16:   signedStrategy[int16],
	StrategyInt32:   signedStrategy[int32],
	StrategyInt64:   signedStrategy[int64],
	StrategyUint:    unsignedStrategy[uint],
	StrategyUint8:   unsignedStrategy[uint8],
	StrategyUint16:  unsignedStrategy[uint16],
	StrategyUint32:  unsignedStrategy[uint32],
	StrategyUint64:  unsignedStrategy[uint64],
	StrategyFloat32: floatStrategy[float32],
	StrategyFloat64: floatStrategy[float64],
	StrategyDecimal: decimalStrategy,
	StrategyTime:    timeStrategy,
	StrategyChar:    charStrategy,
	StrategyText:    textStrategy,
	StrategyBytes:   bytesStrategy,
	StrategyScanner: scannerStrategy,
	StrategyArray:   genericStrategy,
}

// canonicalTypes lists strategies producing a basic type, named field types are converted from it
var canonicalTypes = map[Strategy]reflect.Type{
	StrategyBool:    reflect.TypeOf(false),
	StrategyInt:     reflect.TypeOf(int(0)),
	StrategyInt8:    reflect.TypeOf(int8(0)),
	StrategyInt16:   reflect.TypeOf(int16(0)),
	StrategyInt32:   reflect.TypeOf(int32(0)),
	StrategyInt64:   reflect.TypeOf(int64(0)),
	StrategyUint:    reflect.TypeOf(uint(0)),
	StrategyUint8:   reflect.TypeOf(uint8(0)),
	StrategyUint16:  reflect.TypeOf(uint16(0)),
	StrategyUint32:  reflect.TypeOf(uint32(0)),
	StrategyUint64:  reflect.TypeOf(uint64(0)),
	StrategyFloat32: reflect.TypeOf(float32(0)),
	StrategyFloat64: reflect.TypeOf(float64(0)),
	StrategyText:    reflect.TypeOf(""),
	StrategyBytes:   reflect.TypeOf([]byte{}),
}

// StrategyOf returns conversion strategy for a non pointer field type
func StrategyOf(t reflect.Type) Strategy {
	switch t {
	case charType:
		return StrategyChar
	case decimalType:
		return StrategyDecimal
	case timeType:
		return StrategyTime
	}
	if reflect.PointerTo(t).Implements(scannerType) {
		return StrategyScanner
	}
	switch t.Kind() {
	case reflect.Bool:
		return StrategyBool
	case reflect.Int:
		return StrategyInt
	case reflect.Int8:
		return StrategyInt8
	case reflect.Int16:
		return StrategyInt16
	case reflect.Int32:
		return StrategyInt32
	case reflect.Int64:
		return StrategyInt64
	case reflect.Uint:
		return StrategyUint
	case reflect.Uint8:
		return StrategyUint8
	case reflect.Uint16:
		return StrategyUint16
	case reflect.Uint32:
		return StrategyUint32
	case reflect.Uint64:
		return StrategyUint64
	case reflect.Float32:
		return StrategyFloat32
	case reflect.Float64:
		return StrategyFloat64
	case reflect.String:
		return StrategyText
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return StrategyBytes
		}
		return StrategyArray
	case reflect.Array:
		return StrategyArray
	}
	return StrategyObject
}

// NewConverter returns converter for the declared field type, a pointer type is treated as nullable of its element.
// The returned converter yields values of exactly fieldType; values of fieldType still go through the strategy,
// so text is trimmed and bytes are copied. Only object strategy values of fieldType are returned as is.
func NewConverter(fieldType reflect.Type, tag reflect.StructTag) Converter {
	if fieldType.Kind() == reflect.Ptr {
		return nullable(fieldType, NewConverter(fieldType.Elem(), tag))
	}
	strategy := StrategyOf(fieldType)
	convert := strategies[strategy](fieldType, tag)
	if canonical, ok := canonicalTypes[strategy]; ok && canonical != fieldType {
		convert = convertedTo(fieldType, convert)
	}
	passThrough := strategy == StrategyObject
	return func(raw interface{}) (interface{}, error) {
		if raw == nil {
			return nil, errNoValue
		}
		if passThrough && reflect.TypeOf(raw) == fieldType {
			return raw, nil
		}
		value, err := conv.Unwrap(raw)
		if err != nil {
			return nil, err
		}
		if rValue := reflect.ValueOf(value); rValue.Kind() == reflect.Ptr {
			if rValue.IsNil() {
				return nil, errNoValue
			}
			value = rValue.Elem().Interface()
		}
		if value == nil {
			return nil, errNoValue
		}
		return convert(value)
	}
}

func nullable(fieldType reflect.Type, convert Converter) Converter {
	return func(raw interface{}) (interface{}, error) {
		value, err := convert(raw)
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(fieldType.Elem())
		ptr.Elem().Set(reflect.ValueOf(value))
		return ptr.Interface(), nil
	}
}

func convertedTo(fieldType reflect.Type, convert Converter) Converter {
	return func(raw interface{}) (interface{}, error) {
		value, err := convert(raw)
		if err != nil {
			return nil, err
		}
		return reflect.ValueOf(value).Convert(fieldType).Interface(), nil
	}
}

func boolStrategy(reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		v, err := conv.ToBool(raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func signedStrategy[T constraints.Signed](reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		v, err := conv.ToSigned[T](raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func unsignedStrategy[T constraints.Unsigned](reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		v, err := conv.ToUnsigned[T](raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func floatStrategy[T constraints.Float](reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		v, err := conv.ToFloat[T](raw)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func decimalStrategy(reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		switch actual := raw.(type) {
		case float64:
			return decimal.NewFromFloat(actual), nil
		case float32:
			return decimal.NewFromFloat32(actual), nil
		case bool:
			return nil, fmt.Errorf("cannot convert %T to decimal", raw)
		}
		rValue := reflect.ValueOf(raw)
		switch rValue.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return decimal.NewFromInt(rValue.Int()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return decimal.NewFromBigInt(new(big.Int).SetUint64(rValue.Uint()), 0), nil
		}
		text, err := conv.ToString(raw)
		if err != nil {
			return nil, err
		}
		v, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func timeStrategy(_ reflect.Type, tag reflect.StructTag) Converter {
	layout := ""
	if formatTag, _ := format.Parse(tag); formatTag != nil {
		layout = formatTag.TimeLayout
	}
	if layout == "" {
		layout = tag.Get("timeLayout")
	}
	return func(raw interface{}) (interface{}, error) {
		v, err := conv.ToTime(raw, layout)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

func charStrategy(reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		r, size := utf8.DecodeRuneInString(conv.Text(raw))
		if size == 0 {
			return nil, errEmptyChar
		}
		return Char(r), nil
	}
}

func textStrategy(reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		return strings.TrimSpace(conv.Text(raw)), nil
	}
}

func bytesStrategy(reflect.Type, reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		switch actual := raw.(type) {
		case []byte:
			return bytes.Clone(actual), nil
		case string:
			return []byte(actual), nil
		}
		text, err := conv.ToString(raw)
		if err != nil {
			return nil, err
		}
		return []byte(text), nil
	}
}

func scannerStrategy(target reflect.Type, _ reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		ptr := reflect.New(target)
		if err := ptr.Interface().(sql.Scanner).Scan(raw); err != nil {
			return nil, err
		}
		return ptr.Elem().Interface(), nil
	}
}

func genericStrategy(target reflect.Type, _ reflect.StructTag) Converter {
	return func(raw interface{}) (interface{}, error) {
		return generic.ChangeType(raw, target)
	}
}
