package rowmapper

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/viant/rowmapper/conv"
)

type status int16

func TestStrategyOf(t *testing.T) {
	var testCases = []struct {
		description string
		value       interface{}
		expect      Strategy
	}{
		{description: "bool", value: true, expect: StrategyBool},
		{description: "int", value: 0, expect: StrategyInt},
		{description: "named int16", value: status(0), expect: StrategyInt16},
		{description: "uint8", value: uint8(0), expect: StrategyUint8},
		{description: "float32", value: float32(0), expect: StrategyFloat32},
		{description: "string", value: "", expect: StrategyText},
		{description: "bytes", value: []byte{}, expect: StrategyBytes},
		{description: "ints", value: []int{}, expect: StrategyArray},
		{description: "array", value: [2]string{}, expect: StrategyArray},
		{description: "time", value: time.Time{}, expect: StrategyTime},
		{description: "char", value: Char(0), expect: StrategyChar},
		{description: "decimal", value: decimal.Decimal{}, expect: StrategyDecimal},
		{description: "scanner", value: sql.NullString{}, expect: StrategyScanner},
		{description: "map", value: map[string]int{}, expect: StrategyObject},
	}
	for _, testCase := range testCases {
		actual := StrategyOf(reflect.TypeOf(testCase.value))
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
	assert.Equal(t, "decimal", StrategyDecimal.String())
	assert.Equal(t, "strategy(99)", Strategy(99).String())
}

func TestNewConverter(t *testing.T) {
	seven := 7
	var testCases = []struct {
		description string
		fieldType   reflect.Type
		tag         reflect.StructTag
		raw         interface{}
		expect      interface{}
		expectErr   bool
	}{
		{description: "int from text", fieldType: reflect.TypeOf(0), raw: " 42 ", expect: 42},
		{description: "int from float", fieldType: reflect.TypeOf(0), raw: 2.5, expect: 2},
		{description: "int8 overflow", fieldType: reflect.TypeOf(int8(0)), raw: 300, expectErr: true},
		{description: "int from word", fieldType: reflect.TypeOf(0), raw: "high", expectErr: true},
		{description: "uint from negative", fieldType: reflect.TypeOf(uint(0)), raw: -1, expectErr: true},
		{description: "named type", fieldType: reflect.TypeOf(status(0)), raw: "3", expect: status(3)},
		{description: "exact type", fieldType: reflect.TypeOf(status(0)), raw: status(4), expect: status(4)},
		{description: "nullable int", fieldType: reflect.TypeOf(&seven), raw: "7", expect: &seven},
		{description: "bool from text", fieldType: reflect.TypeOf(false), raw: "true", expect: true},
		{description: "bool from number", fieldType: reflect.TypeOf(false), raw: 1, expect: true},
		{description: "float32", fieldType: reflect.TypeOf(float32(0)), raw: "1.5", expect: float32(1.5)},
		{description: "text trimmed", fieldType: reflect.TypeOf(""), raw: "  x  ", expect: "x"},
		{description: "text from int", fieldType: reflect.TypeOf(""), raw: int64(12), expect: "12"},
		{description: "bytes kept", fieldType: reflect.TypeOf([]byte{}), raw: " a ", expect: []byte(" a ")},
		{description: "char truncated", fieldType: reflect.TypeOf(Char(0)), raw: "abc", expect: Char('a')},
		{description: "char multibyte", fieldType: reflect.TypeOf(Char(0)), raw: []byte("żółw"), expect: Char('ż')},
		{description: "char empty", fieldType: reflect.TypeOf(Char(0)), raw: "", expectErr: true},
		{description: "scanner", fieldType: reflect.TypeOf(sql.NullString{}), raw: "abc", expect: sql.NullString{String: "abc", Valid: true}},
		{description: "valuer unwrapped", fieldType: reflect.TypeOf(0), raw: sql.NullInt64{Int64: 7, Valid: true}, expect: 7},
		{description: "time default layout", fieldType: reflect.TypeOf(time.Time{}), raw: "2023-01-02 10:11:12", expect: time.Date(2023, 1, 2, 10, 11, 12, 0, time.UTC)},
		{description: "time tag layout", fieldType: reflect.TypeOf(time.Time{}), tag: `format:"timeLayout=02/01/2006"`, raw: "03/04/2021", expect: time.Date(2021, 4, 3, 0, 0, 0, 0, time.UTC)},
		{description: "time invalid", fieldType: reflect.TypeOf(time.Time{}), raw: "yesterday", expectErr: true},
		{description: "ints from list", fieldType: reflect.TypeOf([]int{}), raw: "[1, 2,3]", expect: []int{1, 2, 3}},
		{description: "strings from list", fieldType: reflect.TypeOf([]string{}), raw: "a,b", expect: []string{"a", "b"}},
	}
	for _, testCase := range testCases {
		convert := NewConverter(testCase.fieldType, testCase.tag)
		actual, err := convert(testCase.raw)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.fieldType, reflect.TypeOf(actual), testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestNewConverter_SameTypeValues(t *testing.T) {
	padded := "  padded  "
	trimmed := NewConverter(reflect.TypeOf(""), "")
	actual, err := trimmed(padded)
	assert.Nil(t, err)
	assert.Equal(t, "padded", actual)

	nullableText := NewConverter(reflect.TypeOf(&padded), "")
	actual, err = nullableText(&padded)
	assert.Nil(t, err)
	if assert.IsType(t, &padded, actual) {
		assert.Equal(t, "padded", *actual.(*string))
		assert.NotSame(t, &padded, actual)
	}
	actual, err = nullableText(padded)
	assert.Nil(t, err)
	assert.Equal(t, "padded", *actual.(*string))

	raw := []byte("abc")
	actual, err = NewConverter(reflect.TypeOf([]byte{}), "")(raw)
	assert.Nil(t, err)
	copied := actual.([]byte)
	copied[0] = 'Z'
	assert.Equal(t, []byte("abc"), raw)
	assert.Equal(t, []byte("Zbc"), copied)
}

func TestNewConverter_Decimal(t *testing.T) {
	convert := NewConverter(reflect.TypeOf(decimal.Decimal{}), "")
	for _, raw := range []interface{}{"12.50", 12.5, float32(12.5), []byte("12.5")} {
		actual, err := convert(raw)
		if !assert.Nil(t, err) {
			continue
		}
		assert.True(t, decimal.RequireFromString("12.5").Equal(actual.(decimal.Decimal)), raw)
	}
	actual, err := convert(uint64(18446744073709551615))
	assert.Nil(t, err)
	assert.Equal(t, "18446744073709551615", actual.(decimal.Decimal).String())
	_, err = convert("twelve")
	assert.NotNil(t, err)
}

func TestNewConverter_Overflow(t *testing.T) {
	_, err := NewConverter(reflect.TypeOf(uint8(0)), "")(256)
	assert.True(t, errors.Is(err, conv.ErrOverflow))
	_, err = NewConverter(reflect.TypeOf(int16(0)), "")("40000")
	assert.True(t, errors.Is(err, conv.ErrOverflow))
}

func TestChar_String(t *testing.T) {
	assert.Equal(t, "ż", Char('ż').String())
}
