package conv

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

// Options configures generic conversion
type Options struct {
	DateLayout    string //layout tried first when parsing time text
	TagName       string //struct tag with alternative key names for map to struct conversion
	CaseSensitive bool   //map keys have to match field names exactly
}

// DefaultOptions returns json tag, case insensitive options
func DefaultOptions() Options {
	return Options{DateLayout: DefaultDateLayout, TagName: "json"}
}

// Converter converts values of unrelated types with reflection
type Converter struct {
	options Options
	keys    sync.Map //reflect.Type -> fieldKeys
}

// NewConverter creates a converter
func NewConverter(options Options) *Converter {
	return &Converter{options: options}
}

// ChangeType converts src into a new value of destType
func (c *Converter) ChangeType(src interface{}, destType reflect.Type) (interface{}, error) {
	dest := reflect.New(destType)
	if err := c.Convert(src, dest.Interface()); err != nil {
		return nil, err
	}
	return dest.Elem().Interface(), nil
}

// Convert converts src into value pointed by dest, nil src leaves dest unchanged
func (c *Converter) Convert(src interface{}, dest interface{}) error {
	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
		return fmt.Errorf("expected non nil pointer destination, but had %T", dest)
	}
	value, err := Unwrap(src)
	if err != nil || value == nil {
		return err
	}
	return c.convertValue(ptr.Elem(), reflect.ValueOf(value))
}

func (c *Converter) convertValue(destValue, srcValue reflect.Value) error {
	destType := destValue.Type()
	srcType := srcValue.Type()
	if srcType.AssignableTo(destType) {
		destValue.Set(srcValue)
		return nil
	}
	if err, ok := c.convertPrimitive(destValue, srcValue); ok {
		return err
	}
	switch destType.Kind() {
	case reflect.Ptr:
		if srcValue.Kind() == reflect.Ptr {
			if srcValue.IsNil() {
				destValue.Set(reflect.Zero(destType))
				return nil
			}
			srcValue = srcValue.Elem()
		}
		elem := reflect.New(destType.Elem())
		if err := c.convertValue(elem.Elem(), srcValue); err != nil {
			return err
		}
		destValue.Set(elem)
		return nil
	case reflect.Interface:
		if srcType.Implements(destType) {
			destValue.Set(srcValue)
			return nil
		}
	case reflect.Slice:
		return c.convertToSlice(destValue, srcValue)
	case reflect.Array:
		return c.convertToArray(destValue, srcValue)
	case reflect.Map:
		return c.convertToMap(destValue, srcValue)
	case reflect.Struct:
		if destType == timeType {
			ts, err := ToTime(srcValue.Interface(), c.options.DateLayout)
			if err != nil {
				return err
			}
			destValue.Set(reflect.ValueOf(ts))
			return nil
		}
		if srcValue.Kind() == reflect.Map {
			return c.convertToStruct(destValue, srcValue)
		}
	}
	if srcType.ConvertibleTo(destType) {
		destValue.Set(srcValue.Convert(destType))
		return nil
	}
	return fmt.Errorf("unsupported conversion: %v to %v", srcType, destType)
}

func (c *Converter) convertPrimitive(destValue, srcValue reflect.Value) (error, bool) {
	src := srcValue.Interface()
	switch destValue.Kind() {
	case reflect.String:
		text, err := ToString(src)
		if err == nil {
			destValue.SetString(text)
		}
		return err, true
	case reflect.Bool:
		v, err := ToBool(src)
		if err == nil {
			destValue.SetBool(v)
		}
		return err, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := ToInt64(src)
		if err == nil && destValue.OverflowInt(v) {
			err = fmt.Errorf("cannot convert %v to %v: %w", v, destValue.Type(), ErrOverflow)
		}
		if err == nil {
			destValue.SetInt(v)
		}
		return err, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := ToUint64(src)
		if err == nil && destValue.OverflowUint(v) {
			err = fmt.Errorf("cannot convert %v to %v: %w", v, destValue.Type(), ErrOverflow)
		}
		if err == nil {
			destValue.SetUint(v)
		}
		return err, true
	case reflect.Float32, reflect.Float64:
		v, err := ToFloat64(src)
		if err == nil && destValue.OverflowFloat(v) {
			err = fmt.Errorf("cannot convert %v to %v: %w", v, destValue.Type(), ErrOverflow)
		}
		if err == nil {
			destValue.SetFloat(v)
		}
		return err, true
	}
	return nil, false
}

func (c *Converter) convertToSlice(destValue, srcValue reflect.Value) error {
	destType := destValue.Type()
	if destType.Elem().Kind() == reflect.Uint8 {
		switch srcValue.Kind() {
		case reflect.String:
			destValue.SetBytes([]byte(srcValue.String()))
			return nil
		}
	}
	switch srcValue.Kind() {
	case reflect.String:
		items := newRepeated(srcValue.String(), isNumeric(destType.Elem()))
		srcValue = reflect.ValueOf([]string(items))
	case reflect.Slice, reflect.Array:
	default:
		srcValue = reflect.ValueOf([]interface{}{srcValue.Interface()})
	}
	length := srcValue.Len()
	sliceValue := reflect.MakeSlice(destType, length, length)
	for i := 0; i < length; i++ {
		if err := c.convertItem(sliceValue.Index(i), srcValue.Index(i)); err != nil {
			return fmt.Errorf("error converting slice element %d: %w", i, err)
		}
	}
	destValue.Set(sliceValue)
	return nil
}

func (c *Converter) convertToArray(destValue, srcValue reflect.Value) error {
	if srcValue.Kind() != reflect.Slice && srcValue.Kind() != reflect.Array {
		return fmt.Errorf("cannot convert %v to %v", srcValue.Type(), destValue.Type())
	}
	if srcValue.Len() > destValue.Len() {
		return fmt.Errorf("cannot convert %v items to %v: %w", srcValue.Len(), destValue.Type(), ErrOverflow)
	}
	for i := 0; i < srcValue.Len(); i++ {
		if err := c.convertItem(destValue.Index(i), srcValue.Index(i)); err != nil {
			return fmt.Errorf("error converting array element %d: %w", i, err)
		}
	}
	return nil
}

func (c *Converter) convertItem(destValue, srcValue reflect.Value) error {
	if srcValue.Kind() == reflect.Interface {
		if srcValue.IsNil() {
			return nil
		}
		srcValue = srcValue.Elem()
	}
	return c.convertValue(destValue, srcValue)
}

func (c *Converter) convertToMap(destValue, srcValue reflect.Value) error {
	if srcValue.Kind() != reflect.Map {
		return fmt.Errorf("cannot convert %v to map", srcValue.Type())
	}
	destType := destValue.Type()
	mapValue := reflect.MakeMapWithSize(destType, srcValue.Len())
	iter := srcValue.MapRange()
	for iter.Next() {
		key := reflect.New(destType.Key()).Elem()
		if err := c.convertItem(key, iter.Key()); err != nil {
			return fmt.Errorf("error converting map key: %w", err)
		}
		value := reflect.New(destType.Elem()).Elem()
		if err := c.convertItem(value, iter.Value()); err != nil {
			return fmt.Errorf("error converting map value: %w", err)
		}
		mapValue.SetMapIndex(key, value)
	}
	destValue.Set(mapValue)
	return nil
}

func (c *Converter) convertToStruct(destValue, srcValue reflect.Value) error {
	keys := c.fieldKeys(destValue.Type())
	for entries := srcValue.MapRange(); entries.Next(); {
		index, ok := keys[c.normalizeKey(fmt.Sprint(entries.Key().Interface()))]
		if !ok {
			continue
		}
		field, err := destValue.FieldByIndexErr(index)
		if err != nil {
			continue
		}
		if err = c.convertItem(field, entries.Value()); err != nil {
			return fmt.Errorf("failed to convert %v key %v: %w", destValue.Type(), entries.Key().Interface(), err)
		}
	}
	return nil
}

func (c *Converter) normalizeKey(key string) string {
	if c.options.CaseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// fieldKeys indexes exported fields by name and by tag name
type fieldKeys map[string][]int

func (c *Converter) fieldKeys(t reflect.Type) fieldKeys {
	if cached, ok := c.keys.Load(t); ok {
		return cached.(fieldKeys)
	}
	keys := fieldKeys{}
	for _, field := range reflect.VisibleFields(t) {
		if field.Anonymous || !field.IsExported() {
			continue
		}
		alias, _, _ := strings.Cut(field.Tag.Get(c.options.TagName), ",")
		if alias == "-" {
			continue
		}
		keys[c.normalizeKey(field.Name)] = field.Index
		if alias != "" {
			keys[c.normalizeKey(alias)] = field.Index
		}
	}
	actual, _ := c.keys.LoadOrStore(t, keys)
	return actual.(fieldKeys)
}

func isNumeric(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
