package rowmapper

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/viant/rowmapper/internal/cache"
	"github.com/viant/xunsafe"
)

// ErrNotStruct is returned when a target type is not a struct
var ErrNotStruct = errors.New("rowmapper: target type is not a struct")

type (
	// FieldBinding binds one writable field to a source column
	FieldBinding struct {
		Field    *xunsafe.Field
		Type     reflect.Type
		Name     string
		Column   string
		DoNotMap bool
		Strategy Strategy
		convert  Converter
	}

	// Plan is an immutable, ordered list of field bindings of a struct type
	Plan struct {
		Type     reflect.Type
		Bindings []*FieldBinding
		marker   *marker
	}
)

var (
	plans      = cache.NewMap[reflect.Type, *cache.Once[*Plan]]()
	planBuilds atomic.Int64
)

// Convert converts raw non null value with the field converter
func (b *FieldBinding) Convert(raw interface{}) (interface{}, error) {
	if b.convert == nil {
		return nil, fmt.Errorf("field %v is not mapped", b.Name)
	}
	return b.convert(raw)
}

// Lookup returns binding for a field name
func (p *Plan) Lookup(name string) *FieldBinding {
	for _, binding := range p.Bindings {
		if binding.Name == name {
			return binding
		}
	}
	return nil
}

// Columns returns source column names of mapped fields
func (p *Plan) Columns() []string {
	var result = make([]string, 0, len(p.Bindings))
	for _, binding := range p.Bindings {
		if !binding.DoNotMap {
			result = append(result, binding.Column)
		}
	}
	return result
}

// PlanOf returns cached binding plan of T, T has to be a struct type
func PlanOf[T any]() (*Plan, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	return PlanFor(t)
}

// PlanFor returns binding plan of t, building it once per type
func PlanFor(t reflect.Type) (*Plan, error) {
	if t == nil {
		return nil, ErrNotStruct
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	entry := plans.GetOrPut(t, func() *cache.Once[*Plan] { return &cache.Once[*Plan]{} })
	return entry.Get(func() (*Plan, error) {
		return buildPlan(t)
	})
}

func buildPlan(t reflect.Type) (*Plan, error) {
	planBuilds.Add(1)
	overrides := registry.seal(t)
	ret := &Plan{Type: t}
	var markerField *reflect.StructField
	for _, field := range writableFields(t) {
		if IsSetMarker(field.Tag) {
			markerField = &field
			continue
		}
		var override *FieldOverride
		if candidate, ok := overrides[field.Name]; ok {
			override = &candidate
		}
		column, skip, err := resolveColumn(field, override)
		if err != nil {
			return nil, fmt.Errorf("failed to build %v plan: %w", t.String(), err)
		}
		binding := &FieldBinding{
			Field:    xunsafe.NewField(field),
			Type:     field.Type,
			Name:     field.Name,
			Column:   column,
			DoNotMap: skip,
		}
		if !skip {
			binding.Strategy = StrategyOf(indirect(field.Type))
			binding.convert = NewConverter(field.Type, field.Tag)
		}
		ret.Bindings = append(ret.Bindings, binding)
	}
	if markerField != nil {
		ret.marker = newMarker(*markerField, ret.Bindings)
	}
	return ret, nil
}

// writableFields returns exported fields in declaration order, promoted fields of embedded
// value structs are returned with their absolute offset, fields behind embedded pointers are skipped
func writableFields(t reflect.Type) []reflect.StructField {
	var result []reflect.StructField
	for _, field := range reflect.VisibleFields(t) {
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && indirect(field.Type).Kind() == reflect.Struct && indirect(field.Type) != timeType {
			continue
		}
		offset, ok := absoluteOffset(t, field.Index)
		if !ok {
			continue
		}
		field.Offset = offset
		result = append(result, field)
	}
	return result
}

func absoluteOffset(t reflect.Type, index []int) (uintptr, bool) {
	offset := uintptr(0)
	current := t
	for i, pos := range index {
		field := current.Field(pos)
		offset += field.Offset
		if i == len(index)-1 {
			break
		}
		if field.Type.Kind() != reflect.Struct {
			return 0, false
		}
		current = field.Type
	}
	return offset, true
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
