package rowmapper

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

// SetMarkerTag marks a struct (or struct pointer) field holding bool flags named after mapped fields,
// a flag is set when its field received a value from the source
const SetMarkerTag = "setMarker"

// IsSetMarker returns true if field tag declares set marker holder
func IsSetMarker(tag reflect.StructTag) bool {
	return tag.Get(SetMarkerTag) == "true"
}

// marker records applied bindings in the set marker holder
type marker struct {
	holder     *xunsafe.Field
	holderType reflect.Type
	flags      []*xunsafe.Field //parallel to plan bindings, nil if binding has no flag
}

func newMarker(field reflect.StructField, bindings []*FieldBinding) *marker {
	holderType := indirect(field.Type)
	if holderType.Kind() != reflect.Struct {
		return nil
	}
	ret := &marker{holder: xunsafe.NewField(field), holderType: field.Type, flags: make([]*xunsafe.Field, len(bindings))}
	for i, binding := range bindings {
		flag, ok := holderType.FieldByName(binding.Name)
		if !ok || flag.Type.Kind() != reflect.Bool || len(flag.Index) != 1 {
			continue
		}
		ret.flags[i] = xunsafe.NewField(flag)
	}
	return ret
}

// ensure returns holder pointer, allocating pointer holders
func (m *marker) ensure(ptr unsafe.Pointer) unsafe.Pointer {
	holderPtr := m.holder.Pointer(ptr)
	if m.holderType.Kind() == reflect.Ptr {
		target := (*unsafe.Pointer)(holderPtr)
		if *target == nil {
			alloc := reflect.New(m.holderType.Elem())
			*target = unsafe.Pointer(alloc.Pointer())
		}
		return *target
	}
	return holderPtr
}

func (m *marker) set(holderPtr unsafe.Pointer, index int) {
	if flag := m.flags[index]; flag != nil {
		*(*bool)(flag.Pointer(holderPtr)) = true
	}
}
