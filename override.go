package rowmapper

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/viant/tagly/format/text"
	"gopkg.in/yaml.v3"
)

var (
	// ErrPlanSealed is returned when overrides are registered after the type plan was built
	ErrPlanSealed = errors.New("rowmapper: plan already built")
	// ErrUnknownField is returned when an override names a field the type does not have
	ErrUnknownField = errors.New("rowmapper: unknown field")
)

// FieldOverride overrides binding of a single field, it takes precedence over struct tags
type FieldOverride struct {
	Field    string `yaml:"field"`
	Source   string `yaml:"source"`
	DoNotMap bool   `yaml:"doNotMap"`
}

type overrideRegistry struct {
	mux    sync.Mutex
	fields map[reflect.Type]map[string]FieldOverride
	sealed map[reflect.Type]bool
}

var registry = &overrideRegistry{
	fields: map[reflect.Type]map[string]FieldOverride{},
	sealed: map[reflect.Type]bool{},
}

// Register registers field overrides for T, it has to be called before T is mapped for the first time
func Register[T any](overrides ...FieldOverride) error {
	return registry.register(reflect.TypeOf((*T)(nil)).Elem(), overrides)
}

// RegisterYAML registers field overrides for T declared as YAML mapping:
//
//	ID:
//	  source: customer_id
//	internal_note:
//	  doNotMap: true
//
// Keys are field names, in any case format.
func RegisterYAML[T any](data []byte) error {
	var declared map[string]FieldOverride
	if err := yaml.Unmarshal(data, &declared); err != nil {
		return fmt.Errorf("failed to decode overrides: %w", err)
	}
	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)
	overrides := make([]FieldOverride, 0, len(names))
	for _, name := range names {
		override := declared[name]
		if override.Field == "" {
			override.Field = name
		}
		overrides = append(overrides, override)
	}
	return Register[T](overrides...)
}

func (r *overrideRegistry) register(t reflect.Type, overrides []FieldOverride) error {
	t = indirect(t)
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v", ErrNotStruct, t)
	}
	fields := writableFields(t)
	resolved := make([]FieldOverride, 0, len(overrides))
	for _, override := range overrides {
		name, ok := matchFieldName(fields, override.Field)
		if !ok {
			return fmt.Errorf("%w: %v.%v", ErrUnknownField, t.String(), override.Field)
		}
		override.Field = name
		resolved = append(resolved, override)
	}
	r.mux.Lock()
	defer r.mux.Unlock()
	if r.sealed[t] {
		return fmt.Errorf("%w: %v", ErrPlanSealed, t.String())
	}
	byName, ok := r.fields[t]
	if !ok {
		byName = map[string]FieldOverride{}
		r.fields[t] = byName
	}
	for _, override := range resolved {
		byName[override.Field] = override
	}
	return nil
}

// seal marks t plan as built and returns its overrides
func (r *overrideRegistry) seal(t reflect.Type) map[string]FieldOverride {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.sealed[t] = true
	return r.fields[t]
}

// matchFieldName matches exact name first, then case insensitive name, then name converted to upper camel
func matchFieldName(fields []reflect.StructField, name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, field := range fields {
		if field.Name == name {
			return field.Name, true
		}
	}
	camel := name
	if caseFormat := text.DetectCaseFormat(name); caseFormat.IsDefined() {
		camel = caseFormat.Format(name, text.CaseFormatUpperCamel)
	}
	for _, field := range fields {
		if strings.EqualFold(field.Name, name) || strings.EqualFold(field.Name, camel) {
			return field.Name, true
		}
	}
	return "", false
}
