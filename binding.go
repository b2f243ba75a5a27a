package rowmapper

import (
	"fmt"
	"reflect"
	"strings"
	"unsafe"
)

// Outcome represents result of applying a binding to one record
type Outcome int

const (
	// OutcomeApplied value was converted and assigned
	OutcomeApplied Outcome = iota
	// OutcomeNoValue cell was null, field left at default
	OutcomeNoValue
	// OutcomeFailed value could not be converted or assigned, field left at default
	OutcomeFailed
)

// String returns outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoValue:
		return "no value"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Diagnostic describes absorbed field level problem
type Diagnostic struct {
	Row       int
	ResultSet int
	Field     string
	Column    string
	Outcome   Outcome
	Err       error
}

// String returns diagnostic description
func (d Diagnostic) String() string {
	return fmt.Sprintf("row %d: field %v (column %v) %v: %v", d.Row, d.Field, d.Column, d.Outcome, d.Err)
}

// resolved holds plan column indexes for the current result set of one source, it is never shared
type resolved struct {
	plan    *Plan
	indexes []int //-1 unresolved
}

func resolve(plan *Plan, src Source) *resolved {
	count := src.ColumnCount()
	columns := make([]string, count)
	for i := 0; i < count; i++ {
		columns[i] = strings.TrimSpace(src.ColumnName(i))
	}
	ret := &resolved{plan: plan, indexes: make([]int, len(plan.Bindings))}
	for i, binding := range plan.Bindings {
		ret.indexes[i] = -1
		if binding.DoNotMap {
			continue
		}
		name := strings.TrimSpace(binding.Column)
		for j, column := range columns {
			if strings.EqualFold(name, column) {
				ret.indexes[i] = j
				break
			}
		}
	}
	return ret
}

// apply assigns current record values to holder
func (r *resolved) apply(holder unsafe.Pointer, src Source, row, resultSet int, opts *options) {
	var markerPtr unsafe.Pointer
	if r.plan.marker != nil {
		markerPtr = r.plan.marker.ensure(holder)
	}
	for i, binding := range r.plan.Bindings {
		index := r.indexes[i]
		if index < 0 {
			continue
		}
		outcome, err := binding.assign(holder, src, index)
		switch outcome {
		case OutcomeApplied:
			if markerPtr != nil {
				r.plan.marker.set(markerPtr, i)
			}
		case OutcomeFailed:
			if opts.observe != nil {
				opts.observe(Diagnostic{Row: row, ResultSet: resultSet, Field: binding.Name, Column: src.ColumnName(index), Outcome: outcome, Err: err})
			}
		}
	}
}

// assign converts value at index and stores it in holder field
func (b *FieldBinding) assign(holder unsafe.Pointer, src Source, index int) (outcome Outcome, err error) {
	if src.IsNull(index) {
		return OutcomeNoValue, nil
	}
	raw := src.Value(index)
	if isNull(raw) {
		return OutcomeNoValue, nil
	}
	value, err := b.convert(raw)
	if err != nil {
		return OutcomeFailed, err
	}
	defer func() {
		if r := recover(); r != nil {
			outcome, err = OutcomeFailed, fmt.Errorf("failed to assign %T to %v: %v", value, b.Type, r)
		}
	}()
	reflect.NewAt(b.Type, b.Field.Pointer(holder)).Elem().Set(reflect.ValueOf(value))
	return OutcomeApplied, nil
}
