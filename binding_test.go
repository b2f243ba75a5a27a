package rowmapper

import (
	"database/sql"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestIsNull(t *testing.T) {
	var nilPtr *int
	var nilMap map[string]int
	var testCases = []struct {
		description string
		value       interface{}
		expect      bool
	}{
		{description: "nil", value: nil, expect: true},
		{description: "nil pointer", value: nilPtr, expect: true},
		{description: "nil map", value: nilMap, expect: true},
		{description: "nil slice", value: []byte(nil), expect: true},
		{description: "invalid null int", value: sql.NullInt64{}, expect: true},
		{description: "valid null int", value: sql.NullInt64{Valid: true}},
		{description: "zero", value: 0},
		{description: "empty string", value: ""},
		{description: "empty bytes", value: []byte{}},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, isNull(testCase.value), testCase.description)
	}
}

func TestFieldBinding_Assign(t *testing.T) {
	type target struct {
		Count int
		Label *string
	}
	plan, err := PlanOf[target]()
	if !assert.Nil(t, err) {
		return
	}
	var testCases = []struct {
		description string
		field       string
		value       interface{}
		expect      Outcome
	}{
		{description: "applied", field: "Count", value: "3", expect: OutcomeApplied},
		{description: "null", field: "Count", value: nil, expect: OutcomeNoValue},
		{description: "null valuer", field: "Label", value: sql.NullString{}, expect: OutcomeNoValue},
		{description: "failed", field: "Count", value: "three", expect: OutcomeFailed},
		{description: "nullable applied", field: "Label", value: "x", expect: OutcomeApplied},
	}
	for _, testCase := range testCases {
		table := NewTable(NewColumns("value")...)
		assert.Nil(t, table.AddRow(testCase.value))
		src := table.Reader()
		assert.True(t, src.Next())
		holder := &target{}
		outcome, err := plan.Lookup(testCase.field).assign(unsafe.Pointer(holder), src, 0)
		assert.Equal(t, testCase.expect, outcome, testCase.description)
		assert.Equal(t, testCase.expect == OutcomeFailed, err != nil, testCase.description)
		switch {
		case testCase.expect != OutcomeApplied:
			assert.Equal(t, target{}, *holder, testCase.description)
		case testCase.field == "Count":
			assert.Equal(t, 3, holder.Count, testCase.description)
		default:
			assert.Equal(t, "x", *holder.Label, testCase.description)
		}
	}
}

func TestDiagnostic_String(t *testing.T) {
	d := Diagnostic{Row: 2, Field: "Count", Column: "cnt", Outcome: OutcomeFailed, Err: errors.New("bad value")}
	assert.Equal(t, "row 2: field Count (column cnt) failed: bad value", d.String())
	assert.Equal(t, "no value", OutcomeNoValue.String())
	assert.Equal(t, "outcome(7)", Outcome(7).String())
}
