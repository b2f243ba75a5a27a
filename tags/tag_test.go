package tags

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		tag         reflect.StructTag
		expect      *Tag
		expectErr   bool
	}{
		{description: "absent", tag: `json:"id"`},
		{description: "positional name", tag: `sqlmap:"customer_id"`, expect: &Tag{Name: "customer_id"}},
		{description: "named", tag: `sqlmap:"name=CUSTOMER ID"`, expect: &Tag{Name: "CUSTOMER ID"}},
		{description: "dash", tag: `sqlmap:"-"`, expect: &Tag{DoNotMap: true}},
		{description: "flag", tag: `sqlmap:"doNotMap"`, expect: &Tag{DoNotMap: true}},
		{description: "explicit false", tag: `sqlmap:"name=code,doNotMap=false"`, expect: &Tag{Name: "code"}},
		{description: "positional with flag", tag: `sqlmap:"code,doNotMap"`, expect: &Tag{Name: "code", DoNotMap: true}},
		{description: "bad flag", tag: `sqlmap:"doNotMap=maybe"`, expectErr: true},
		{description: "unknown key", tag: `sqlmap:"name=a,size=3"`, expectErr: true},
	}
	for _, testCase := range testCases {
		actual, err := Parse(testCase.tag)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}
