package jsontab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/rowmapper"
)

type tag struct {
	Name   string
	Weight int
}

type article struct {
	ID     int
	Title  string
	Score  float64
	Tags   []tag
	Parts  []int
	Active bool
}

func TestDecode(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		options     []Option
		expect      []*article
		expectErr   bool
	}{
		{
			description: "json table",
			input:       `[["id","title","score"],[1,"first",1.5],[2," second ",null]]`,
			expect:      []*article{{ID: 1, Title: "first", Score: 1.5}, {ID: 2, Title: "second"}},
		},
		{
			description: "nested table",
			input:       `[["id","tags","parts"],[1,[["name","weight"],["go",3],["sql",null]],[1,2]],[2,[["name"]],null]]`,
			expect: []*article{
				{ID: 1, Tags: []tag{{Name: "go", Weight: 3}, {Name: "sql"}}, Parts: []int{1, 2}},
				{ID: 2, Tags: []tag{}},
			},
		},
		{
			description: "malformed record skipped",
			input:       `[["id"],[1],{"id":2},null,[3]]`,
			expect:      []*article{{ID: 1}, {ID: 3}},
		},
		{
			description: "malformed record strict",
			input:       `[["id"],[1],{"id":2}]`,
			options:     []Option{WithMalformedPolicy(ErrorOnMalformed)},
			expectErr:   true,
		},
		{
			description: "wide record truncated",
			input:       `[["id","title"],[1,"a","extra"]]`,
			expect:      []*article{{ID: 1, Title: "a"}},
		},
		{
			description: "wide record strict",
			input:       `[["id","title"],[1,"a","extra"]]`,
			options:     []Option{WithStrict()},
			expectErr:   true,
		},
		{
			description: "short record",
			input:       `[["id","title"],[1]]`,
			options:     []Option{WithStrict()},
			expect:      []*article{{ID: 1}},
		},
		{
			description: "invalid header",
			input:       `[[1,2],[1,2]]`,
			expectErr:   true,
		},
		{
			description: "invalid json",
			input:       `[["id"],[1]`,
			expectErr:   true,
		},
		{
			description: "csv",
			input:       "id,title,score,active\n1,first,2.5,true\n2,,null,0\n",
			expect:      []*article{{ID: 1, Title: "first", Score: 2.5, Active: true}, {ID: 2}},
		},
		{
			description: "csv wide record strict",
			input:       "id,title\n1,a,b\n",
			options:     []Option{WithArityPolicy(ErrorOnArityMismatch)},
			expectErr:   true,
		},
		{
			description: "empty input",
			input:       "  ",
			expect:      []*article{},
		},
		{
			description: "empty input strict",
			input:       "",
			options:     []Option{WithStrict()},
			expectErr:   true,
		},
	}
	for _, testCase := range testCases {
		table, err := Decode([]byte(testCase.input), testCase.options...)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		actual, err := rowmapper.Map[article](table.Reader())
		assert.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestDecode_ErrorPosition(t *testing.T) {
	_, err := Decode([]byte(`[["id","tags"],[1,[["name"],"x"]]]`), WithStrict())
	assert.Nil(t, err)

	_, err = Decode([]byte(`[["id","title"],[1,"a"],[2,"b","c"]]`), WithStrict())
	var decodeErr *Error
	if assert.True(t, errors.As(err, &decodeErr)) {
		assert.Equal(t, 2, decodeErr.Row)
		assert.Equal(t, -1, decodeErr.Col)
		assert.Contains(t, decodeErr.Error(), "arity mismatch")
	}
}
