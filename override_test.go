package rowmapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ledgerEntry struct {
	ID           int
	InternalNote string
	Amount       float64 `sqlmap:"amt"`
	Currency     string
}

type ledgerSummary struct {
	Account string `sqlmap:"acct"`
	Balance float64
}

func TestRegisterYAML(t *testing.T) {
	err := RegisterYAML[ledgerEntry]([]byte(`
ID:
  source: entry_id
internal_note:
  doNotMap: true
amount:
  source: total
`))
	if !assert.Nil(t, err) {
		return
	}
	table := NewTable(NewColumns("id", "entry_id", "internal_note", "amt", "total", "currency")...)
	assert.Nil(t, table.AddRow(1, 101, "hidden", 5, 7.5, "USD"))
	actual, err := Map[ledgerEntry](table.Reader())
	assert.Nil(t, err)
	assert.EqualValues(t, []*ledgerEntry{{ID: 101, Amount: 7.5, Currency: "USD"}}, actual)

	err = Register[ledgerEntry](FieldOverride{Field: "Currency", Source: "ccy"})
	assert.True(t, errors.Is(err, ErrPlanSealed))
}

func TestRegister(t *testing.T) {
	var testCases = []struct {
		description string
		register    func() error
		expectErr   error
	}{
		{
			description: "unknown field",
			register: func() error {
				return Register[ledgerSummary](FieldOverride{Field: "Missing", Source: "x"})
			},
			expectErr: ErrUnknownField,
		},
		{
			description: "blank field",
			register: func() error {
				return Register[ledgerSummary](FieldOverride{Source: "x"})
			},
			expectErr: ErrUnknownField,
		},
		{
			description: "not struct",
			register: func() error {
				return Register[[]int](FieldOverride{Field: "Len"})
			},
			expectErr: ErrNotStruct,
		},
		{
			description: "case insensitive field",
			register: func() error {
				return Register[ledgerSummary](FieldOverride{Field: "account", Source: "account_no"})
			},
		},
	}
	for _, testCase := range testCases {
		err := testCase.register()
		if testCase.expectErr == nil {
			assert.Nil(t, err, testCase.description)
			continue
		}
		assert.True(t, errors.Is(err, testCase.expectErr), testCase.description)
	}

	plan, err := PlanOf[ledgerSummary]()
	assert.Nil(t, err)
	assert.Equal(t, "account_no", plan.Lookup("Account").Column)
	assert.Equal(t, "Balance", plan.Lookup("Balance").Column)
}

func TestRegisterYAML_Invalid(t *testing.T) {
	type broken struct {
		ID int
	}
	err := RegisterYAML[broken]([]byte("ID: [1, 2"))
	assert.NotNil(t, err)
}
