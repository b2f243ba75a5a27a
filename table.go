package rowmapper

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrRowWidth is returned when a row has more values than the table columns
	ErrRowWidth = errors.New("rowmapper: row has more values than columns")
	// ErrColumnType is returned when a value does not match a typed column
	ErrColumnType = errors.New("rowmapper: value does not match column type")
)

type (
	// Column represents table column, Type is optional
	Column struct {
		Name string
		Type reflect.Type
	}

	// Table represents in memory table with fixed column set
	Table struct {
		columns []Column
		rows    [][]interface{}
	}

	tableReader struct {
		table *Table
		row   int
	}
)

// Columns returns table columns
func (t *Table) Columns() []Column {
	return t.columns
}

// Len returns number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns row values
func (t *Table) Row(index int) []interface{} {
	return t.rows[index]
}

// AddRow appends a row, missing trailing values are null
func (t *Table) AddRow(values ...interface{}) error {
	if len(values) > len(t.columns) {
		return fmt.Errorf("%w: %d > %d", ErrRowWidth, len(values), len(t.columns))
	}
	row := make([]interface{}, len(t.columns))
	for i, value := range values {
		column := t.columns[i]
		if column.Type != nil && !isNull(value) && !reflect.TypeOf(value).AssignableTo(column.Type) {
			return fmt.Errorf("%w: column %v expects %v, but had %T", ErrColumnType, column.Name, column.Type, value)
		}
		row[i] = value
	}
	t.rows = append(t.rows, row)
	return nil
}

// Reader returns a source iterating table rows in table order
func (t *Table) Reader() Source {
	return &tableReader{table: t, row: -1}
}

func (r *tableReader) ColumnCount() int {
	return len(r.table.columns)
}

func (r *tableReader) ColumnName(index int) string {
	return r.table.columns[index].Name
}

func (r *tableReader) IsNull(index int) bool {
	return isNull(r.table.rows[r.row][index])
}

func (r *tableReader) Value(index int) interface{} {
	return r.table.rows[r.row][index]
}

func (r *tableReader) Next() bool {
	if r.row+1 >= len(r.table.rows) {
		return false
	}
	r.row++
	return true
}

func (r *tableReader) Err() error {
	return nil
}

// NewTable creates a table
func NewTable(columns ...Column) *Table {
	return &Table{columns: columns}
}

// NewColumns creates untyped columns
func NewColumns(names ...string) []Column {
	var result = make([]Column, len(names))
	for i, name := range names {
		result[i] = Column{Name: name}
	}
	return result
}
