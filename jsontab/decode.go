// Package jsontab decodes tabular payloads into rowmapper tables.
//
// Two layouts are supported: JSON table, where the first array holds column names
//
//	[["id","name","tags"],[1,"a",[["tag"],["x"],["y"]]],[2,"b",null]]
//
// and CSV text with a header line. Nested JSON tables are decoded as []map[string]interface{}
// so they can be mapped into slice of struct fields. In CSV an empty or null cell holds no value.
package jsontab

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/viant/rowmapper"
)

// Error represents decoding error at record and column position, column is -1 for whole record
type Error struct {
	Row int
	Col int
	Err error
}

// Error returns error message
func (e *Error) Error() string {
	if e.Col < 0 {
		return fmt.Sprintf("jsontab: row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("jsontab: row %d, col %d: %v", e.Row, e.Col, e.Err)
}

// Unwrap returns underlying error
func (e *Error) Unwrap() error { return e.Err }

var errEmpty = errors.New("empty input")

// Decode decodes JSON table or CSV payload into a table
func Decode(data []byte, opts ...Option) (*rowmapper.Table, error) {
	options := newOptions(opts)
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		if options.MalformedPolicy == TolerantMalformed {
			return rowmapper.NewTable(), nil
		}
		return nil, errEmpty
	}
	if trimmed[0] != '[' {
		return decodeCSV(trimmed, options)
	}
	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var parsed []interface{}
	if err := decoder.Decode(&parsed); err != nil {
		return nil, err
	}
	return decodeTable(parsed, options)
}

func decodeTable(table []interface{}, options *Options) (*rowmapper.Table, error) {
	if len(table) == 0 {
		return rowmapper.NewTable(), nil
	}
	headers, err := toStringSlice(table[0])
	if err != nil {
		return nil, &Error{Row: 0, Col: -1, Err: fmt.Errorf("invalid header row: %w", err)}
	}
	ret := rowmapper.NewTable(rowmapper.NewColumns(headers...)...)
	for i := 1; i < len(table); i++ {
		record, ok := table[i].([]interface{})
		if !ok {
			if options.MalformedPolicy == TolerantMalformed {
				continue
			}
			return nil, &Error{Row: i, Col: -1, Err: fmt.Errorf("record is not an array")}
		}
		if len(record) > len(headers) {
			if options.ArityPolicy == ErrorOnArityMismatch {
				return nil, &Error{Row: i, Col: -1, Err: fmt.Errorf("arity mismatch: got %d want %d", len(record), len(headers))}
			}
			record = record[:len(headers)]
		}
		for j, value := range record {
			if nested, ok := value.([]interface{}); ok && isTable(nested) {
				if record[j], err = decodeNested(nested, options); err != nil {
					return nil, &Error{Row: i, Col: j, Err: err}
				}
			}
		}
		if err = ret.AddRow(record...); err != nil {
			return nil, &Error{Row: i, Col: -1, Err: err}
		}
	}
	return ret, nil
}

// decodeNested converts nested table into records keyed by column name
func decodeNested(table []interface{}, options *Options) ([]map[string]interface{}, error) {
	nested, err := decodeTable(table, options)
	if err != nil {
		return nil, err
	}
	columns := nested.Columns()
	var result = make([]map[string]interface{}, 0, nested.Len())
	for i := 0; i < nested.Len(); i++ {
		item := make(map[string]interface{}, len(columns))
		for j, value := range nested.Row(i) {
			if value != nil {
				item[columns[j].Name] = value
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// isTable returns true if value looks like [[header...], [record]...]
func isTable(value []interface{}) bool {
	if len(value) == 0 {
		return false
	}
	if _, err := toStringSlice(value[0]); err != nil {
		return false
	}
	for _, record := range value[1:] {
		if _, ok := record.([]interface{}); !ok {
			return false
		}
	}
	return true
}

func decodeCSV(data []byte, options *Options) (*rowmapper.Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, &Error{Row: 0, Col: -1, Err: fmt.Errorf("invalid header row: %w", err)}
	}
	ret := rowmapper.NewTable(rowmapper.NewColumns(headers...)...)
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if options.MalformedPolicy == TolerantMalformed {
				continue
			}
			return nil, &Error{Row: row, Col: -1, Err: err}
		}
		if len(record) > len(headers) {
			if options.ArityPolicy == ErrorOnArityMismatch {
				return nil, &Error{Row: row, Col: -1, Err: fmt.Errorf("arity mismatch: got %d want %d", len(record), len(headers))}
			}
			record = record[:len(headers)]
		}
		values := make([]interface{}, len(record))
		for i, cell := range record {
			if cell == "" || cell == "null" {
				continue
			}
			values[i] = cell
		}
		if err = ret.AddRow(values...); err != nil {
			return nil, &Error{Row: row, Col: -1, Err: err}
		}
	}
	return ret, nil
}

func toStringSlice(v interface{}) ([]string, error) {
	arr, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected array")
	}
	ret := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected string header")
		}
		ret = append(ret, s)
	}
	return ret, nil
}
