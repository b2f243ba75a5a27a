// Package arrowtab presents Apache Arrow record batches as a rowmapper source.
package arrowtab

import (
	"bytes"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Source iterates rows of one record or of all records produced by a record reader
type Source struct {
	schema *arrow.Schema
	record arrow.Record
	reader array.RecordReader
	row    int
}

// ColumnCount returns number of schema fields
func (s *Source) ColumnCount() int {
	return s.schema.NumFields()
}

// ColumnName returns schema field name
func (s *Source) ColumnName(index int) string {
	return s.schema.Field(index).Name
}

// IsNull returns true if current row value is null
func (s *Source) IsNull(index int) bool {
	return s.record.Column(index).IsNull(s.row)
}

// Value returns current row value as Go value, temporal types are returned as time.Time
func (s *Source) Value(index int) interface{} {
	column := s.record.Column(index)
	if column.IsNull(s.row) {
		return nil
	}
	return Value(column, s.row)
}

// Next advances to the next row, moving to the next record when the current one is exhausted
func (s *Source) Next() bool {
	for {
		if s.record != nil && s.row+1 < int(s.record.NumRows()) {
			s.row++
			return true
		}
		if s.reader == nil || !s.reader.Next() {
			return false
		}
		s.record = s.reader.Record()
		s.row = -1
	}
}

// Err returns reader error
func (s *Source) Err() error {
	if s.reader == nil {
		return nil
	}
	return s.reader.Err()
}

// Value extracts Go value from arrow array at index, strings and bytes are copied out of the record buffers
// so they stay valid after the record is released
func Value(values arrow.Array, index int) interface{} {
	switch actual := values.(type) {
	case *array.Int8:
		return actual.Value(index)
	case *array.Int16:
		return actual.Value(index)
	case *array.Int32:
		return actual.Value(index)
	case *array.Int64:
		return actual.Value(index)
	case *array.Uint8:
		return actual.Value(index)
	case *array.Uint16:
		return actual.Value(index)
	case *array.Uint32:
		return actual.Value(index)
	case *array.Uint64:
		return actual.Value(index)
	case *array.Float32:
		return actual.Value(index)
	case *array.Float64:
		return actual.Value(index)
	case *array.Boolean:
		return actual.Value(index)
	case *array.String:
		return strings.Clone(actual.Value(index))
	case *array.LargeString:
		return strings.Clone(actual.Value(index))
	case *array.Binary:
		return bytes.Clone(actual.Value(index))
	case *array.LargeBinary:
		return bytes.Clone(actual.Value(index))
	case *array.Date32:
		return actual.Value(index).ToTime()
	case *array.Date64:
		return actual.Value(index).ToTime()
	case *array.Timestamp:
		timestampType := actual.DataType().(*arrow.TimestampType)
		ts := actual.Value(index).ToTime(timestampType.Unit)
		if zone, err := timestampType.GetZone(); err == nil && zone != nil {
			ts = ts.In(zone)
		}
		return ts
	}
	return values.GetOneForMarshal(index)
}

// New creates a source for a single record
func New(record arrow.Record) *Source {
	return &Source{schema: record.Schema(), record: record, row: -1}
}

// NewReader creates a source for all records of reader, records share reader schema
func NewReader(reader array.RecordReader) *Source {
	return &Source{schema: reader.Schema(), reader: reader, row: -1}
}
