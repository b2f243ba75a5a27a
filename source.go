package rowmapper

// Source presents ordered records with named columns
type Source interface {
	// ColumnCount returns number of columns of the current result set
	ColumnCount() int
	// ColumnName returns column name as exposed by the source
	ColumnName(index int) string
	// IsNull returns true if the current record holds no value at index
	IsNull(index int) bool
	// Value returns raw value at index for the current record
	Value(index int) interface{}
	// Next advances to the next record
	Next() bool
	// Err returns an error that terminated iteration
	Err() error
}

// ResultSets is implemented by sources with multiple sequential result sets
type ResultSets interface {
	// NextResultSet advances to the next result set, column set may change
	NextResultSet() bool
}
