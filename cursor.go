package rowmapper

// Rows represents forward only database cursor, *sql.Rows implements it
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...interface{}) error
	NextResultSet() bool
	Err() error
}

// Cursor adapts Rows to Source, it spans all result sets of the underlying rows
type Cursor struct {
	rows     Rows
	columns  []string
	values   []interface{}
	pointers []interface{}
	err      error
}

// ColumnCount returns number of columns of the current result set
func (c *Cursor) ColumnCount() int {
	return len(c.columns)
}

// ColumnName returns column name
func (c *Cursor) ColumnName(index int) string {
	return c.columns[index]
}

// IsNull returns true if current record value at index is NULL
func (c *Cursor) IsNull(index int) bool {
	return isNull(c.values[index])
}

// Value returns current record value at index
func (c *Cursor) Value(index int) interface{} {
	return c.values[index]
}

// Next scans the next record
func (c *Cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	for i := range c.values {
		c.values[i] = nil
	}
	if err := c.rows.Scan(c.pointers...); err != nil {
		c.err = err
		return false
	}
	return true
}

// NextResultSet advances to the next result set and reloads its columns
func (c *Cursor) NextResultSet() bool {
	if c.err != nil || !c.rows.NextResultSet() {
		return false
	}
	c.loadColumns()
	return c.err == nil
}

// Err returns scan, column or iteration error
func (c *Cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *Cursor) loadColumns() {
	columns, err := c.rows.Columns()
	if err != nil {
		c.err = err
		columns = nil
	}
	c.columns = columns
	c.values = make([]interface{}, len(columns))
	c.pointers = make([]interface{}, len(columns))
	for i := range c.values {
		c.pointers[i] = &c.values[i]
	}
}

// NewCursor creates a cursor source
func NewCursor(rows Rows) *Cursor {
	ret := &Cursor{rows: rows}
	ret.loadColumns()
	return ret
}
