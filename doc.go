// Package rowmapper materializes tabular rows into typed Go structs.
//
// A binding plan is derived once per target struct type: every writable field is bound to a
// source column by name and given a conversion strategy chosen from its declared type.
// The plan is cached for the lifetime of the process and reused by every mapping call,
// while column positions are resolved per source, so cursors with several result sets
// and tables with different column orders share the same plan.
//
// Field binding can be controlled with the sqlmap tag:
//
//	type Customer struct {
//		ID       int       `sqlmap:"customer_id"`
//		Name     string                           // bound to the "Name" column, case insensitive
//		Since    *time.Time `format:"timeLayout=2006-01-02"`
//		Internal string    `sqlmap:"-"`
//	}
//
//	customers, err := rowmapper.Map[Customer](rowmapper.NewCursor(rows))
//
// Mapping is best effort at field level: unknown columns, null cells and values that cannot
// be converted leave the field at its default, optionally reported with WithDiagnostics.
// Errors reported by the source itself always abort the mapping call.
package rowmapper
