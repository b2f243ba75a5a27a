package rowmapper

import (
	"database/sql/driver"
	"reflect"
)

// isNull returns true for nil, nil pointers and driver values carrying no value (sql.NullInt64{} etc.)
func isNull(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		if rValue.IsNil() {
			return true
		}
	}
	if valuer, ok := value.(driver.Valuer); ok {
		v, err := valuer.Value()
		return err == nil && v == nil
	}
	return false
}
