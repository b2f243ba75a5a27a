package rowmapper

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/viant/rowmapper/tags"
	"github.com/viant/tagly/format"
)

// resolveColumn returns source column name for a field, or skip when the field is excluded.
// Precedence: registered override, sqlmap tag, format tag, field name.
func resolveColumn(field reflect.StructField, override *FieldOverride) (string, bool, error) {
	if override != nil {
		if override.DoNotMap {
			return "", true, nil
		}
		if strings.TrimSpace(override.Source) != "" {
			return override.Source, false, nil
		}
	}
	tag, err := tags.Parse(field.Tag)
	if err != nil {
		return "", false, fmt.Errorf("invalid %v tag on field %v: %w", tags.TagName, field.Name, err)
	}
	if tag != nil {
		if tag.DoNotMap {
			return "", true, nil
		}
		if strings.TrimSpace(tag.Name) != "" {
			return tag.Name, false, nil
		}
	}
	if formatTag, _ := format.Parse(field.Tag); formatTag != nil {
		if formatTag.Ignore {
			return "", true, nil
		}
		if strings.TrimSpace(formatTag.Name) != "" {
			return formatTag.Name, false, nil
		}
	}
	return field.Name, false, nil
}
