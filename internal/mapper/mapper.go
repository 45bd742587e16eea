// Package mapper translates between the camelCase domain shape used on the wire and the
// snake_case native shape used by the storage backends. Adapters only ever hand domain
// models to callers; all renaming happens here.
package mapper

import (
	"time"

	"github.com/noah-isme/bimbel-api/internal/models"
)

// Field pairs a domain key with its native column name.
type Field struct {
	Domain string
	Native string
}

// FieldSet is the ordered, fixed field list of one entity.
type FieldSet []Field

// Row is a native-shaped partial record keyed by column name.
type Row map[string]interface{}

// Columns returns the native column names in declaration order.
func Columns(fields FieldSet) []string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Native
	}
	return cols
}

// ToNative renames the keys of a domain partial to native columns. Unknown keys are dropped
// and Date values are normalised to time.Time.
func ToNative(fields FieldSet, partial map[string]interface{}) Row {
	row := make(Row, len(partial))
	for _, f := range fields {
		value, ok := partial[f.Domain]
		if !ok {
			continue
		}
		row[f.Native] = normalise(value)
	}
	return row
}

// ToDomain renames native columns back to domain keys. Unknown columns are dropped.
func ToDomain(fields FieldSet, row Row) map[string]interface{} {
	partial := make(map[string]interface{}, len(row))
	for _, f := range fields {
		if value, ok := row[f.Native]; ok {
			partial[f.Domain] = value
		}
	}
	return partial
}

func normalise(value interface{}) interface{} {
	switch v := value.(type) {
	case models.Date:
		return v.Time
	case *models.Date:
		return v.TimePtr()
	case time.Time:
		return v.UTC()
	default:
		return value
	}
}
