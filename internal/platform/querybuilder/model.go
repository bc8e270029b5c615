package querybuilder

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// OnConflict renders an upsert clause for model inserts.
//
// Update lists the columns overwritten from the proposed row. When it is empty every
// inserted column outside Target is overwritten. Touch columns are set to
// CURRENT_TIMESTAMP. With nothing to set the clause becomes DO NOTHING.
type OnConflict struct {
	Target []string
	Update []string
	Touch  []string
}

func (c *OnConflict) clause(cols []string) (string, error) {
	if c == nil {
		return "", nil
	}
	if len(c.Target) == 0 {
		return "", fmt.Errorf("conflict target is required")
	}
	for _, target := range c.Target {
		if !slices.Contains(cols, target) {
			return "", fmt.Errorf("conflict target %q is not an inserted column", target)
		}
	}

	update := c.Update
	if len(update) == 0 {
		for _, col := range cols {
			if !slices.Contains(c.Target, col) {
				update = append(update, col)
			}
		}
	}

	sets := make([]string, 0, len(update)+len(c.Touch))
	for _, col := range update {
		if !slices.Contains(cols, col) {
			return "", fmt.Errorf("update column %q is not an inserted column", col)
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	for _, col := range c.Touch {
		sets = append(sets, col+" = CURRENT_TIMESTAMP")
	}

	target := "ON CONFLICT (" + strings.Join(c.Target, ", ") + ")"
	if len(sets) == 0 {
		return target + " DO NOTHING", nil
	}
	return target + " DO UPDATE SET " + strings.Join(sets, ", "), nil
}

// InsertModel builds a single-row insert from the `db` tags of model.
func InsertModel(d Dialect, table string, model any, conflict *OnConflict) (string, []any, error) {
	return InsertModels(d, table, []any{model}, conflict)
}

// InsertModels builds one multi-row insert. Every model must expose the same columns.
func InsertModels[T any](d Dialect, table string, models []T, conflict *OnConflict) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("at least one model is required")
	}

	builder := InsertInto(table).Using(d)
	var cols []string
	for i, model := range models {
		rowCols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			cols = rowCols
			builder.Columns(cols...)
		} else if !slices.Equal(cols, rowCols) {
			return "", nil, fmt.Errorf("model %d columns differ from model 0", i)
		}
		builder.Values(vals...)
	}

	suffix, err := conflict.clause(cols)
	if err != nil {
		return "", nil, err
	}
	return builder.Suffix(suffix).ToSQL()
}

// Chunk splits models so that no batch exceeds maxArgs bind parameters.
func Chunk[T any](models []T, columns, maxArgs int) [][]T {
	if len(models) == 0 {
		return nil
	}
	size := len(models)
	if columns > 0 && maxArgs >= columns {
		size = maxArgs / columns
	}
	return slices.Collect(slices.Chunk(models, size))
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer || value.Kind() == reflect.Interface {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}
