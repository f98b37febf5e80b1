package vlist

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Column describes one table column. Width is the cell's total footprint
// including any inter-column spacing, so cumulative widths give each
// column its left edge. Render projects the item into the cell; when nil
// the adapter falls back to raw field lookup by Key.
type Column[T any] struct {
	Key    string
	Title  string
	Width  int
	Render func(item T) string
}

// Row is one projected table line. Cells are regenerated on every render
// and carry no identity of their own; Key identifies the source item.
type Row struct {
	Key   string
	Cells []string
}

// Table projects structured items into fixed-width lines. The lines feed
// the list renderer as ordinary items, so windowing applies to tables
// unchanged.
type Table[T any] struct {
	columns   []Column[T]
	rowHeight int
	rowKey    func(item T) string
}

// NewTable builds a table adapter over the given columns.
func NewTable[T any](columns ...Column[T]) *Table[T] {
	return &Table[T]{
		columns:   columns,
		rowHeight: 1,
	}
}

// SetRowKey installs the item identity used for Row.Key.
func (t *Table[T]) SetRowKey(fn func(item T) string) {
	t.rowKey = fn
}

// SetRowHeight overrides the row height fed into the window geometry.
// Non-positive heights are ignored.
func (t *Table[T]) SetRowHeight(height int) {
	if height > 0 {
		t.rowHeight = height
	}
}

// RowHeight is the height of one projected row.
func (t *Table[T]) RowHeight() int {
	return t.rowHeight
}

// Columns returns the column definitions.
func (t *Table[T]) Columns() []Column[T] {
	return t.columns
}

// Header renders the title line, columns positioned by cumulative width.
func (t *Table[T]) Header() string {
	var sb strings.Builder
	for _, col := range t.columns {
		sb.WriteString(padCell(col.Title, col.Width))
	}
	return strings.TrimRight(sb.String(), " ")
}

// Row projects one item into cells, using Render where configured and raw
// field lookup otherwise.
func (t *Table[T]) Row(item T) Row {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		if col.Render != nil {
			cells[i] = col.Render(item)
		} else {
			cells[i] = rawField(item, col.Key)
		}
	}

	key := ""
	if t.rowKey != nil {
		key = t.rowKey(item)
	}
	return Row{Key: key, Cells: cells}
}

// Line renders one item as a single fixed-width line.
func (t *Table[T]) Line(item T) string {
	row := t.Row(item)
	var sb strings.Builder
	for i, col := range t.columns {
		sb.WriteString(padCell(row.Cells[i], col.Width))
	}
	return strings.TrimRight(sb.String(), " ")
}

// rawField resolves a cell for columns without a Render: exported struct
// fields are matched case-insensitively by name, string-keyed maps by
// exact key. Anything unresolvable renders empty.
func rawField(item any, key string) string {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		structType := v.Type()
		for i := 0; i < structType.NumField(); i++ {
			field := structType.Field(i)
			if !field.IsExported() {
				continue
			}
			if strings.EqualFold(field.Name, key) {
				return formatCell(v.Field(i))
			}
		}
	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String {
			value := v.MapIndex(reflect.ValueOf(key))
			if value.IsValid() {
				return formatCell(value)
			}
		}
	default:
	}

	return ""
}

func formatCell(v reflect.Value) string {
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if ts, ok := v.Interface().(time.Time); ok {
		return ts.Format("2006-01-02 15:04")
	}
	return fmt.Sprint(v.Interface())
}

// padCell fits a cell to width: over-long content is truncated with an
// ellipsis, short content is space-padded.
func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		if width == 1 {
			return "…"
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
