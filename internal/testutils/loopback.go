// Copyright 2025 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutils

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

var (
	_ interfaces.Statement    = (*LoopbackStatement)(nil)
	_ interfaces.ResultCursor = (*LoopbackCursor)(nil)
)

// Binding - parameter bound into the LoopbackStatement.
type Binding struct {
	// Method - name of the Statement method used for binding.
	Method string
	Value  models.Value
	// NullType - column type passed to SetNull.
	NullType sqltypes.Type
}

// LoopbackStatement - in-memory statement that keeps every bound parameter so that it can be read back
// through a LoopbackCursor.
type LoopbackStatement struct {
	Bindings map[int]Binding
}

func NewLoopbackStatement() *LoopbackStatement {
	return &LoopbackStatement{
		Bindings: make(map[int]Binding),
	}
}

func (s *LoopbackStatement) bind(idx int, method string, v models.Value) error {
	if idx < 1 {
		return fmt.Errorf("parameter index %d is out of range", idx)
	}
	s.Bindings[idx] = Binding{Method: method, Value: v}
	return nil
}

func (s *LoopbackStatement) SetNull(idx int, columnType sqltypes.Type) error {
	if err := s.bind(idx, "SetNull", models.NullValue()); err != nil {
		return err
	}
	b := s.Bindings[idx]
	b.NullType = columnType
	s.Bindings[idx] = b
	return nil
}

func (s *LoopbackStatement) SetString(idx int, v string) error {
	return s.bind(idx, "SetString", models.StringValue(v))
}

func (s *LoopbackStatement) SetBoolean(idx int, v bool) error {
	return s.bind(idx, "SetBoolean", models.BooleanValue(v))
}

func (s *LoopbackStatement) SetShort(idx int, v int16) error {
	return s.bind(idx, "SetShort", models.IntValue(int32(v)))
}

func (s *LoopbackStatement) SetInt(idx int, v int32) error {
	return s.bind(idx, "SetInt", models.IntValue(v))
}

func (s *LoopbackStatement) SetLong(idx int, v int64) error {
	return s.bind(idx, "SetLong", models.LongValue(v))
}

func (s *LoopbackStatement) SetFloat(idx int, v float32) error {
	return s.bind(idx, "SetFloat", models.FloatValue(v))
}

func (s *LoopbackStatement) SetDouble(idx int, v float64) error {
	return s.bind(idx, "SetDouble", models.DoubleValue(v))
}

func (s *LoopbackStatement) SetDate(idx int, v time.Time) error {
	return s.bind(idx, "SetDate", models.DateValue(v))
}

func (s *LoopbackStatement) SetTime(idx int, v time.Duration) error {
	return s.bind(idx, "SetTime", models.TimeValue(v))
}

func (s *LoopbackStatement) SetTimestamp(idx int, v time.Time) error {
	return s.bind(idx, "SetTimestamp", models.TimestampValue(v))
}

func (s *LoopbackStatement) SetDecimal(idx int, v decimal.Decimal) error {
	return s.bind(idx, "SetDecimal", models.DecimalValue(v))
}

func (s *LoopbackStatement) SetBytes(idx int, v []byte) error {
	return s.bind(idx, "SetBytes", models.BytesValue(v))
}

func (s *LoopbackStatement) SetBlob(idx int, v []byte) error {
	return s.bind(idx, "SetBlob", models.BytesValue(v))
}

// Cursor - returns a cursor positioned on a row made of the bound parameters. Column i takes the
// parameter i+1.
func (s *LoopbackStatement) Cursor(columns ...models.ColumnMeta) *LoopbackCursor {
	values := make(map[string]models.Value, len(columns))
	for i, col := range columns {
		if b, ok := s.Bindings[i+1]; ok {
			values[col.Name] = b.Value
		} else {
			values[col.Name] = models.NullValue()
		}
	}
	return NewLoopbackCursor(columns, values)
}

// LoopbackCursor - in-memory single row cursor returning prepared values.
type LoopbackCursor struct {
	columns []models.ColumnMeta
	values  map[string]models.Value
	// Targets - last target schema requested per column.
	Targets map[string]*schema.Schema
}

func NewLoopbackCursor(columns []models.ColumnMeta, values map[string]models.Value) *LoopbackCursor {
	return &LoopbackCursor{
		columns: columns,
		values:  values,
		Targets: make(map[string]*schema.Schema),
	}
}

func (c *LoopbackCursor) Columns() []models.ColumnMeta {
	return c.columns
}

func (c *LoopbackCursor) Value(column models.ColumnMeta, target *schema.Schema) (models.Value, error) {
	v, ok := c.values[column.Name]
	if !ok {
		return models.Value{}, fmt.Errorf("column \"%s\" not found", column.Name)
	}
	c.Targets[column.Name] = target
	return v, nil
}

// RowsCursor - in-memory multi row cursor. Values are addressed by column position.
type RowsCursor struct {
	columns []models.ColumnMeta
	rows    [][]models.Value
	pos     int
}

func NewRowsCursor(columns []models.ColumnMeta, rows ...[]models.Value) *RowsCursor {
	return &RowsCursor{
		columns: columns,
		rows:    rows,
		pos:     -1,
	}
}

func (c *RowsCursor) Next() (bool, error) {
	if c.pos+1 >= len(c.rows) {
		return false, nil
	}
	c.pos++
	return true, nil
}

func (c *RowsCursor) Columns() []models.ColumnMeta {
	return c.columns
}

func (c *RowsCursor) Value(column models.ColumnMeta, _ *schema.Schema) (models.Value, error) {
	for i, col := range c.columns {
		if col.Name == column.Name {
			return c.rows[c.pos][i], nil
		}
	}
	return models.Value{}, fmt.Errorf("column \"%s\" not found", column.Name)
}

func (c *RowsCursor) Close() error {
	return nil
}
