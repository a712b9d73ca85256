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

package sqldriver

import (
	"database/sql"
	"fmt"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

// maxNumericPrecision - postgres reports an unconstrained numeric with an out of range precision.
const maxNumericPrecision = 1000

var _ interfaces.ResultCursor = (*RowsCursor)(nil)

// columnType - the subset of *sql.ColumnType used to describe a column.
type columnType interface {
	Name() string
	DatabaseTypeName() string
	DecimalSize() (precision, scale int64, ok bool)
	Nullable() (nullable, ok bool)
}

// RowsCursor - ResultCursor over database/sql rows. Call Next before reading every row.
type RowsCursor struct {
	rows    *sql.Rows
	columns []models.ColumnMeta
	index   map[string]int
	values  []any
}

func NewRowsCursor(rows *sql.Rows) (*RowsCursor, error) {
	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("cannot get column types: %w", err)
	}
	columns := make([]models.ColumnMeta, len(cts))
	for i, ct := range cts {
		columns[i] = columnMeta(ct)
	}
	return newRowsCursor(rows, columns), nil
}

func newRowsCursor(rows *sql.Rows, columns []models.ColumnMeta) *RowsCursor {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c.Name] = i
	}
	return &RowsCursor{
		rows:    rows,
		columns: columns,
		index:   index,
		values:  make([]any, len(columns)),
	}
}

func columnMeta(ct columnType) models.ColumnMeta {
	t, unsigned := sqltypes.FromDatabaseTypeName(ct.DatabaseTypeName())
	// Drivers that cannot tell report the column as nullable
	meta := models.NewColumnMeta(ct.Name(), t, true).WithUnsigned(unsigned)
	meta.TypeName = ct.DatabaseTypeName()
	if precision, scale, ok := ct.DecimalSize(); ok && precision > 0 && precision <= maxNumericPrecision {
		meta = meta.WithPrecision(int(precision), int(scale))
	}
	if nullable, ok := ct.Nullable(); ok {
		meta.Nullable = nullable
	}
	return meta
}

// Next - advances to the next row and scans it. Returns false when the rows are exhausted.
func (c *RowsCursor) Next() (bool, error) {
	if !c.rows.Next() {
		return false, c.rows.Err()
	}
	dest := make([]any, len(c.values))
	for i := range c.values {
		c.values[i] = nil
		dest[i] = &c.values[i]
	}
	if err := c.rows.Scan(dest...); err != nil {
		return false, fmt.Errorf("cannot scan row: %w", err)
	}
	return true, nil
}

func (c *RowsCursor) Columns() []models.ColumnMeta {
	return c.columns
}

func (c *RowsCursor) Value(column models.ColumnMeta, target *schema.Schema) (models.Value, error) {
	idx, ok := c.index[column.Name]
	if !ok {
		return models.Value{}, fmt.Errorf("column \"%s\" is not present in the result set", column.Name)
	}
	return Coerce(c.values[idx], c.columns[idx], target)
}

func (c *RowsCursor) Close() error {
	return c.rows.Close()
}
