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

package interfaces

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

// ResultCursor - positioned on a single row of a result set.
type ResultCursor interface {
	// Columns - metadata of the result set columns in select order.
	Columns() []models.ColumnMeta
	// Value - extracts the value of the named column and coerces it into the shape expected by the
	// target schema. The target schema is always simple, nullability is already stripped.
	Value(column models.ColumnMeta, target *schema.Schema) (models.Value, error)
}

// Statement - parameterized statement binding. Parameter indexes are 1-based.
type Statement interface {
	SetNull(idx int, columnType sqltypes.Type) error
	SetString(idx int, v string) error
	SetBoolean(idx int, v bool) error
	// SetShort - binds a value narrowed to the width of a tiny or small integer column.
	SetShort(idx int, v int16) error
	SetInt(idx int, v int32) error
	SetLong(idx int, v int64) error
	SetFloat(idx int, v float32) error
	SetDouble(idx int, v float64) error
	// SetDate - binds a calendar date, the time part of v is zero in UTC.
	SetDate(idx int, v time.Time) error
	// SetTime - binds a time of day as a duration since midnight.
	SetTime(idx int, v time.Duration) error
	SetTimestamp(idx int, v time.Time) error
	SetDecimal(idx int, v decimal.Decimal) error
	SetBytes(idx int, v []byte) error
	// SetBlob - binds a byte sequence as a binary large object.
	SetBlob(idx int, v []byte) error
}
