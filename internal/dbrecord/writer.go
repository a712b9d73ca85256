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

package dbrecord

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

// WriteRow - binds every record field into the statement in schema order. columnTypes holds the native type
// of the destination column of each field. Returns the number of bytes written.
func (c *Converter) WriteRow(stmt interfaces.Statement, rec *record.Record, columnTypes []sqltypes.Type) (int64, error) {
	return WriteRow(stmt, rec, columnTypes)
}

// WriteRow - same as Converter.WriteRow, writing does not depend on the converter options.
func WriteRow(stmt interfaces.Statement, rec *record.Record, columnTypes []sqltypes.Type) (int64, error) {
	fields := rec.Schema().Fields
	if len(columnTypes) != len(fields) {
		return 0, fmt.Errorf(
			"%w: got %d column types for %d fields", ErrConfiguration, len(columnTypes), len(fields),
		)
	}

	resolved := make([]*schema.Schema, len(fields))
	for i, f := range fields {
		fs, err := ResolveNonNullable(f)
		if err != nil {
			return 0, err
		}
		if rec.Value(i) == nil && !f.Schema.IsNullable() && fs.Type != schema.TypeNull {
			return 0, fmt.Errorf("%w \"%s\"", ErrNullValue, f.Name)
		}
		resolved[i] = fs
	}

	var bytesWritten int64
	for i, f := range fields {
		n, err := writeField(stmt, i+1, f.Name, resolved[i], rec.Value(i), columnTypes[i])
		if err != nil {
			return 0, err
		}
		bytesWritten += n
	}
	return bytesWritten, nil
}

func writeField(
	stmt interfaces.Statement, idx int, name string, fs *schema.Schema, v any, columnType sqltypes.Type,
) (int64, error) {
	if v == nil {
		if err := stmt.SetNull(idx, columnType); err != nil {
			return 0, bindError(name, err)
		}
		return 0, nil
	}

	var err error
	switch fs.LogicalType {
	case schema.LogicalTypeDate:
		err = stmt.SetDate(idx, v.(time.Time))
	case schema.LogicalTypeTimeMillis, schema.LogicalTypeTimeMicros:
		err = stmt.SetTime(idx, v.(time.Duration))
	case schema.LogicalTypeTimestampMillis, schema.LogicalTypeTimestampMicros:
		err = stmt.SetTimestamp(idx, v.(time.Time).UTC())
	case schema.LogicalTypeDecimal:
		err = stmt.SetDecimal(idx, v.(decimal.Decimal))
	case schema.LogicalTypeDateTime:
		err = stmt.SetString(idx, v.(string))
	default:
		err = writeSimple(stmt, idx, name, fs, v, columnType)
	}
	if err != nil {
		return 0, bindError(name, err)
	}
	return sizeOf(fs, v), nil
}

func writeSimple(
	stmt interfaces.Statement, idx int, name string, fs *schema.Schema, v any, columnType sqltypes.Type,
) error {
	switch fs.Type {
	case schema.TypeString:
		return stmt.SetString(idx, v.(string))
	case schema.TypeBoolean:
		return stmt.SetBoolean(idx, v.(bool))
	case schema.TypeInt:
		i := v.(int32)
		if !columnType.IsNarrowInteger() {
			return stmt.SetInt(idx, i)
		}
		if i < math.MinInt16 || i > math.MaxInt16 {
			return fmt.Errorf(
				"%w: value %d of field \"%s\" does not fit into %s column", ErrNumericOverflow, i, name, columnType,
			)
		}
		return stmt.SetShort(idx, int16(i))
	case schema.TypeLong:
		return stmt.SetLong(idx, v.(int64))
	case schema.TypeFloat:
		return stmt.SetFloat(idx, v.(float32))
	case schema.TypeDouble:
		return stmt.SetDouble(idx, v.(float64))
	case schema.TypeBytes:
		if columnType.IsLargeObjectBinary() {
			return stmt.SetBlob(idx, v.([]byte))
		}
		return stmt.SetBytes(idx, v.([]byte))
	}
	return fmt.Errorf(
		"%w: column \"%s\" with value \"%v\" has an unsupported datatype \"%s\"", ErrUnsupportedType, name, v, fs.Type,
	)
}

func bindError(name string, err error) error {
	return fmt.Errorf("cannot bind field \"%s\": %w", name, err)
}
