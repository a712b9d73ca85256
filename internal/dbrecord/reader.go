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
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

// originalSchema - one field per column with the type inferred from the column type. A column of a type
// that cannot be inferred takes the type of the override schema field with the same name.
func (c *Converter) originalSchema(columns []models.ColumnMeta) (*schema.Schema, error) {
	fields := make([]*schema.Field, 0, len(columns))
	for _, col := range columns {
		fs, err := sqltypes.SchemaFor(col.Type, col.Precision, col.Scale, col.Unsigned)
		if err != nil {
			if c.overrideSchema != nil {
				if f := c.overrideSchema.Field(col.Name); f != nil {
					fields = append(fields, schema.NewField(col.Name, f.Schema))
					continue
				}
			}
			return nil, fmt.Errorf(
				"%w: column \"%s\" of type \"%s\": %w", ErrUnsupportedType, col.Name, col.TypeName, err,
			)
		}
		if col.Nullable {
			fs = schema.NullableOf(fs)
		}
		fields = append(fields, schema.NewField(col.Name, fs))
	}
	return schema.RecordOf(originalSchemaName, fields...), nil
}

// OutputSchema - resolves the record schema produced by ReadRow for the columns.
func (c *Converter) OutputSchema(columns []models.ColumnMeta) (*schema.Schema, error) {
	s, _, err := c.resolve(columns)
	return s, err
}

func (c *Converter) resolve(columns []models.ColumnMeta) (*schema.Schema, nameMap, error) {
	original, err := c.originalSchema(columns)
	if err != nil {
		return nil, nil, err
	}
	renamed, names, err := c.renameFields(original)
	if err != nil {
		return nil, nil, err
	}
	final, err := c.finalSchema(renamed)
	if err != nil {
		return nil, nil, err
	}
	for _, f := range final.Fields {
		if _, err := ResolveNonNullable(f); err != nil {
			return nil, nil, err
		}
	}
	return final, names, nil
}

// ReadRow - builds a record from the current cursor row. Returns the record and the number of bytes read.
func (c *Converter) ReadRow(cursor interfaces.ResultCursor) (*record.Record, int64, error) {
	columns := cursor.Columns()
	final, names, err := c.resolve(columns)
	if err != nil {
		return nil, 0, err
	}
	byName := make(map[string]models.ColumnMeta, len(columns))
	for _, col := range columns {
		byName[col.Name] = col
	}

	builder, err := record.NewBuilder(final)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	var bytesRead int64
	for _, f := range final.Fields {
		// Already checked by resolve
		fs, _ := ResolveNonNullable(f)
		original := names.original(f.Name)
		col, ok := byName[original]
		if !ok {
			return nil, 0, fmt.Errorf("%w: column \"%s\" is not present in the result set", ErrConfiguration, original)
		}
		v, err := cursor.Value(col, fs)
		if err != nil {
			return nil, 0, fmt.Errorf("cannot read column \"%s\": %w", original, err)
		}
		n, err := setField(builder, f.Name, fs, v)
		if err != nil {
			return nil, 0, err
		}
		bytesRead += n
	}

	rec, err := builder.Build()
	if err != nil {
		return nil, 0, err
	}
	return rec, bytesRead, nil
}

// setField - stores the coerced value into the builder and returns the bytes accounted for it.
func setField(b *record.Builder, name string, fs *schema.Schema, v models.Value) (int64, error) {
	var (
		stored any
		err    error
	)
	switch v.Kind {
	case models.ValueKindNull:
		return 0, b.Set(name, nil)
	case models.ValueKindDate:
		err = b.SetDate(name, v.Date)
	case models.ValueKindTime:
		err = b.SetTime(name, v.Time)
	case models.ValueKindTimestamp:
		err = b.SetTimestamp(name, v.Timestamp)
	case models.ValueKindDecimal:
		stored = v.Decimal
		err = b.SetDecimal(name, v.Decimal)
	case models.ValueKindBigInteger:
		stored, err = setBigInteger(b, name, fs, v.BigInteger)
	case models.ValueKindSimple:
		if fs.LogicalType == schema.LogicalTypeDateTime {
			s, ok := v.Data.(string)
			if !ok {
				return 0, fmt.Errorf(
					"%w: datetime field \"%s\" received %s", ErrUnsupportedType, name, v.SimpleType,
				)
			}
			if _, perr := schema.ParseDateTime(s); perr != nil {
				return 0, fmt.Errorf(
					"%w: datetime field \"%s\" with value \"%s\" is not in ISO-8601 format",
					ErrUnexpectedFormat, name, s,
				)
			}
		}
		stored = v.Data
		err = b.Set(name, v.Data)
	default:
		return 0, fmt.Errorf("%w: field \"%s\" received value of kind %s", ErrUnsupportedType, name, v.Kind)
	}
	if err != nil {
		return 0, convertSetterError(name, v, err)
	}
	return sizeOf(fs, stored), nil
}

// setBigInteger - long fields take the exact 64-bit value, any other field a zero scale decimal.
func setBigInteger(b *record.Builder, name string, fs *schema.Schema, v *big.Int) (any, error) {
	if fs.Type == schema.TypeLong && fs.LogicalType == schema.LogicalTypeNone {
		if !v.IsInt64() {
			return nil, fmt.Errorf("%w: value %s of field \"%s\" does not fit into long", ErrNumericOverflow, v, name)
		}
		return v.Int64(), b.Set(name, v.Int64())
	}
	d := decimal.NewFromBigInt(v, 0)
	return d, b.SetDecimal(name, d)
}

func convertSetterError(name string, v models.Value, err error) error {
	switch {
	case errors.Is(err, ErrNumericOverflow):
		return err
	case errors.Is(err, record.ErrValueOutOfRange):
		return fmt.Errorf("%w: %w", ErrNumericOverflow, err)
	case errors.Is(err, record.ErrTypeMismatch):
		return fmt.Errorf("%w: field \"%s\" value %s: %w", ErrUnsupportedType, name, v, err)
	}
	return err
}
