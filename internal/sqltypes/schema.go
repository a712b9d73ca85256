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

package sqltypes

import (
	"errors"
	"fmt"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

var (
	ErrUnsupportedType = errors.New("unsupported sql type")
	ErrUnknownTypeName = errors.New("unknown sql type name")
)

const (
	// unsignedBigIntPrecision - digits of the max unsigned 64-bit integer.
	unsignedBigIntPrecision = 20
)

// SchemaFor - infers the record field schema for a column of the given type. Precision and scale are used
// for NUMERIC and DECIMAL only. A numeric column with zero precision carries no type modifier and is
// mapped onto double.
func SchemaFor(t Type, precision, scale int, unsigned bool) (*schema.Schema, error) {
	switch t {
	case Bit, Boolean:
		return schema.Of(schema.TypeBoolean), nil
	case TinyInt, SmallInt:
		return schema.Of(schema.TypeInt), nil
	case Integer:
		if unsigned {
			return schema.Of(schema.TypeLong), nil
		}
		return schema.Of(schema.TypeInt), nil
	case BigInt:
		if unsigned {
			return schema.DecimalOf(unsignedBigIntPrecision, 0), nil
		}
		return schema.Of(schema.TypeLong), nil
	case Real:
		return schema.Of(schema.TypeFloat), nil
	case Float, Double:
		return schema.Of(schema.TypeDouble), nil
	case Numeric, Decimal:
		if precision <= 0 {
			return schema.Of(schema.TypeDouble), nil
		}
		if scale < 0 || scale > precision {
			return nil, fmt.Errorf("%w: %s(%d, %d) has invalid scale", ErrUnsupportedType, t, precision, scale)
		}
		return schema.DecimalOf(precision, scale), nil
	case Date:
		return schema.LogicalOf(schema.LogicalTypeDate), nil
	case Time, TimeWithTimezone:
		return schema.LogicalOf(schema.LogicalTypeTimeMicros), nil
	case Timestamp, TimestampWithTimezone:
		return schema.LogicalOf(schema.LogicalTypeTimestampMicros), nil
	case Char, VarChar, LongVarChar, NChar, NVarChar, LongNVarChar, Clob, NClob, SQLXML, Other:
		return schema.Of(schema.TypeString), nil
	case Binary, VarBinary, LongVarBinary, Blob:
		return schema.Of(schema.TypeBytes), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}
