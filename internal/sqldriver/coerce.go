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
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05.999999999"
	dateTimeLayout = "2006-01-02T15:04:05.999999999"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	dateTimeLayout,
}

// Coerce - converts a driver value into the value shape expected by the target schema.
func Coerce(src any, column models.ColumnMeta, target *schema.Schema) (models.Value, error) {
	if src == nil {
		return models.NullValue(), nil
	}
	v, err := coerce(src, column, target)
	if err != nil {
		return models.Value{}, fmt.Errorf(
			"column \"%s\" value of type %T as %s: %w", column.Name, src, target.DisplayName(), err,
		)
	}
	return v, nil
}

func coerce(src any, column models.ColumnMeta, target *schema.Schema) (models.Value, error) {
	switch target.LogicalType {
	case schema.LogicalTypeDate:
		t, err := toTime(src, dateLayout)
		if err != nil {
			return models.Value{}, err
		}
		return models.DateValue(t), nil
	case schema.LogicalTypeTimeMillis, schema.LogicalTypeTimeMicros:
		d, err := toTimeOfDay(src)
		if err != nil {
			return models.Value{}, err
		}
		return models.TimeValue(d), nil
	case schema.LogicalTypeTimestampMillis, schema.LogicalTypeTimestampMicros:
		t, err := toTime(src, timestampLayouts...)
		if err != nil {
			return models.Value{}, err
		}
		return models.TimestampValue(t), nil
	case schema.LogicalTypeDecimal:
		return toDecimal(src)
	case schema.LogicalTypeDateTime:
		if t, ok := src.(time.Time); ok {
			return models.StringValue(t.Format(dateTimeLayout)), nil
		}
		return models.StringValue(toString(src)), nil
	}

	switch target.Type {
	case schema.TypeBoolean:
		if b, ok := src.([]byte); ok && column.Type == sqltypes.Bit && len(b) == 1 {
			return models.BooleanValue(b[0] != 0), nil
		}
		v, err := cast.ToBoolE(normalize(src))
		if err != nil {
			return models.Value{}, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
		}
		return models.BooleanValue(v), nil
	case schema.TypeInt:
		v, err := toInteger(src)
		if err != nil {
			return models.Value{}, err
		}
		if !v.IsInt64() || v.Int64() < math.MinInt32 || v.Int64() > math.MaxInt32 {
			return models.Value{}, fmt.Errorf("%w: %s does not fit into int", ErrValueOverflow, v)
		}
		return models.IntValue(int32(v.Int64())), nil
	case schema.TypeLong:
		v, err := toInteger(src)
		if err != nil {
			return models.Value{}, err
		}
		if !v.IsInt64() {
			return models.BigIntegerValue(v), nil
		}
		return models.LongValue(v.Int64()), nil
	case schema.TypeFloat:
		v, err := cast.ToFloat32E(normalize(src))
		if err != nil {
			return models.Value{}, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
		}
		return models.FloatValue(v), nil
	case schema.TypeDouble:
		if d, ok := src.(decimal.Decimal); ok {
			return models.DoubleValue(d.InexactFloat64()), nil
		}
		v, err := cast.ToFloat64E(normalize(src))
		if err != nil {
			return models.Value{}, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
		}
		return models.DoubleValue(v), nil
	case schema.TypeString:
		return models.StringValue(toString(src)), nil
	case schema.TypeBytes:
		switch v := src.(type) {
		case []byte:
			return models.BytesValue(v), nil
		case string:
			return models.BytesValue([]byte(v)), nil
		}
	}
	return models.Value{}, fmt.Errorf("%w: cannot convert into %s", ErrUnexpectedValue, target.DisplayName())
}

// normalize - text protocols deliver numbers and booleans as bytes.
func normalize(src any) any {
	switch v := src.(type) {
	case []byte:
		return strings.TrimSpace(string(v))
	case decimal.Decimal:
		return v.String()
	}
	return src
}

// toInteger - exact integer value of the source. Numeric text is always read in base 10 and values with
// a fractional part are rejected.
func toInteger(src any) (*big.Int, error) {
	var d decimal.Decimal
	switch v := src.(type) {
	case decimal.Decimal:
		d = v
	case []byte, string:
		var err error
		d, err = decimal.NewFromString(strings.TrimSpace(toString(v)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
		}
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		i, err := cast.ToInt64E(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
		}
		return big.NewInt(i), nil
	}
	if !d.IsInteger() {
		return nil, fmt.Errorf("%w: %s is not an integer", ErrUnexpectedValue, d)
	}
	return d.BigInt(), nil
}

func toString(src any) string {
	switch v := src.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case decimal.Decimal:
		return v.String()
	}
	return cast.ToString(src)
}

func toTime(src any, layouts ...string) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string, []byte:
		s := toString(v)
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: cannot parse \"%s\" as time", ErrUnexpectedValue, s)
	}
	return time.Time{}, fmt.Errorf("%w: time value expected", ErrUnexpectedValue)
}

// toTimeOfDay - duration since midnight.
func toTimeOfDay(src any) (time.Duration, error) {
	switch v := src.(type) {
	case time.Duration:
		return v, nil
	case time.Time:
		midnight := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, v.Location())
		return v.Sub(midnight), nil
	case string, []byte:
		s := toString(v)
		t, err := time.ParseInLocation(timeLayout, s, time.UTC)
		if err != nil {
			return 0, fmt.Errorf("%w: cannot parse \"%s\" as time of day", ErrUnexpectedValue, s)
		}
		return t.Sub(time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)), nil
	}
	return 0, fmt.Errorf("%w: time of day value expected", ErrUnexpectedValue)
}

func toDecimal(src any) (models.Value, error) {
	switch v := src.(type) {
	case decimal.Decimal:
		return models.DecimalValue(v), nil
	case uint64:
		return models.BigIntegerValue(new(big.Int).SetUint64(v)), nil
	case int64:
		return models.DecimalValue(decimal.NewFromInt(v)), nil
	case float64:
		return models.DecimalValue(decimal.NewFromFloat(v)), nil
	case float32:
		return models.DecimalValue(decimal.NewFromFloat32(v)), nil
	case string, []byte:
		s := strings.TrimSpace(toString(v))
		d, err := decimal.NewFromString(s)
		if err != nil {
			return models.Value{}, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
		}
		return models.DecimalValue(d), nil
	}
	i, err := cast.ToInt64E(src)
	if err != nil {
		return models.Value{}, fmt.Errorf("%w: %w", ErrUnexpectedValue, err)
	}
	return models.DecimalValue(decimal.NewFromInt(i)), nil
}
