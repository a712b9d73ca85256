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

package record

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

var (
	ErrNullValue       = errors.New("null value in non-nullable field")
	ErrUnknownField    = errors.New("unknown field")
	ErrTypeMismatch    = errors.New("value does not match field type")
	ErrValueOutOfRange = errors.New("value out of range")
)

const day = 24 * time.Hour

// Record - immutable set of typed values laid out in the order of the record schema fields.
type Record struct {
	schema *schema.Schema
	values []any
}

func (r *Record) Schema() *schema.Schema {
	return r.schema
}

// Len - number of fields.
func (r *Record) Len() int {
	return len(r.values)
}

// Value - returns the value by field position. Null values are returned as nil.
func (r *Record) Value(idx int) any {
	return r.values[idx]
}

func (r *Record) Get(name string) (any, error) {
	idx := r.schema.FieldIndex(name)
	if idx == -1 {
		return nil, fmt.Errorf("%w \"%s\"", ErrUnknownField, name)
	}
	return r.values[idx], nil
}

func (r *Record) IsNull(name string) (bool, error) {
	v, err := r.Get(name)
	if err != nil {
		return false, err
	}
	return v == nil, nil
}

func (r *Record) GetDate(name string) (time.Time, error) {
	return getAs[time.Time](r, name, schema.LogicalTypeDate)
}

func (r *Record) GetTime(name string) (time.Duration, error) {
	return getAs[time.Duration](r, name, schema.LogicalTypeTimeMillis, schema.LogicalTypeTimeMicros)
}

func (r *Record) GetTimestamp(name string) (time.Time, error) {
	return getAs[time.Time](r, name, schema.LogicalTypeTimestampMillis, schema.LogicalTypeTimestampMicros)
}

func (r *Record) GetDecimal(name string) (decimal.Decimal, error) {
	return getAs[decimal.Decimal](r, name, schema.LogicalTypeDecimal)
}

func getAs[T any](r *Record, name string, expected ...schema.LogicalType) (res T, err error) {
	idx := r.schema.FieldIndex(name)
	if idx == -1 {
		return res, fmt.Errorf("%w \"%s\"", ErrUnknownField, name)
	}
	fs := r.schema.Fields[idx].Schema.NonNullable()
	if !containsLogicalType(expected, fs.LogicalType) {
		return res, fmt.Errorf("%w: field \"%s\" is of type \"%s\"", ErrTypeMismatch, name, fs.DisplayName())
	}
	v := r.values[idx]
	if v == nil {
		return res, fmt.Errorf("field \"%s\" is null", name)
	}
	return v.(T), nil
}

func containsLogicalType(list []schema.LogicalType, lt schema.LogicalType) bool {
	for _, item := range list {
		if item == lt {
			return true
		}
	}
	return false
}

// PhysicalValue - returns the field value in the representation of its physical type: days since epoch for
// dates, millis or micros for times and timestamps and unscaled two's-complement big-endian bytes for decimals.
func (r *Record) PhysicalValue(name string) (any, error) {
	idx := r.schema.FieldIndex(name)
	if idx == -1 {
		return nil, fmt.Errorf("%w \"%s\"", ErrUnknownField, name)
	}
	v := r.values[idx]
	if v == nil {
		return nil, nil
	}
	fs := r.schema.Fields[idx].Schema.NonNullable()
	switch fs.LogicalType {
	case schema.LogicalTypeDate:
		return int32(v.(time.Time).Unix() / int64(day/time.Second)), nil
	case schema.LogicalTypeTimeMillis:
		return int32(v.(time.Duration).Milliseconds()), nil
	case schema.LogicalTypeTimeMicros:
		return v.(time.Duration).Microseconds(), nil
	case schema.LogicalTypeTimestampMillis:
		return v.(time.Time).UnixMilli(), nil
	case schema.LogicalTypeTimestampMicros:
		return v.(time.Time).UnixMicro(), nil
	case schema.LogicalTypeDecimal:
		return TwosComplement(Unscaled(v.(decimal.Decimal), fs.Scale)), nil
	}
	return v, nil
}

// Unscaled - returns the unscaled integer of d at the given scale.
func Unscaled(d decimal.Decimal, scale int) *big.Int {
	return d.Shift(int32(scale)).BigInt()
}

// TwosComplement - minimal big-endian two's-complement encoding of x.
func TwosComplement(x *big.Int) []byte {
	if x.Sign() >= 0 {
		b := x.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}
	// -x-1 has the same bit length as the magnitude that has to fit next to the sign bit
	magnitude := new(big.Int).Not(x)
	n := magnitude.BitLen()/8 + 1
	v := new(big.Int).Lsh(big.NewInt(1), uint(n*8))
	v.Add(v, x)
	b := v.Bytes()
	res := make([]byte, n)
	copy(res[n-len(b):], b)
	return res
}
