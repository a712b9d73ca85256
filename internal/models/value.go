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

package models

import (
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

// ValueKind - shape of a value produced by the cursor coercion step.
type ValueKind int

const (
	ValueKindNull ValueKind = iota
	ValueKindDate
	ValueKindTime
	ValueKindTimestamp
	ValueKindDecimal
	ValueKindBigInteger
	ValueKindSimple
)

var valueKindNames = map[ValueKind]string{
	ValueKindNull:       "null",
	ValueKindDate:       "date",
	ValueKindTime:       "time",
	ValueKindTimestamp:  "timestamp",
	ValueKindDecimal:    "decimal",
	ValueKindBigInteger: "big integer",
	ValueKindSimple:     "simple",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value - coerced column value. Exactly one payload field is meaningful and Kind tells which one.
// For ValueKindSimple the payload is Data and its Go type is fixed by SimpleType:
// boolean bool, int int32, long int64, float float32, double float64, string string, bytes []byte.
type Value struct {
	Kind       ValueKind
	SimpleType schema.Type
	Date       time.Time
	Time       time.Duration
	Timestamp  time.Time
	Decimal    decimal.Decimal
	BigInteger *big.Int
	Data       any
}

func NullValue() Value {
	return Value{Kind: ValueKindNull}
}

func DateValue(v time.Time) Value {
	return Value{Kind: ValueKindDate, Date: v}
}

// TimeValue - time of day as duration since midnight.
func TimeValue(v time.Duration) Value {
	return Value{Kind: ValueKindTime, Time: v}
}

func TimestampValue(v time.Time) Value {
	return Value{Kind: ValueKindTimestamp, Timestamp: v}
}

func DecimalValue(v decimal.Decimal) Value {
	return Value{Kind: ValueKindDecimal, Decimal: v}
}

func BigIntegerValue(v *big.Int) Value {
	return Value{Kind: ValueKindBigInteger, BigInteger: v}
}

func BooleanValue(v bool) Value {
	return simple(schema.TypeBoolean, v)
}

func IntValue(v int32) Value {
	return simple(schema.TypeInt, v)
}

func LongValue(v int64) Value {
	return simple(schema.TypeLong, v)
}

func FloatValue(v float32) Value {
	return simple(schema.TypeFloat, v)
}

func DoubleValue(v float64) Value {
	return simple(schema.TypeDouble, v)
}

func StringValue(v string) Value {
	return simple(schema.TypeString, v)
}

func BytesValue(v []byte) Value {
	return simple(schema.TypeBytes, v)
}

func simple(t schema.Type, v any) Value {
	return Value{Kind: ValueKindSimple, SimpleType: t, Data: v}
}

func (v Value) IsNull() bool {
	return v.Kind == ValueKindNull
}

// Any - returns the payload as an untyped value, nil for null.
func (v Value) Any() any {
	switch v.Kind {
	case ValueKindDate:
		return v.Date
	case ValueKindTime:
		return v.Time
	case ValueKindTimestamp:
		return v.Timestamp
	case ValueKindDecimal:
		return v.Decimal
	case ValueKindBigInteger:
		return v.BigInteger
	case ValueKindSimple:
		return v.Data
	}
	return nil
}

func (v Value) String() string {
	if v.Kind == ValueKindSimple {
		return fmt.Sprintf("%s(%v)", v.SimpleType, v.Data)
	}
	return fmt.Sprintf("%s(%v)", v.Kind, v.Any())
}
