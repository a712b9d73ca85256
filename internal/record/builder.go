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
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

// Builder - collects field values for a record schema. Unset fields are null.
type Builder struct {
	schema *schema.Schema
	values []any
}

func NewBuilder(s *schema.Schema) (*Builder, error) {
	if s == nil || s.Type != schema.TypeRecord {
		return nil, fmt.Errorf("%w: builder requires a record schema", ErrTypeMismatch)
	}
	return &Builder{
		schema: s,
		values: make([]any, len(s.Fields)),
	}, nil
}

func (b *Builder) Schema() *schema.Schema {
	return b.schema
}

func (b *Builder) field(name string) (int, *schema.Schema, error) {
	idx := b.schema.FieldIndex(name)
	if idx == -1 {
		return 0, nil, fmt.Errorf("%w \"%s\"", ErrUnknownField, name)
	}
	return idx, b.schema.Fields[idx].Schema.NonNullable(), nil
}

func mismatch(name string, v any, fs *schema.Schema) error {
	return fmt.Errorf(
		"%w: field \"%s\" of type \"%s\" cannot hold %T", ErrTypeMismatch, name, fs.DisplayName(), v,
	)
}

// Set - sets the value of the field. nil stores a null. Logical type fields accept the same Go types
// their dedicated setters do.
func (b *Builder) Set(name string, v any) error {
	idx, fs, err := b.field(name)
	if err != nil {
		return err
	}
	if v == nil {
		b.values[idx] = nil
		return nil
	}

	switch fs.LogicalType {
	case schema.LogicalTypeDate:
		t, ok := v.(time.Time)
		if !ok {
			return mismatch(name, v, fs)
		}
		return b.SetDate(name, t)
	case schema.LogicalTypeTimeMillis, schema.LogicalTypeTimeMicros:
		d, ok := v.(time.Duration)
		if !ok {
			return mismatch(name, v, fs)
		}
		return b.SetTime(name, d)
	case schema.LogicalTypeTimestampMillis, schema.LogicalTypeTimestampMicros:
		t, ok := v.(time.Time)
		if !ok {
			return mismatch(name, v, fs)
		}
		return b.SetTimestamp(name, t)
	case schema.LogicalTypeDecimal:
		d, ok := v.(decimal.Decimal)
		if !ok {
			return mismatch(name, v, fs)
		}
		return b.SetDecimal(name, d)
	case schema.LogicalTypeDateTime:
		s, ok := v.(string)
		if !ok {
			return mismatch(name, v, fs)
		}
		return b.SetDateTime(name, s)
	}

	var ok bool
	switch fs.Type {
	case schema.TypeBoolean:
		_, ok = v.(bool)
	case schema.TypeInt:
		_, ok = v.(int32)
	case schema.TypeLong:
		_, ok = v.(int64)
	case schema.TypeFloat:
		_, ok = v.(float32)
	case schema.TypeDouble:
		_, ok = v.(float64)
	case schema.TypeString:
		_, ok = v.(string)
	case schema.TypeBytes:
		_, ok = v.([]byte)
	case schema.TypeRecord:
		_, ok = v.(*Record)
	case schema.TypeArray:
		_, ok = v.([]any)
	case schema.TypeMap:
		_, ok = v.(map[string]any)
	case schema.TypeEnum:
		var symbol string
		if symbol, ok = v.(string); ok && !slices.Contains(fs.Symbols, symbol) {
			return fmt.Errorf("%w: field \"%s\" has no enum symbol \"%s\"", ErrTypeMismatch, name, symbol)
		}
	}
	if !ok {
		return mismatch(name, v, fs)
	}
	b.values[idx] = v
	return nil
}

// SetDate - stores the calendar date of t as UTC midnight. The time of day is dropped.
func (b *Builder) SetDate(name string, t time.Time) error {
	idx, fs, err := b.field(name)
	if err != nil {
		return err
	}
	if fs.LogicalType != schema.LogicalTypeDate {
		return mismatch(name, t, fs)
	}
	y, m, d := t.Date()
	b.values[idx] = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return nil
}

// SetTime - stores the time of day as a duration since midnight truncated to the field precision.
func (b *Builder) SetTime(name string, d time.Duration) error {
	idx, fs, err := b.field(name)
	if err != nil {
		return err
	}
	var precision time.Duration
	switch fs.LogicalType {
	case schema.LogicalTypeTimeMillis:
		precision = time.Millisecond
	case schema.LogicalTypeTimeMicros:
		precision = time.Microsecond
	default:
		return mismatch(name, d, fs)
	}
	if d < 0 || d >= day {
		return fmt.Errorf("%w: field \"%s\" time %s is outside of a day", ErrValueOutOfRange, name, d)
	}
	b.values[idx] = d.Truncate(precision)
	return nil
}

// SetTimestamp - stores the instant in UTC truncated to the field precision.
func (b *Builder) SetTimestamp(name string, t time.Time) error {
	idx, fs, err := b.field(name)
	if err != nil {
		return err
	}
	var precision time.Duration
	switch fs.LogicalType {
	case schema.LogicalTypeTimestampMillis:
		precision = time.Millisecond
	case schema.LogicalTypeTimestampMicros:
		precision = time.Microsecond
	default:
		return mismatch(name, t, fs)
	}
	b.values[idx] = t.UTC().Truncate(precision)
	return nil
}

// SetDecimal - stores d rescaled to the field scale. A value with more fractional digits than the field
// scale or more digits than the field precision is rejected.
func (b *Builder) SetDecimal(name string, d decimal.Decimal) error {
	idx, fs, err := b.field(name)
	if err != nil {
		return err
	}
	if fs.LogicalType != schema.LogicalTypeDecimal {
		return mismatch(name, d, fs)
	}
	if !d.Equal(d.Truncate(int32(fs.Scale))) {
		return fmt.Errorf(
			"%w: field \"%s\" value %s has scale greater than %d", ErrValueOutOfRange, name, d, fs.Scale,
		)
	}
	if digits := len(new(big.Int).Abs(Unscaled(d, fs.Scale)).String()); digits > fs.Precision {
		return fmt.Errorf(
			"%w: field \"%s\" value %s exceeds precision %d", ErrValueOutOfRange, name, d, fs.Precision,
		)
	}
	b.values[idx] = d.Round(int32(fs.Scale))
	return nil
}

// SetDateTime - stores an ISO-8601 local date-time string.
func (b *Builder) SetDateTime(name string, s string) error {
	idx, fs, err := b.field(name)
	if err != nil {
		return err
	}
	if fs.LogicalType != schema.LogicalTypeDateTime {
		return mismatch(name, s, fs)
	}
	if _, err := schema.ParseDateTime(s); err != nil {
		return fmt.Errorf("field \"%s\": %w", name, err)
	}
	b.values[idx] = s
	return nil
}

// Build - validates nullability and returns the record. The builder must not be used afterwards.
func (b *Builder) Build() (*Record, error) {
	for i, f := range b.schema.Fields {
		if b.values[i] == nil && !allowsNull(f.Schema) {
			return nil, fmt.Errorf("%w \"%s\"", ErrNullValue, f.Name)
		}
	}
	return &Record{
		schema: b.schema,
		values: b.values,
	}, nil
}

func allowsNull(s *schema.Schema) bool {
	if s.Type == schema.TypeNull {
		return true
	}
	for _, m := range s.Members {
		if m.Type == schema.TypeNull {
			return true
		}
	}
	return false
}
