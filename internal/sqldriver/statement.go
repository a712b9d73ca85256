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
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

var _ interfaces.Statement = (*ArgsStatement)(nil)

// ArgsStatement - collects positional arguments for database/sql Exec.
type ArgsStatement struct {
	args []any
}

func NewArgsStatement(size int) *ArgsStatement {
	return &ArgsStatement{args: make([]any, size)}
}

// Args - bound arguments in parameter order.
func (s *ArgsStatement) Args() []any {
	return s.args
}

func (s *ArgsStatement) Reset() {
	clear(s.args)
}

func (s *ArgsStatement) set(idx int, v any) error {
	if idx < 1 || idx > len(s.args) {
		return fmt.Errorf("%w: %d of %d", ErrParameterIndex, idx, len(s.args))
	}
	s.args[idx-1] = v
	return nil
}

// SetNull - binds a typed null chosen by the column type.
func (s *ArgsStatement) SetNull(idx int, columnType sqltypes.Type) error {
	return s.set(idx, nullFor(columnType))
}

func nullFor(t sqltypes.Type) any {
	switch t {
	case sqltypes.Bit, sqltypes.Boolean:
		return sql.NullBool{}
	case sqltypes.TinyInt, sqltypes.SmallInt:
		return sql.NullInt16{}
	case sqltypes.Integer:
		return sql.NullInt32{}
	case sqltypes.BigInt:
		return sql.NullInt64{}
	case sqltypes.Real, sqltypes.Float, sqltypes.Double:
		return sql.NullFloat64{}
	case sqltypes.Date, sqltypes.Timestamp, sqltypes.TimestampWithTimezone:
		return sql.NullTime{}
	case sqltypes.Numeric, sqltypes.Decimal:
		return decimal.NullDecimal{}
	}
	if t.IsCharacter() {
		return sql.NullString{}
	}
	return nil
}

func (s *ArgsStatement) SetString(idx int, v string) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetBoolean(idx int, v bool) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetShort(idx int, v int16) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetInt(idx int, v int32) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetLong(idx int, v int64) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetFloat(idx int, v float32) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetDouble(idx int, v float64) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetDate(idx int, v time.Time) error {
	return s.set(idx, v)
}

// SetTime - drivers take time of day as text.
func (s *ArgsStatement) SetTime(idx int, v time.Duration) error {
	return s.set(idx, formatTimeOfDay(v))
}

func formatTimeOfDay(d time.Duration) string {
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04:05.999999")
}

func (s *ArgsStatement) SetTimestamp(idx int, v time.Time) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetDecimal(idx int, v decimal.Decimal) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetBytes(idx int, v []byte) error {
	return s.set(idx, v)
}

func (s *ArgsStatement) SetBlob(idx int, v []byte) error {
	return s.set(idx, v)
}
