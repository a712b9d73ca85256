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
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/dbrecord/internal/mocks"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
	"github.com/greenmaskio/dbrecord/internal/testutils"
)

func buildRecord(t *testing.T, s *schema.Schema, values map[string]any) *record.Record {
	t.Helper()
	b, err := record.NewBuilder(s)
	require.NoError(t, err)
	for name, v := range values {
		require.NoError(t, b.Set(name, v))
	}
	rec, err := b.Build()
	require.NoError(t, err)
	return rec
}

func TestWriteRow_RoundTrip_SimpleTypes(t *testing.T) {
	s := schema.RecordOf("simple",
		schema.NewField("flag", schema.Of(schema.TypeBoolean)),
		schema.NewField("i", schema.Of(schema.TypeInt)),
		schema.NewField("l", schema.Of(schema.TypeLong)),
		schema.NewField("f", schema.Of(schema.TypeFloat)),
		schema.NewField("d", schema.Of(schema.TypeDouble)),
		schema.NewField("s", schema.Of(schema.TypeString)),
		schema.NewField("b", schema.Of(schema.TypeBytes)),
	)
	tests := []struct {
		name   string
		values map[string]any
	}{
		{
			name: "regular",
			values: map[string]any{
				"flag": true, "i": int32(-7), "l": int64(1) << 40, "f": float32(1.25),
				"d": math.Pi, "s": "hello", "b": []byte{0, 1, 255},
			},
		},
		{
			name: "extremes",
			values: map[string]any{
				"flag": false, "i": int32(math.MinInt32), "l": int64(math.MaxInt64), "f": float32(math.MaxFloat32),
				"d": math.SmallestNonzeroFloat64, "s": "", "b": []byte{},
			},
		},
	}
	columnTypes := []sqltypes.Type{
		sqltypes.Boolean, sqltypes.Integer, sqltypes.BigInt, sqltypes.Real, sqltypes.Double,
		sqltypes.VarChar, sqltypes.VarBinary,
	}
	columns := []models.ColumnMeta{
		models.NewColumnMeta("flag", sqltypes.Boolean, false),
		models.NewColumnMeta("i", sqltypes.Integer, false),
		models.NewColumnMeta("l", sqltypes.BigInt, false),
		models.NewColumnMeta("f", sqltypes.Real, false),
		models.NewColumnMeta("d", sqltypes.Double, false),
		models.NewColumnMeta("s", sqltypes.VarChar, false),
		models.NewColumnMeta("b", sqltypes.VarBinary, false),
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := buildRecord(t, s, tt.values)
			stmt := testutils.NewLoopbackStatement()
			bytesWritten, err := WriteRow(stmt, rec, columnTypes)
			require.NoError(t, err)

			c, err := New(Config{})
			require.NoError(t, err)
			back, bytesRead, err := c.ReadRow(stmt.Cursor(columns...))
			require.NoError(t, err)
			assert.Equal(t, bytesWritten, bytesRead)

			for name, expected := range tt.values {
				actual, err := back.Get(name)
				require.NoError(t, err)
				assert.Equal(t, expected, actual, name)
			}
		})
	}
}

func TestWriteRow_RoundTrip_LogicalTypes(t *testing.T) {
	s := schema.RecordOf("logical",
		schema.NewField("born", schema.LogicalOf(schema.LogicalTypeDate)),
		schema.NewField("wake", schema.LogicalOf(schema.LogicalTypeTimeMicros)),
		schema.NewField("seen", schema.LogicalOf(schema.LogicalTypeTimestampMicros)),
		schema.NewField("amount", schema.DecimalOf(12, 4)),
	)
	rec := buildRecord(t, s, map[string]any{
		"born":   time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC),
		"wake":   5*time.Hour + 7*time.Microsecond,
		"seen":   time.Date(2021, 6, 1, 1, 2, 3, 4000, time.UTC),
		"amount": decimal.RequireFromString("-42.0001"),
	})
	columns := []models.ColumnMeta{
		models.NewColumnMeta("born", sqltypes.Date, false),
		models.NewColumnMeta("wake", sqltypes.Time, false),
		models.NewColumnMeta("seen", sqltypes.Timestamp, false),
		models.NewColumnMeta("amount", sqltypes.Decimal, false).WithPrecision(12, 4),
	}
	stmt := testutils.NewLoopbackStatement()
	bytesWritten, err := WriteRow(stmt, rec, []sqltypes.Type{
		sqltypes.Date, sqltypes.Time, sqltypes.Timestamp, sqltypes.Decimal,
	})
	require.NoError(t, err)

	c, err := New(Config{})
	require.NoError(t, err)
	back, bytesRead, err := c.ReadRow(stmt.Cursor(columns...))
	require.NoError(t, err)
	assert.Equal(t, bytesWritten, bytesRead)

	for _, name := range []string{"born", "wake", "seen"} {
		expected, err := rec.Get(name)
		require.NoError(t, err)
		actual, err := back.Get(name)
		require.NoError(t, err)
		assert.Equal(t, expected, actual, name)
	}
	amount, err := back.GetDecimal("amount")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-42.0001").Equal(amount))
}

func TestWriteRow_ByteAccounting(t *testing.T) {
	tests := []struct {
		name       string
		field      *schema.Schema
		value      any
		columnType sqltypes.Type
		method     string
		expected   int64
	}{
		{"boolean", schema.Of(schema.TypeBoolean), true, sqltypes.Boolean, "SetBoolean", 4},
		{"int", schema.Of(schema.TypeInt), int32(1), sqltypes.Integer, "SetInt", 4},
		{"long", schema.Of(schema.TypeLong), int64(1), sqltypes.BigInt, "SetLong", 8},
		{"float", schema.Of(schema.TypeFloat), float32(1), sqltypes.Real, "SetFloat", 4},
		{"double", schema.Of(schema.TypeDouble), float64(1), sqltypes.Double, "SetDouble", 8},
		{"string", schema.Of(schema.TypeString), "héllo", sqltypes.VarChar, "SetString", 5},
		{"bytes", schema.Of(schema.TypeBytes), []byte("abcdef"), sqltypes.VarBinary, "SetBytes", 6},
		{"blob", schema.Of(schema.TypeBytes), []byte("abc"), sqltypes.Blob, "SetBlob", 3},
		{
			"date", schema.LogicalOf(schema.LogicalTypeDate), time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			sqltypes.Date, "SetDate", 8,
		},
		{"time-millis", schema.LogicalOf(schema.LogicalTypeTimeMillis), time.Hour, sqltypes.Time, "SetTime", 4},
		{"time-micros", schema.LogicalOf(schema.LogicalTypeTimeMicros), time.Hour, sqltypes.Time, "SetTime", 8},
		{
			"timestamp-millis", schema.LogicalOf(schema.LogicalTypeTimestampMillis), time.Unix(0, 0),
			sqltypes.Timestamp, "SetTimestamp", 8,
		},
		{
			"timestamp-micros", schema.LogicalOf(schema.LogicalTypeTimestampMicros), time.Unix(0, 0),
			sqltypes.Timestamp, "SetTimestamp", 8,
		},
		// unscaled 25500 needs 15 bits
		{"decimal", schema.DecimalOf(6, 2), decimal.RequireFromString("255"), sqltypes.Numeric, "SetDecimal", 6},
		{"decimal zero", schema.DecimalOf(6, 2), decimal.Zero, sqltypes.Numeric, "SetDecimal", 4},
		{
			"datetime", schema.LogicalOf(schema.LogicalTypeDateTime), "2020-01-15T10:30",
			sqltypes.VarChar, "SetString", 16,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := buildRecord(t, schema.RecordOf("r", schema.NewField("v", tt.field)), map[string]any{"v": tt.value})
			stmt := testutils.NewLoopbackStatement()
			n, err := WriteRow(stmt, rec, []sqltypes.Type{tt.columnType})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
			assert.Equal(t, tt.method, stmt.Bindings[1].Method)
		})
	}
}

func TestWriteRow_NarrowInteger(t *testing.T) {
	s := schema.RecordOf("r", schema.NewField("v", schema.Of(schema.TypeInt)))

	for _, columnType := range []sqltypes.Type{sqltypes.TinyInt, sqltypes.SmallInt} {
		t.Run(columnType.String(), func(t *testing.T) {
			stmt := mocks.NewStatementMock()
			stmt.On("SetShort", 1, int16(-300)).Return(nil)
			rec := buildRecord(t, s, map[string]any{"v": int32(-300)})
			n, err := WriteRow(stmt, rec, []sqltypes.Type{columnType})
			require.NoError(t, err)
			assert.Equal(t, int64(4), n)
			stmt.AssertExpectations(t)
			stmt.AssertNotCalled(t, "SetInt", mock.Anything, mock.Anything)
		})
	}

	t.Run("overflow", func(t *testing.T) {
		stmt := mocks.NewStatementMock()
		rec := buildRecord(t, s, map[string]any{"v": int32(math.MaxInt16 + 1)})
		_, err := WriteRow(stmt, rec, []sqltypes.Type{sqltypes.SmallInt})
		require.ErrorIs(t, err, ErrNumericOverflow)
		stmt.AssertNotCalled(t, "SetShort", mock.Anything, mock.Anything)
	})

	t.Run("full width", func(t *testing.T) {
		stmt := mocks.NewStatementMock()
		stmt.On("SetInt", 1, int32(math.MaxInt16+1)).Return(nil)
		rec := buildRecord(t, s, map[string]any{"v": int32(math.MaxInt16 + 1)})
		_, err := WriteRow(stmt, rec, []sqltypes.Type{sqltypes.Integer})
		require.NoError(t, err)
		stmt.AssertExpectations(t)
	})
}

func TestWriteRow_Null(t *testing.T) {
	s := schema.RecordOf("r",
		schema.NewField("id", schema.Of(schema.TypeLong)),
		schema.NewField("note", schema.NullableOf(schema.Of(schema.TypeString))),
		schema.NewField("amount", schema.NullableOf(schema.DecimalOf(5, 1))),
	)
	rec := buildRecord(t, s, map[string]any{"id": int64(1)})

	stmt := mocks.NewStatementMock()
	stmt.On("SetLong", 1, int64(1)).Return(nil)
	stmt.On("SetNull", 2, sqltypes.NVarChar).Return(nil)
	stmt.On("SetNull", 3, sqltypes.Numeric).Return(nil)

	n, err := WriteRow(stmt, rec, []sqltypes.Type{sqltypes.BigInt, sqltypes.NVarChar, sqltypes.Numeric})
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	stmt.AssertExpectations(t)
}

func TestWriteRow_NullInNonNullableField(t *testing.T) {
	s := schema.RecordOf("r", schema.NewField("id", schema.Of(schema.TypeLong)))
	b, err := record.NewBuilder(s)
	require.NoError(t, err)
	_, err = b.Build()
	require.ErrorIs(t, err, ErrNullValue)
}

func TestWriteRow_ComplexField(t *testing.T) {
	s := schema.RecordOf("r",
		schema.NewField("id", schema.Of(schema.TypeLong)),
		schema.NewField("tags", schema.NullableOf(schema.ArrayOf(schema.Of(schema.TypeString)))),
	)
	rec := buildRecord(t, s, map[string]any{"id": int64(1)})
	stmt := mocks.NewStatementMock()

	_, err := WriteRow(stmt, rec, []sqltypes.Type{sqltypes.BigInt, sqltypes.Array})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "tags")
	stmt.AssertNotCalled(t, "SetLong", mock.Anything, mock.Anything)
}

func TestWriteRow_ColumnTypesLength(t *testing.T) {
	s := schema.RecordOf("r", schema.NewField("id", schema.Of(schema.TypeLong)))
	rec := buildRecord(t, s, map[string]any{"id": int64(1)})
	_, err := WriteRow(mocks.NewStatementMock(), rec, nil)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestWriteRow_BindError(t *testing.T) {
	s := schema.RecordOf("r", schema.NewField("name", schema.Of(schema.TypeString)))
	rec := buildRecord(t, s, map[string]any{"name": "x"})
	stmt := mocks.NewStatementMock()
	bindErr := errors.New("driver failure")
	stmt.On("SetString", 1, "x").Return(bindErr)

	_, err := WriteRow(stmt, rec, []sqltypes.Type{sqltypes.VarChar})
	require.ErrorIs(t, err, bindErr)
	assert.Contains(t, err.Error(), "name")
}

func TestWriteRow_TimestampIsBoundInUTC(t *testing.T) {
	s := schema.RecordOf("r", schema.NewField("ts", schema.LogicalOf(schema.LogicalTypeTimestampMillis)))
	local := time.Date(2022, 2, 2, 12, 0, 0, 0, time.FixedZone("X", -5*3600))
	rec := buildRecord(t, s, map[string]any{"ts": local})

	stmt := testutils.NewLoopbackStatement()
	_, err := WriteRow(stmt, rec, []sqltypes.Type{sqltypes.Timestamp})
	require.NoError(t, err)
	bound := stmt.Bindings[1].Value.Timestamp
	assert.Equal(t, time.UTC, bound.Location())
	assert.True(t, local.Equal(bound))
}

func TestConverter_WriteRow(t *testing.T) {
	c, err := New(Config{})
	require.NoError(t, err)
	s := schema.RecordOf("r", schema.NewField("id", schema.Of(schema.TypeInt)))
	rec := buildRecord(t, s, map[string]any{"id": int32(9)})
	stmt := testutils.NewLoopbackStatement()
	n, err := c.WriteRow(stmt, rec, []sqltypes.Type{sqltypes.Integer})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, models.IntValue(9), stmt.Bindings[1].Value)
}
