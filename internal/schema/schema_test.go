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

package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_NullableOf(t *testing.T) {
	s := NullableOf(Of(TypeInt))
	require.True(t, s.IsNullable())
	assert.Equal(t, TypeInt, s.NonNullable().Type)
	assert.Same(t, s, NullableOf(s))

	reversed := UnionOf(Of(TypeNull), Of(TypeString))
	assert.True(t, reversed.IsNullable())
	assert.Equal(t, TypeString, reversed.NonNullable().Type)

	wide := UnionOf(Of(TypeNull), Of(TypeString), Of(TypeInt))
	assert.False(t, wide.IsNullable())
	assert.Same(t, wide, wide.NonNullable())
}

func TestSchema_IsSimpleOrNullableSimple(t *testing.T) {
	tests := []struct {
		name     string
		schema   *Schema
		expected bool
	}{
		{"int", Of(TypeInt), true},
		{"nullable string", NullableOf(Of(TypeString)), true},
		{"date", LogicalOf(LogicalTypeDate), true},
		{"nullable decimal", NullableOf(DecimalOf(10, 2)), true},
		{"array", ArrayOf(Of(TypeInt)), false},
		{"map", MapOf(Of(TypeInt)), false},
		{"nullable record", NullableOf(RecordOf("r", NewField("a", Of(TypeInt)))), false},
		{"enum", EnumWith("A", "B"), false},
		{"wide union", UnionOf(Of(TypeInt), Of(TypeString), Of(TypeNull)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.schema.IsSimpleOrNullableSimple())
		})
	}
}

func TestSchema_DisplayName(t *testing.T) {
	assert.Equal(t, "int", Of(TypeInt).DisplayName())
	assert.Equal(t, "decimal", NullableOf(DecimalOf(5, 1)).DisplayName())
	assert.Equal(t, "time-micros", LogicalOf(LogicalTypeTimeMicros).DisplayName())
	assert.Equal(t, "array", ArrayOf(Of(TypeInt)).DisplayName())
	assert.Equal(t, "union<int,string,null>", UnionOf(Of(TypeInt), Of(TypeString), Of(TypeNull)).DisplayName())
}

func TestSchema_Field(t *testing.T) {
	rec := RecordOf("user",
		NewField("id", Of(TypeLong)),
		NewField("name", NullableOf(Of(TypeString))),
	)
	require.NotNil(t, rec.Field("name"))
	assert.Equal(t, "name", rec.Field("name").Name)
	assert.Nil(t, rec.Field("missing"))
	assert.Equal(t, 1, rec.FieldIndex("name"))
	assert.Equal(t, -1, rec.FieldIndex("missing"))
	assert.Equal(t, []string{"id", "name"}, rec.FieldNames())
	assert.Nil(t, Of(TypeInt).Field("id"))
}

func TestSchema_Equal(t *testing.T) {
	a := RecordOf("r", NewField("d", DecimalOf(10, 2)), NewField("s", NullableOf(Of(TypeString))))
	b := RecordOf("r", NewField("d", DecimalOf(10, 2)), NewField("s", NullableOf(Of(TypeString))))
	c := RecordOf("r", NewField("d", DecimalOf(10, 3)), NewField("s", NullableOf(Of(TypeString))))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.False(t, EnumWith("A").Equal(EnumWith("B")))
	assert.True(t, MapOf(LogicalOf(LogicalTypeDate)).Equal(MapOf(LogicalOf(LogicalTypeDate))))
}

func TestSchema_Equal_Recursive(t *testing.T) {
	a := MustParse(`{"type":"record","name":"node","fields":[{"name":"next","type":["null","node"]}]}`)
	b := MustParse(`{"type":"record","name":"node","fields":[{"name":"next","type":["null","node"]}]}`)
	assert.True(t, a.Equal(b))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *Schema
	}{
		{
			name:     "primitive",
			text:     `"long"`,
			expected: Of(TypeLong),
		},
		{
			name:     "nullable union",
			text:     `["string", "null"]`,
			expected: NullableOf(Of(TypeString)),
		},
		{
			name:     "date",
			text:     `{"type":"int","logicalType":"date"}`,
			expected: LogicalOf(LogicalTypeDate),
		},
		{
			name:     "decimal",
			text:     `{"type":"bytes","logicalType":"decimal","precision":12,"scale":4}`,
			expected: DecimalOf(12, 4),
		},
		{
			name:     "datetime",
			text:     `{"type":"string","logicalType":"datetime"}`,
			expected: LogicalOf(LogicalTypeDateTime),
		},
		{
			name:     "unknown logical type is ignored",
			text:     `{"type":"string","logicalType":"uuid"}`,
			expected: Of(TypeString),
		},
		{
			name:     "array",
			text:     `{"type":"array","items":"int"}`,
			expected: ArrayOf(Of(TypeInt)),
		},
		{
			name:     "map",
			text:     `{"type":"map","values":["null","double"]}`,
			expected: MapOf(UnionOf(Of(TypeNull), Of(TypeDouble))),
		},
		{
			name:     "wrapped type",
			text:     `{"type":{"type":"int","logicalType":"time-millis"}}`,
			expected: LogicalOf(LogicalTypeTimeMillis),
		},
		{
			name: "record",
			text: `{
				"type": "record",
				"name": "output",
				"fields": [
					{"name": "id", "type": "long"},
					{"name": "amount", "type": ["null", {"type":"bytes","logicalType":"decimal","precision":10,"scale":2}]},
					{"name": "created", "type": {"type":"long","logicalType":"timestamp-micros"}}
				]
			}`,
			expected: RecordOf("output",
				NewField("id", Of(TypeLong)),
				NewField("amount", UnionOf(Of(TypeNull), DecimalOf(10, 2))),
				NewField("created", LogicalOf(LogicalTypeTimestampMicros)),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.text)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(s), cmp.Diff(mustJSON(t, tt.expected), mustJSON(t, s)))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed json", `{"type":`},
		{"unknown type", `"uint"`},
		{"unknown reference", `{"type":"record","name":"r","fields":[{"name":"a","type":"other"}]}`},
		{"missing type", `{"name":"x"}`},
		{"record without name", `{"type":"record","fields":[]}`},
		{"record without fields", `{"type":"record","name":"r"}`},
		{"field without name", `{"type":"record","name":"r","fields":[{"type":"int"}]}`},
		{"duplicate field", `{"type":"record","name":"r","fields":[{"name":"a","type":"int"},{"name":"a","type":"int"}]}`},
		{"decimal without precision", `{"type":"bytes","logicalType":"decimal"}`},
		{"decimal scale above precision", `{"type":"bytes","logicalType":"decimal","precision":2,"scale":3}`},
		{"logical type on wrong physical type", `{"type":"string","logicalType":"date"}`},
		{"empty union", `[]`},
		{"nested union", `["null", ["int", "long"]]`},
		{"enum without symbols", `{"type":"enum","name":"e","symbols":[]}`},
		{"number", `42`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.ErrorIs(t, err, ErrInvalidSchema)
		})
	}
}

func TestSchema_JSON_RoundTrip(t *testing.T) {
	texts := []string{
		`"boolean"`,
		`["null","bytes"]`,
		`{"type":"int","logicalType":"date"}`,
		`{"type":"bytes","logicalType":"decimal","precision":38,"scale":9}`,
		`{"type":"enum","name":"color","symbols":["RED","GREEN"]}`,
		`{"type":"map","values":{"type":"array","items":"float"}}`,
		`{"type":"record","name":"node","fields":[{"name":"value","type":"string"},{"name":"next","type":["null","node"]}]}`,
	}
	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			s, err := Parse(text)
			require.NoError(t, err)
			rendered, err := s.JSON()
			require.NoError(t, err)
			assert.JSONEq(t, text, rendered)

			again, err := Parse(rendered)
			require.NoError(t, err)
			assert.True(t, s.Equal(again))
		})
	}
}

func mustJSON(t *testing.T, s *Schema) string {
	t.Helper()
	res, err := s.JSON()
	require.NoError(t, err)
	return res
}
