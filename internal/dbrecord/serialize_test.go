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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

func TestSerialize(t *testing.T) {
	s := schema.RecordOf("r",
		schema.NewField("flag", schema.Of(schema.TypeBoolean)),
		schema.NewField("i", schema.Of(schema.TypeInt)),
		schema.NewField("skipped", schema.NullableOf(schema.Of(schema.TypeLong))),
		schema.NewField("l", schema.Of(schema.TypeLong)),
		schema.NewField("s", schema.Of(schema.TypeString)),
		schema.NewField("b", schema.Of(schema.TypeBytes)),
		schema.NewField("born", schema.LogicalOf(schema.LogicalTypeDate)),
		schema.NewField("amount", schema.DecimalOf(4, 1)),
		schema.NewField("f", schema.Of(schema.TypeFloat)),
	)
	rec := buildRecord(t, s, map[string]any{
		"flag":   true,
		"i":      int32(258),
		"l":      int64(-2),
		"s":      "ab",
		"b":      []byte{9, 8},
		"born":   time.Date(1970, 1, 3, 0, 0, 0, 0, time.UTC),
		"amount": decimal.RequireFromString("12.8"),
		"f":      float32(1),
	})

	var buf bytes.Buffer
	require.NoError(t, Serialize(&buf, rec))
	expected := []byte{
		0x01,
		0x00, 0x00, 0x01, 0x02,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xfe,
		0x00, 0x02, 'a', 'b',
		0x09, 0x08,
		0x00, 0x00, 0x00, 0x02,
		0x00, 0x80,
		0x3f, 0x80, 0x00, 0x00,
	}
	assert.Equal(t, expected, buf.Bytes())
}

func TestSerialize_Errors(t *testing.T) {
	t.Run("complex field", func(t *testing.T) {
		s := schema.RecordOf("r", schema.NewField("m", schema.NullableOf(schema.MapOf(schema.Of(schema.TypeInt)))))
		rec := buildRecord(t, s, nil)
		require.ErrorIs(t, Serialize(&bytes.Buffer{}, rec), ErrConfiguration)
	})

	t.Run("long string", func(t *testing.T) {
		s := schema.RecordOf("r", schema.NewField("s", schema.Of(schema.TypeString)))
		rec := buildRecord(t, s, map[string]any{"s": strings.Repeat("x", 1<<16)})
		require.ErrorIs(t, Serialize(&bytes.Buffer{}, rec), ErrUnsupportedType)
	})
}
