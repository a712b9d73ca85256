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
	"math/big"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/schema"
)

const (
	sizeFourBytes  int64 = 4
	sizeEightBytes int64 = 8
	// decimalScaleSize - bytes accounted for the scale of a decimal on top of its unscaled value.
	decimalScaleSize int64 = 4
)

// sizeOf - bytes accounted for a non-null value of a resolved field schema. The same table is used for
// reading and writing.
func sizeOf(fs *schema.Schema, v any) int64 {
	switch fs.LogicalType {
	case schema.LogicalTypeDate:
		return sizeEightBytes
	case schema.LogicalTypeTimeMillis:
		return sizeFourBytes
	case schema.LogicalTypeTimeMicros:
		return sizeEightBytes
	case schema.LogicalTypeTimestampMillis, schema.LogicalTypeTimestampMicros:
		return sizeEightBytes
	case schema.LogicalTypeDecimal:
		return decimalSize(record.Unscaled(v.(decimal.Decimal), fs.Scale))
	case schema.LogicalTypeDateTime:
		return int64(utf8.RuneCountInString(v.(string)))
	}

	switch fs.Type {
	case schema.TypeBoolean, schema.TypeInt, schema.TypeFloat:
		return sizeFourBytes
	case schema.TypeLong, schema.TypeDouble:
		return sizeEightBytes
	case schema.TypeString:
		return int64(utf8.RuneCountInString(v.(string)))
	case schema.TypeBytes:
		return int64(len(v.([]byte)))
	}
	return 0
}

// decimalSize - ceil(bitlen / 8) + 4 where bitlen is the two's complement width without the sign bit.
func decimalSize(unscaled *big.Int) int64 {
	bits := int64(unscaled.BitLen())
	if unscaled.Sign() < 0 {
		bits = int64(new(big.Int).Not(unscaled).BitLen())
	}
	return (bits+7)/8 + decimalScaleSize
}
