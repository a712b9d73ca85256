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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecimalSize(t *testing.T) {
	tests := []struct {
		name     string
		unscaled *big.Int
		expected int64
	}{
		{"zero", big.NewInt(0), 4},
		{"one", big.NewInt(1), 5},
		{"one byte", big.NewInt(255), 5},
		{"two bytes", big.NewInt(256), 6},
		{"negative power of two", big.NewInt(-256), 5},
		{"negative", big.NewInt(-257), 6},
		{"minus one", big.NewInt(-1), 4},
		{"wide", mustBigInt("123456789012345678901"), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decimalSize(tt.unscaled))
		})
	}
}
