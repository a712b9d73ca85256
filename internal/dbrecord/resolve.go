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
	"fmt"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

// ResolveNonNullable - strips the nullable wrapper of the field schema and checks the remaining type is
// simple. Logical types are accepted through their physical type.
func ResolveNonNullable(f *schema.Field) (*schema.Schema, error) {
	s := f.Schema.NonNullable()
	if !s.IsSimpleType() {
		return nil, fmt.Errorf(
			"%w: only simple types are supported (boolean, int, long, float, double, string, bytes) "+
				"but found \"%s\" as the type for column \"%s\": remove this column or transform it to a simple type",
			ErrConfiguration, s.DisplayName(), f.Name,
		)
	}
	return s, nil
}

// compatible - reports whether values read for a field of type from can be stored into a field of type to.
func compatible(from, to *schema.Schema) bool {
	from, to = from.NonNullable(), to.NonNullable()
	if from.Equal(to) {
		return true
	}
	if to.Type == schema.TypeString && to.LogicalType == schema.LogicalTypeNone {
		return true
	}
	switch {
	case isPlain(from, schema.TypeInt) && isPlain(to, schema.TypeLong):
		return true
	case isPlain(from, schema.TypeFloat) && isPlain(to, schema.TypeDouble):
		return true
	case from.LogicalType == schema.LogicalTypeDecimal && from.Scale == 0 &&
		(isPlain(to, schema.TypeInt) || isPlain(to, schema.TypeLong)):
		return true
	case isTimestamp(from) && (isTimestamp(to) || to.LogicalType == schema.LogicalTypeDateTime):
		return true
	case isPlain(from, schema.TypeString) && to.LogicalType == schema.LogicalTypeDateTime:
		return true
	case isTime(from) && isTime(to):
		return true
	}
	return false
}

func isPlain(s *schema.Schema, t schema.Type) bool {
	return s.LogicalType == schema.LogicalTypeNone && s.Type == t
}

func isTimestamp(s *schema.Schema) bool {
	return s.LogicalType == schema.LogicalTypeTimestampMillis || s.LogicalType == schema.LogicalTypeTimestampMicros
}

func isTime(s *schema.Schema) bool {
	return s.LogicalType == schema.LogicalTypeTimeMillis || s.LogicalType == schema.LogicalTypeTimeMicros
}
