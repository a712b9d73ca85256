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

import "fmt"

type Type int

const (
	TypeNull Type = iota
	TypeBoolean
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeString
	TypeBytes
	TypeEnum
	TypeArray
	TypeMap
	TypeRecord
	TypeUnion
)

var typeNames = map[Type]string{
	TypeNull:    "null",
	TypeBoolean: "boolean",
	TypeInt:     "int",
	TypeLong:    "long",
	TypeFloat:   "float",
	TypeDouble:  "double",
	TypeString:  "string",
	TypeBytes:   "bytes",
	TypeEnum:    "enum",
	TypeArray:   "array",
	TypeMap:     "map",
	TypeRecord:  "record",
	TypeUnion:   "union",
}

var typeByName = map[string]Type{
	"null":    TypeNull,
	"boolean": TypeBoolean,
	"int":     TypeInt,
	"long":    TypeLong,
	"float":   TypeFloat,
	"double":  TypeDouble,
	"string":  TypeString,
	"bytes":   TypeBytes,
	"enum":    TypeEnum,
	"array":   TypeArray,
	"map":     TypeMap,
	"record":  TypeRecord,
	"union":   TypeUnion,
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// IsSimpleType - reports whether the type is one of null, boolean, int, long, float, double, string, bytes.
func (t Type) IsSimpleType() bool {
	switch t {
	case TypeNull, TypeBoolean, TypeInt, TypeLong, TypeFloat, TypeDouble, TypeString, TypeBytes:
		return true
	}
	return false
}

// LogicalType - semantic refinement layered on top of a simple type.
type LogicalType int

const (
	LogicalTypeNone LogicalType = iota
	LogicalTypeDate
	LogicalTypeTimeMillis
	LogicalTypeTimeMicros
	LogicalTypeTimestampMillis
	LogicalTypeTimestampMicros
	LogicalTypeDecimal
	LogicalTypeDateTime
)

var logicalTypeNames = map[LogicalType]string{
	LogicalTypeDate:            "date",
	LogicalTypeTimeMillis:      "time-millis",
	LogicalTypeTimeMicros:      "time-micros",
	LogicalTypeTimestampMillis: "timestamp-millis",
	LogicalTypeTimestampMicros: "timestamp-micros",
	LogicalTypeDecimal:         "decimal",
	LogicalTypeDateTime:        "datetime",
}

var logicalTypeByName = map[string]LogicalType{
	"date":             LogicalTypeDate,
	"time-millis":      LogicalTypeTimeMillis,
	"time-micros":      LogicalTypeTimeMicros,
	"timestamp-millis": LogicalTypeTimestampMillis,
	"timestamp-micros": LogicalTypeTimestampMicros,
	"decimal":          LogicalTypeDecimal,
	"datetime":         LogicalTypeDateTime,
}

// physicalTypes - the simple type every logical type is stored as.
var physicalTypes = map[LogicalType]Type{
	LogicalTypeDate:            TypeInt,
	LogicalTypeTimeMillis:      TypeInt,
	LogicalTypeTimeMicros:      TypeLong,
	LogicalTypeTimestampMillis: TypeLong,
	LogicalTypeTimestampMicros: TypeLong,
	LogicalTypeDecimal:         TypeBytes,
	LogicalTypeDateTime:        TypeString,
}

func (lt LogicalType) String() string {
	if name, ok := logicalTypeNames[lt]; ok {
		return name
	}
	return ""
}

// PhysicalType - returns the simple type the logical type is layered on.
func (lt LogicalType) PhysicalType() Type {
	return physicalTypes[lt]
}
