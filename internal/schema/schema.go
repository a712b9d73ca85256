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
	"slices"
	"strings"
)

type Field struct {
	Name   string
	Schema *Schema
}

func NewField(name string, s *Schema) *Field {
	return &Field{
		Name:   name,
		Schema: s,
	}
}

// Schema - describes a record, a field type or any nested type of the record type system.
// Logical types keep their physical type in Type, so a date is {Type: int, LogicalType: date}.
type Schema struct {
	Type        Type
	LogicalType LogicalType
	// Precision and Scale are set for the decimal logical type only.
	Precision int
	Scale     int
	// RecordName and Fields are set for records.
	RecordName string
	Fields     []*Field
	// Items - array element schema.
	Items *Schema
	// Values - map value schema. Map keys are always strings.
	Values *Schema
	// Members - union member schemas in declaration order.
	Members []*Schema
	// Symbols - enum symbols.
	Symbols []string

	fieldIdx map[string]int
}

func Of(t Type) *Schema {
	return &Schema{Type: t}
}

// LogicalOf - creates a schema for any logical type except decimal, which needs DecimalOf.
func LogicalOf(lt LogicalType) *Schema {
	return &Schema{
		Type:        lt.PhysicalType(),
		LogicalType: lt,
	}
}

func DecimalOf(precision, scale int) *Schema {
	return &Schema{
		Type:        TypeBytes,
		LogicalType: LogicalTypeDecimal,
		Precision:   precision,
		Scale:       scale,
	}
}

// NullableOf - wraps s into a [s, null] union. An already nullable schema is returned as is.
func NullableOf(s *Schema) *Schema {
	if s.IsNullable() {
		return s
	}
	return UnionOf(s, Of(TypeNull))
}

func UnionOf(members ...*Schema) *Schema {
	return &Schema{
		Type:    TypeUnion,
		Members: members,
	}
}

func ArrayOf(items *Schema) *Schema {
	return &Schema{
		Type:  TypeArray,
		Items: items,
	}
}

func MapOf(values *Schema) *Schema {
	return &Schema{
		Type:   TypeMap,
		Values: values,
	}
}

func EnumWith(symbols ...string) *Schema {
	return &Schema{
		Type:    TypeEnum,
		Symbols: symbols,
	}
}

func RecordOf(name string, fields ...*Field) *Schema {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[f.Name] = i
	}
	return &Schema{
		Type:       TypeRecord,
		RecordName: name,
		Fields:     fields,
		fieldIdx:   idx,
	}
}

func (s *Schema) addField(f *Field) {
	if s.fieldIdx == nil {
		s.fieldIdx = make(map[string]int)
	}
	s.fieldIdx[f.Name] = len(s.Fields)
	s.Fields = append(s.Fields, f)
}

// IsNullable - true for a union of exactly two members where one of them is null.
func (s *Schema) IsNullable() bool {
	if s.Type != TypeUnion || len(s.Members) != 2 {
		return false
	}
	return s.Members[0].Type == TypeNull || s.Members[1].Type == TypeNull
}

// NonNullable - returns the non-null member of a nullable union. Non nullable schemas are returned as is.
func (s *Schema) NonNullable() *Schema {
	if !s.IsNullable() {
		return s
	}
	if s.Members[0].Type == TypeNull {
		return s.Members[1]
	}
	return s.Members[0]
}

func (s *Schema) IsSimpleType() bool {
	return s.Type.IsSimpleType()
}

func (s *Schema) IsSimpleOrNullableSimple() bool {
	return s.NonNullable().IsSimpleType()
}

// Field - returns the record field by name or nil.
func (s *Schema) Field(name string) *Field {
	if s.Type != TypeRecord {
		return nil
	}
	if s.fieldIdx == nil {
		for _, f := range s.Fields {
			if f.Name == name {
				return f
			}
		}
		return nil
	}
	idx, ok := s.fieldIdx[name]
	if !ok {
		return nil
	}
	return s.Fields[idx]
}

// FieldIndex - returns the position of the field in the record or -1.
func (s *Schema) FieldIndex(name string) int {
	for i, f := range s.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (s *Schema) FieldNames() []string {
	names := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		names = append(names, f.Name)
	}
	return names
}

// DisplayName - human-readable type name, the logical type name wins over the physical one.
func (s *Schema) DisplayName() string {
	if s.LogicalType != LogicalTypeNone {
		return s.LogicalType.String()
	}
	if s.IsNullable() {
		return s.NonNullable().DisplayName()
	}
	if s.Type == TypeUnion {
		names := make([]string, 0, len(s.Members))
		for _, m := range s.Members {
			names = append(names, m.DisplayName())
		}
		return "union<" + strings.Join(names, ",") + ">"
	}
	return s.Type.String()
}

func (s *Schema) Equal(other *Schema) bool {
	return equal(s, other, make(map[string]bool))
}

func equal(a, b *Schema, seen map[string]bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.LogicalType != b.LogicalType {
		return false
	}
	if a.LogicalType == LogicalTypeDecimal && (a.Precision != b.Precision || a.Scale != b.Scale) {
		return false
	}
	switch a.Type {
	case TypeRecord:
		if a.RecordName != b.RecordName || len(a.Fields) != len(b.Fields) {
			return false
		}
		// Self references are compared by name only
		if seen[a.RecordName] {
			return true
		}
		seen[a.RecordName] = true
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}
			if !equal(a.Fields[i].Schema, b.Fields[i].Schema, seen) {
				return false
			}
		}
	case TypeArray:
		return equal(a.Items, b.Items, seen)
	case TypeMap:
		return equal(a.Values, b.Values, seen)
	case TypeUnion:
		if len(a.Members) != len(b.Members) {
			return false
		}
		for i := range a.Members {
			if !equal(a.Members[i], b.Members[i], seen) {
				return false
			}
		}
	case TypeEnum:
		return slices.Equal(a.Symbols, b.Symbols)
	}
	return true
}

func (s *Schema) String() string {
	res, err := s.MarshalJSON()
	if err != nil {
		return s.DisplayName()
	}
	return string(res)
}
