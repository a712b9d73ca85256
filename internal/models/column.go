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

package models

import (
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

// ColumnMeta - result cursor column metadata.
type ColumnMeta struct {
	Name string
	// Type - native type code of the column.
	Type sqltypes.Type
	// TypeName - type name reported by the database driver.
	TypeName  string
	Precision int
	Scale     int
	Nullable  bool
	Unsigned  bool
}

func NewColumnMeta(name string, t sqltypes.Type, nullable bool) ColumnMeta {
	return ColumnMeta{
		Name:     name,
		Type:     t,
		TypeName: t.String(),
		Nullable: nullable,
	}
}

func (c ColumnMeta) WithPrecision(precision, scale int) ColumnMeta {
	c.Precision = precision
	c.Scale = scale
	return c
}

func (c ColumnMeta) WithUnsigned(unsigned bool) ColumnMeta {
	c.Unsigned = unsigned
	return c
}
