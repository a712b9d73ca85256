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

package sqltypes

import (
	"fmt"
	"strings"
)

// Type - native SQL type code. The values are the ones of the JDBC java.sql.Types constants, so column type
// tables produced by JDBC based engines can be used as is.
type Type int

const (
	// Numeric types
	Bit      Type = -7
	TinyInt  Type = -6
	SmallInt Type = 5
	Integer  Type = 4
	BigInt   Type = -5
	Float    Type = 6
	Real     Type = 7
	Double   Type = 8
	Numeric  Type = 2
	Decimal  Type = 3
	Boolean  Type = 16

	// Character types
	Char         Type = 1
	VarChar      Type = 12
	LongVarChar  Type = -1
	NChar        Type = -15
	NVarChar     Type = -9
	LongNVarChar Type = -16
	Clob         Type = 2005
	NClob        Type = 2011
	SQLXML       Type = 2009

	// Date and time types
	Date                  Type = 91
	Time                  Type = 92
	Timestamp             Type = 93
	TimeWithTimezone      Type = 2013
	TimestampWithTimezone Type = 2014

	// Binary types
	Binary        Type = -2
	VarBinary     Type = -3
	LongVarBinary Type = -4
	Blob          Type = 2004

	// Other types
	Null       Type = 0
	Other      Type = 1111
	JavaObject Type = 2000
	Distinct   Type = 2001
	Struct     Type = 2002
	Array      Type = 2003
	Ref        Type = 2006
	DataLink   Type = 70
	RowID      Type = -8
	RefCursor  Type = 2012
)

var (
	TypeToName = map[Type]string{
		Bit:                   "BIT",
		TinyInt:               "TINYINT",
		SmallInt:              "SMALLINT",
		Integer:               "INTEGER",
		BigInt:                "BIGINT",
		Float:                 "FLOAT",
		Real:                  "REAL",
		Double:                "DOUBLE",
		Numeric:               "NUMERIC",
		Decimal:               "DECIMAL",
		Boolean:               "BOOLEAN",
		Char:                  "CHAR",
		VarChar:               "VARCHAR",
		LongVarChar:           "LONGVARCHAR",
		NChar:                 "NCHAR",
		NVarChar:              "NVARCHAR",
		LongNVarChar:          "LONGNVARCHAR",
		Clob:                  "CLOB",
		NClob:                 "NCLOB",
		SQLXML:                "SQLXML",
		Date:                  "DATE",
		Time:                  "TIME",
		Timestamp:             "TIMESTAMP",
		TimeWithTimezone:      "TIME_WITH_TIMEZONE",
		TimestampWithTimezone: "TIMESTAMP_WITH_TIMEZONE",
		Binary:                "BINARY",
		VarBinary:             "VARBINARY",
		LongVarBinary:         "LONGVARBINARY",
		Blob:                  "BLOB",
		Null:                  "NULL",
		Other:                 "OTHER",
		JavaObject:            "JAVA_OBJECT",
		Distinct:              "DISTINCT",
		Struct:                "STRUCT",
		Array:                 "ARRAY",
		Ref:                   "REF",
		DataLink:              "DATALINK",
		RowID:                 "ROWID",
		RefCursor:             "REF_CURSOR",
	}

	NameToType = func() map[string]Type {
		res := make(map[string]Type, len(TypeToName))
		for t, name := range TypeToName {
			res[name] = t
		}
		return res
	}()
)

func (t Type) String() string {
	if name, ok := TypeToName[t]; ok {
		return name
	}
	return fmt.Sprintf("TYPE(%d)", int(t))
}

// ParseName - returns the type by its JDBC name, case-insensitive.
func ParseName(name string) (Type, error) {
	t, ok := NameToType[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Other, fmt.Errorf("%w: \"%s\"", ErrUnknownTypeName, name)
	}
	return t, nil
}

// IsNarrowInteger - reports whether an int value has to be narrowed before binding into the column.
func (t Type) IsNarrowInteger() bool {
	return t == TinyInt || t == SmallInt
}

// IsLargeObjectBinary - reports whether a byte sequence has to be bound as a large object.
func (t Type) IsLargeObjectBinary() bool {
	return t == Blob
}

func (t Type) IsCharacter() bool {
	switch t {
	case Char, VarChar, LongVarChar, NChar, NVarChar, LongNVarChar, Clob, NClob, SQLXML:
		return true
	}
	return false
}

func (t Type) IsBinary() bool {
	switch t {
	case Binary, VarBinary, LongVarBinary, Blob:
		return true
	}
	return false
}
