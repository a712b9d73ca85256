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
	"strings"
)

const unsignedPrefix = "UNSIGNED "

// databaseTypeNames - names reported by DatabaseTypeName() of the pgx stdlib and go-sql-driver/mysql
// column types.
var databaseTypeNames = map[string]Type{
	// postgres
	"BOOL":        Boolean,
	"INT2":        SmallInt,
	"INT4":        Integer,
	"INT8":        BigInt,
	"FLOAT4":      Real,
	"FLOAT8":      Double,
	"NUMERIC":     Numeric,
	"BPCHAR":      Char,
	"VARCHAR":     VarChar,
	"TEXT":        LongVarChar,
	"NAME":        VarChar,
	"UUID":        Other,
	"JSON":        Other,
	"JSONB":       Other,
	"XML":         SQLXML,
	"DATE":        Date,
	"TIME":        Time,
	"TIMETZ":      TimeWithTimezone,
	"TIMESTAMP":   Timestamp,
	"TIMESTAMPTZ": TimestampWithTimezone,
	"BYTEA":       Binary,
	"OID":         BigInt,

	// mysql
	"BIT":        Bit,
	"TINYINT":    TinyInt,
	"SMALLINT":   SmallInt,
	"YEAR":       SmallInt,
	"MEDIUMINT":  Integer,
	"INT":        Integer,
	"INTEGER":    Integer,
	"BIGINT":     BigInt,
	"FLOAT":      Real,
	"DOUBLE":     Double,
	"REAL":       Double,
	"DECIMAL":    Decimal,
	"CHAR":       Char,
	"TINYTEXT":   VarChar,
	"MEDIUMTEXT": LongVarChar,
	"LONGTEXT":   LongVarChar,
	"ENUM":       Char,
	"SET":        Char,
	"DATETIME":   Timestamp,
	"BINARY":     Binary,
	"VARBINARY":  VarBinary,
	"TINYBLOB":   VarBinary,
	"BLOB":       Blob,
	"MEDIUMBLOB": Blob,
	"LONGBLOB":   Blob,
	"GEOMETRY":   Binary,
	"NULL":       Null,
	"BOOLEAN":    Boolean,
}

// FromDatabaseTypeName - maps the driver reported database type name onto a type code. The second result
// reports an unsigned integer column. Postgres array types (prefixed with "_") map to Array. Unknown names
// map to Other.
func FromDatabaseTypeName(name string) (Type, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	unsigned := false
	if strings.HasPrefix(name, unsignedPrefix) {
		unsigned = true
		name = strings.TrimPrefix(name, unsignedPrefix)
	}
	if strings.HasPrefix(name, "_") {
		return Array, false
	}
	if t, ok := databaseTypeNames[name]; ok {
		return t, unsigned
	}
	return Other, unsigned
}
