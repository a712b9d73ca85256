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
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/schema"
)

// Serialize - writes the non-null field values of the record in schema order using their physical
// representation. Numbers are big-endian, strings are prefixed with their uint16 byte length and bytes
// are written as is. The output carries no field boundaries for bytes so it is meant for digests and
// size estimation, not for decoding.
func Serialize(w io.Writer, rec *record.Record) error {
	for i, f := range rec.Schema().Fields {
		fs, err := ResolveNonNullable(f)
		if err != nil {
			return err
		}
		if rec.Value(i) == nil {
			continue
		}
		v, err := rec.PhysicalValue(f.Name)
		if err != nil {
			return err
		}
		if err := serializeValue(w, f.Name, fs.Type, v); err != nil {
			return err
		}
	}
	return nil
}

func serializeValue(w io.Writer, name string, t schema.Type, v any) error {
	var err error
	switch t {
	case schema.TypeNull:
		return nil
	case schema.TypeString:
		s := v.(string)
		if len(s) > math.MaxUint16 {
			return fmt.Errorf(
				"%w: string field \"%s\" is %d bytes long, at most %d is supported",
				ErrUnsupportedType, name, len(s), math.MaxUint16,
			)
		}
		if err = binary.Write(w, binary.BigEndian, uint16(len(s))); err == nil {
			_, err = io.WriteString(w, s)
		}
	case schema.TypeBoolean:
		var b byte
		if v.(bool) {
			b = 1
		}
		_, err = w.Write([]byte{b})
	case schema.TypeInt, schema.TypeLong, schema.TypeFloat, schema.TypeDouble:
		err = binary.Write(w, binary.BigEndian, v)
	case schema.TypeBytes:
		_, err = w.Write(v.([]byte))
	default:
		return fmt.Errorf(
			"%w: column \"%s\" with value \"%v\" has an unsupported datatype \"%s\"", ErrUnsupportedType, name, v, t,
		)
	}
	if err != nil {
		return fmt.Errorf("cannot serialize field \"%s\": %w", name, err)
	}
	return nil
}
