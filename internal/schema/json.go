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
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/sjson"
)

// JSON - renders the schema in the same JSON representation Parse accepts.
func (s *Schema) JSON() (string, error) {
	return render(s, make(map[string]bool))
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	res, err := s.JSON()
	if err != nil {
		return nil, err
	}
	return []byte(res), nil
}

func render(s *Schema, seen map[string]bool) (doc string, err error) {
	if s == nil {
		return "", fmt.Errorf("%w: nil schema", ErrInvalidSchema)
	}
	switch s.Type {
	case TypeUnion:
		members := make([]string, 0, len(s.Members))
		for _, m := range s.Members {
			member, err := render(m, seen)
			if err != nil {
				return "", err
			}
			members = append(members, member)
		}
		return "[" + strings.Join(members, ",") + "]", nil
	case TypeRecord:
		return renderRecord(s, seen)
	case TypeArray:
		return renderNested(s.Type, "items", s.Items, seen)
	case TypeMap:
		return renderNested(s.Type, "values", s.Values, seen)
	case TypeEnum:
		doc = "{}"
		if doc, err = sjson.Set(doc, "type", s.Type.String()); err != nil {
			return "", err
		}
		if s.RecordName != "" {
			if doc, err = sjson.Set(doc, "name", s.RecordName); err != nil {
				return "", err
			}
		}
		return sjson.Set(doc, "symbols", s.Symbols)
	}

	if s.LogicalType == LogicalTypeNone {
		return strconv.Quote(s.Type.String()), nil
	}
	doc = "{}"
	if doc, err = sjson.Set(doc, "type", s.Type.String()); err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "logicalType", s.LogicalType.String()); err != nil {
		return "", err
	}
	if s.LogicalType == LogicalTypeDecimal {
		if doc, err = sjson.Set(doc, "precision", s.Precision); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, "scale", s.Scale); err != nil {
			return "", err
		}
	}
	return doc, nil
}

func renderNested(t Type, key string, nested *Schema, seen map[string]bool) (string, error) {
	inner, err := render(nested, seen)
	if err != nil {
		return "", err
	}
	doc, err := sjson.Set("{}", "type", t.String())
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(doc, key, inner)
}

func renderRecord(s *Schema, seen map[string]bool) (string, error) {
	if seen[s.RecordName] {
		return strconv.Quote(s.RecordName), nil
	}
	seen[s.RecordName] = true

	doc, err := sjson.Set("{}", "type", s.Type.String())
	if err != nil {
		return "", err
	}
	if doc, err = sjson.Set(doc, "name", s.RecordName); err != nil {
		return "", err
	}
	if doc, err = sjson.SetRaw(doc, "fields", "[]"); err != nil {
		return "", err
	}
	for _, f := range s.Fields {
		fieldType, err := render(f.Schema, seen)
		if err != nil {
			return "", fmt.Errorf("field \"%s\": %w", f.Name, err)
		}
		field, err := sjson.Set("{}", "name", f.Name)
		if err != nil {
			return "", err
		}
		if field, err = sjson.SetRaw(field, "type", fieldType); err != nil {
			return "", err
		}
		if doc, err = sjson.SetRaw(doc, "fields.-1", field); err != nil {
			return "", err
		}
	}
	return doc, nil
}
