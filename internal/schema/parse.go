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
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var ErrInvalidSchema = errors.New("invalid schema")

// Parse - parses a JSON schema definition. Primitive types are plain strings, unions are JSON arrays and
// complex or logical types are objects with a "type" key. Records may refer to previously declared
// records by name, including themselves.
func Parse(text string) (*Schema, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%w: malformed json", ErrInvalidSchema)
	}
	p := &parser{named: make(map[string]*Schema)}
	s, err := p.parse(gjson.Parse(text), "$")
	if err != nil {
		return nil, err
	}
	return s, nil
}

// MustParse - parses the schema and panics on error. Intended for tests and static definitions.
func MustParse(text string) *Schema {
	s, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return s
}

type parser struct {
	named map[string]*Schema
}

func (p *parser) parse(node gjson.Result, path string) (*Schema, error) {
	switch {
	case node.Type == gjson.String:
		return p.parseName(node.String(), path)
	case node.IsArray():
		return p.parseUnion(node, path)
	case node.IsObject():
		return p.parseObject(node, path)
	}
	return nil, fmt.Errorf("%w: unexpected value %s at %s", ErrInvalidSchema, node.Raw, path)
}

func (p *parser) parseName(name, path string) (*Schema, error) {
	t, ok := typeByName[name]
	if ok && t.IsSimpleType() {
		return Of(t), nil
	}
	if s, ok := p.named[name]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: unknown type \"%s\" at %s", ErrInvalidSchema, name, path)
}

func (p *parser) parseUnion(node gjson.Result, path string) (*Schema, error) {
	var members []*Schema
	for i, m := range node.Array() {
		s, err := p.parse(m, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if s.Type == TypeUnion {
			return nil, fmt.Errorf("%w: nested union at %s[%d]", ErrInvalidSchema, path, i)
		}
		members = append(members, s)
	}
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: empty union at %s", ErrInvalidSchema, path)
	}
	return UnionOf(members...), nil
}

func (p *parser) parseObject(node gjson.Result, path string) (*Schema, error) {
	typeNode := node.Get("type")
	if !typeNode.Exists() {
		return nil, fmt.Errorf("%w: missing \"type\" at %s", ErrInvalidSchema, path)
	}
	if typeNode.Type != gjson.String {
		// {"type": {...}} and {"type": [...]} wrap a full schema definition
		return p.parse(typeNode, path+".type")
	}

	name := typeNode.String()
	switch name {
	case "record":
		return p.parseRecord(node, path)
	case "enum":
		return p.parseEnum(node, path)
	case "array":
		items, err := p.parse(node.Get("items"), path+".items")
		if err != nil {
			return nil, err
		}
		return ArrayOf(items), nil
	case "map":
		values, err := p.parse(node.Get("values"), path+".values")
		if err != nil {
			return nil, err
		}
		return MapOf(values), nil
	}

	s, err := p.parseName(name, path)
	if err != nil {
		return nil, err
	}
	if lt := node.Get("logicalType"); lt.Exists() {
		return p.applyLogicalType(s, lt.String(), node, path)
	}
	return s, nil
}

func (p *parser) applyLogicalType(s *Schema, name string, node gjson.Result, path string) (*Schema, error) {
	lt, ok := logicalTypeByName[name]
	if !ok {
		// Unknown logical types degrade to the underlying type
		return s, nil
	}
	if lt.PhysicalType() != s.Type {
		return nil, fmt.Errorf(
			"%w: logical type \"%s\" requires \"%s\" but got \"%s\" at %s",
			ErrInvalidSchema, name, lt.PhysicalType(), s.Type, path,
		)
	}
	if lt != LogicalTypeDecimal {
		return LogicalOf(lt), nil
	}
	precision := int(node.Get("precision").Int())
	scale := int(node.Get("scale").Int())
	if precision <= 0 {
		return nil, fmt.Errorf("%w: decimal precision must be positive at %s", ErrInvalidSchema, path)
	}
	if scale < 0 || scale > precision {
		return nil, fmt.Errorf("%w: decimal scale must be within [0, %d] at %s", ErrInvalidSchema, precision, path)
	}
	return DecimalOf(precision, scale), nil
}

func (p *parser) parseRecord(node gjson.Result, path string) (*Schema, error) {
	name := node.Get("name").String()
	if name == "" {
		return nil, fmt.Errorf("%w: record name is required at %s", ErrInvalidSchema, path)
	}
	fieldsNode := node.Get("fields")
	if !fieldsNode.IsArray() {
		return nil, fmt.Errorf("%w: record \"%s\" fields must be an array at %s", ErrInvalidSchema, name, path)
	}

	rec := RecordOf(name)
	// Registered before the fields so the record can refer to itself
	p.named[name] = rec

	for i, fn := range fieldsNode.Array() {
		fieldPath := fmt.Sprintf("%s.fields[%d]", path, i)
		fieldName := fn.Get("name").String()
		if fieldName == "" {
			return nil, fmt.Errorf("%w: field name is required at %s", ErrInvalidSchema, fieldPath)
		}
		if rec.Field(fieldName) != nil {
			return nil, fmt.Errorf("%w: duplicate field \"%s\" at %s", ErrInvalidSchema, fieldName, fieldPath)
		}
		fs, err := p.parse(fn.Get("type"), fieldPath+".type")
		if err != nil {
			return nil, err
		}
		rec.addField(NewField(fieldName, fs))
	}
	return rec, nil
}

func (p *parser) parseEnum(node gjson.Result, path string) (*Schema, error) {
	var symbols []string
	for _, s := range node.Get("symbols").Array() {
		symbols = append(symbols, s.String())
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: enum symbols are required at %s", ErrInvalidSchema, path)
	}
	enum := EnumWith(symbols...)
	if name := node.Get("name").String(); name != "" {
		enum.RecordName = name
		p.named[name] = enum
	}
	return enum, nil
}
