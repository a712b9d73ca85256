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
	"regexp"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

const (
	originalSchemaName = "resultSet"
	outputSchemaName   = "dbRecord"
)

// Converter - converts result set rows into records and records into statement parameters.
// It is immutable after New and can be shared between goroutines.
type Converter struct {
	overrideSchema *schema.Schema
	pattern        *regexp.Regexp
	replaceWith    string
}

func New(cfg Config) (*Converter, error) {
	c := &Converter{
		replaceWith: cfg.ReplaceWith,
	}
	if cfg.OverrideSchema != "" {
		s, err := schema.Parse(cfg.OverrideSchema)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to parse schema string \"%s\": %w", ErrConfiguration, cfg.OverrideSchema, err)
		}
		if s.Type != schema.TypeRecord {
			return nil, fmt.Errorf(
				"%w: override schema must be a record but got \"%s\"", ErrConfiguration, s.DisplayName(),
			)
		}
		c.overrideSchema = s
	}
	if cfg.PatternToReplace != "" {
		p, err := regexp.Compile(cfg.PatternToReplace)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: invalid column name pattern \"%s\": %w", ErrConfiguration, cfg.PatternToReplace, err,
			)
		}
		c.pattern = p
	}
	return c, nil
}

// OverrideSchema - parsed override schema or nil.
func (c *Converter) OverrideSchema() *schema.Schema {
	return c.overrideSchema
}

// nameMap - renamed field name to the original column name.
type nameMap map[string]string

func (m nameMap) original(name string) string {
	if original, ok := m[name]; ok {
		return original
	}
	return name
}

func (c *Converter) rename(name string) string {
	if c.pattern == nil {
		return name
	}
	return c.pattern.ReplaceAllString(name, c.replaceWith)
}

// renameFields - applies the rename rule to the original schema keeping the field order.
func (c *Converter) renameFields(original *schema.Schema) (*schema.Schema, nameMap, error) {
	names := make(nameMap, len(original.Fields))
	fields := make([]*schema.Field, 0, len(original.Fields))
	for _, f := range original.Fields {
		newName := c.rename(f.Name)
		if newName == "" {
			return nil, nil, fmt.Errorf("%w: column \"%s\" is renamed to an empty name", ErrConfiguration, f.Name)
		}
		if prev, ok := names[newName]; ok {
			return nil, nil, fmt.Errorf(
				"%w: columns \"%s\" and \"%s\" are both renamed to \"%s\"", ErrConfiguration, prev, f.Name, newName,
			)
		}
		if newName != f.Name {
			log.Debug().
				Str("Column", f.Name).
				Str("Field", newName).
				Msg("column renamed")
		}
		names[newName] = f.Name
		fields = append(fields, schema.NewField(newName, f.Schema))
	}
	return schema.RecordOf(originalSchemaName, fields...), names, nil
}

// finalSchema - the override schema checked against the renamed schema or the renamed schema itself.
func (c *Converter) finalSchema(renamed *schema.Schema) (*schema.Schema, error) {
	if c.overrideSchema == nil {
		return schema.RecordOf(outputSchemaName, renamed.Fields...), nil
	}
	for _, f := range c.overrideSchema.Fields {
		actual := renamed.Field(f.Name)
		if actual == nil {
			return nil, fmt.Errorf(
				"%w: schema field \"%s\" is not present in the result set", ErrConfiguration, f.Name,
			)
		}
		if !compatible(actual.Schema, f.Schema) {
			return nil, fmt.Errorf(
				"%w: schema field \"%s\" has type \"%s\" but found \"%s\" in the result set",
				ErrConfiguration, f.Name, f.Schema.DisplayName(), actual.Schema.DisplayName(),
			)
		}
	}
	return c.overrideSchema, nil
}
