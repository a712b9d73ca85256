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

package validator

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/validationcollector"
)

const (
	propertySchema        = "schema"
	supportedTypesMessage = "Supported types are : boolean, int, long, float, double, bytes, string."
)

var (
	ErrFatalValidation    = errors.New("fatal validation error")
	ErrSchemaMismatch     = errors.New("schema mismatch")
	ErrFieldNotSimple     = errors.New("field is not of simple type")
	ErrFieldNotPresent    = errors.New("field is not present in schema")
	ErrUnexpectedDateTime = errors.New("unexpected datetime format")
)

// ValidateOutputSchemaAndInputSchemaIfPresent - parses the output schema and validates its fields are simple and,
// when the input schema is provided, that it is a subset of the input schema. Without an output schema the
// input schema is validated and returned. Failures are added to the context validation collector and
// ErrFatalValidation is returned when any of them is fatal. Both schemas absent is not an error and
// returns nil.
func ValidateOutputSchemaAndInputSchemaIfPresent(
	ctx context.Context, outputSchemaText string, inputSchema *schema.Schema,
) (*schema.Schema, error) {
	if inputSchema == nil && outputSchemaText == "" {
		return nil, nil
	}
	// Fatality is decided by the warnings of this call only
	vc := validationcollector.NewCollector()
	defer func() {
		validationcollector.FromContext(ctx).Add(vc.GetWarnings()...)
	}()

	outputSchema := inputSchema
	if outputSchemaText != "" {
		var err error
		outputSchema, err = schema.Parse(outputSchemaText)
		if err != nil {
			vc.Add(models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsgf("Invalid schema : %s", err.Error()).
				AddMeta(models.MetaKeyPropertyName, propertySchema))
			return nil, ErrFatalValidation
		}
	}
	if outputSchema.Type != schema.TypeRecord {
		vc.Add(models.NewValidationWarning().
			SetSeverity(models.ValidationSeverityError).
			SetMsgf("Invalid schema : expected record but got '%s'", outputSchema.DisplayName()).
			AddMeta(models.MetaKeyPropertyName, propertySchema))
		return nil, ErrFatalValidation
	}

	for _, f := range outputSchema.Fields {
		nonNullable := f.Schema.NonNullable()
		if !nonNullable.IsSimpleOrNullableSimple() {
			vc.Add(models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsgf("Field '%s' is of unexpected type '%s'.", f.Name, nonNullable.DisplayName()).
				SetCorrectiveAction(supportedTypesMessage).
				AddMeta(models.MetaKeyFieldName, f.Name).
				AddMeta(models.MetaKeyFieldType, nonNullable.DisplayName()))
		}
	}

	if inputSchema != nil {
		CollectOutputSchemaIsSubsetOfInputSchema(vc, inputSchema, outputSchema)
	}
	if vc.IsFatal() {
		return outputSchema, ErrFatalValidation
	}
	return outputSchema, nil
}

// ValidateOutputSchemaIsSubsetOfInputSchema - every output field must be present in the input schema with an
// equal schema, nullability included. Returns on the first failure.
func ValidateOutputSchemaIsSubsetOfInputSchema(inputSchema, outputSchema *schema.Schema) error {
	for _, f := range outputSchema.Fields {
		in := inputSchema.Field(f.Name)
		if in == nil {
			return fmt.Errorf(
				"%w: field '%s' is present in output schema but not present in input schema",
				ErrSchemaMismatch, f.Name,
			)
		}
		if !in.Schema.Equal(f.Schema) {
			return fmt.Errorf(
				"%w: field type mismatch, field '%s' type in input schema is %s, while in output schema its of type %s",
				ErrSchemaMismatch, f.Name, in.Schema, f.Schema,
			)
		}
	}
	return nil
}

// CollectOutputSchemaIsSubsetOfInputSchema - same check as ValidateOutputSchemaIsSubsetOfInputSchema but every
// failure is added to the collector and nullability is ignored.
func CollectOutputSchemaIsSubsetOfInputSchema(
	vc *validationcollector.Collector, inputSchema, outputSchema *schema.Schema,
) {
	for _, f := range outputSchema.Fields {
		in := inputSchema.Field(f.Name)
		if in == nil {
			vc.Add(models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsgf("Field '%s' is present in output schema but not present in input schema.", f.Name).
				AddMeta(models.MetaKeyFieldName, f.Name))
			continue
		}
		inSchema := in.Schema.NonNullable()
		outSchema := f.Schema.NonNullable()
		if !inSchema.Equal(outSchema) {
			vc.Add(models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsgf("Field '%s' has type mismatch with input schema type '%s'.", f.Name, inSchema.DisplayName()).
				SetCorrectiveAction("Change type to match input schema type.").
				AddMeta(models.MetaKeyFieldName, f.Name).
				AddMeta(models.MetaKeyFieldType, outSchema.DisplayName()).
				AddMeta(models.MetaKeyExpectedType, inSchema.DisplayName()))
		}
	}
}

// ValidateSchemaFieldsAreSimple - every field must be simple or nullable simple.
func ValidateSchemaFieldsAreSimple(s *schema.Schema) error {
	for _, f := range s.Fields {
		if !f.Schema.IsSimpleOrNullableSimple() {
			return fmt.Errorf(
				"%w: field '%s' is not of simple type, all fields for table sink should be of simple type",
				ErrFieldNotSimple, f.Name,
			)
		}
	}
	return nil
}

// ValidateFieldsArePresentInSchema - every required field must exist in the schema.
func ValidateFieldsArePresentInSchema(s *schema.Schema, requiredFields ...string) error {
	for _, name := range requiredFields {
		if s.Field(name) == nil {
			return fmt.Errorf("%w: field '%s' is not present in the input schema", ErrFieldNotPresent, name)
		}
	}
	return nil
}

// CanRecordLineage - field level lineage needs a schema with fields.
func CanRecordLineage(s *schema.Schema, name string) bool {
	if s == nil {
		log.Debug().
			Str("SchemaName", name).
			Msg("schema is nil: field level lineage will not be recorded")
		return false
	}
	if len(s.Fields) == 0 {
		log.Debug().
			Str("SchemaName", name).
			Msg("schema fields are empty: field level lineage will not be recorded")
		return false
	}
	return true
}

// ValidateDateTimeField - checks datetime values are ISO-8601 local date-times. Unions, records, arrays
// and maps are walked recursively. Records are visited once per record name.
func ValidateDateTimeField(s *schema.Schema, fieldName string, value any) error {
	return validateDateTimeField(s, fieldName, value, make(map[string]struct{}))
}

func validateDateTimeField(s *schema.Schema, fieldName string, value any, knownRecords map[string]struct{}) error {
	if value == nil {
		return nil
	}
	if s.LogicalType == schema.LogicalTypeDateTime {
		str := fmt.Sprint(value)
		if _, err := schema.ParseDateTime(str); err != nil {
			return fmt.Errorf(
				"%w: datetime field '%s' with value '%s' is not in ISO-8601 format",
				ErrUnexpectedDateTime, fieldName, str,
			)
		}
	}

	switch s.Type {
	case schema.TypeUnion:
		// Only the first non-null member is checked
		for _, m := range s.Members {
			if m.Type == schema.TypeNull {
				continue
			}
			return validateDateTimeField(m, fieldName, value, knownRecords)
		}
	case schema.TypeRecord:
		if _, ok := knownRecords[s.RecordName]; ok {
			return nil
		}
		knownRecords[s.RecordName] = struct{}{}
		rec, ok := value.(*record.Record)
		if !ok {
			return nil
		}
		for _, f := range s.Fields {
			v, err := rec.Get(f.Name)
			if err != nil {
				return err
			}
			if err := validateDateTimeField(f.Schema, f.Name, v, knownRecords); err != nil {
				return err
			}
		}
	case schema.TypeArray:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := validateDateTimeField(s.Items, fieldName, rv.Index(i).Interface(), knownRecords); err != nil {
				return err
			}
		}
	case schema.TypeMap:
		rv := reflect.ValueOf(value)
		if rv.Kind() != reflect.Map {
			return nil
		}
		iter := rv.MapRange()
		for iter.Next() {
			if err := validateDateTimeField(s.Values, fieldName, iter.Value().Interface(), knownRecords); err != nil {
				return err
			}
		}
	}
	return nil
}
