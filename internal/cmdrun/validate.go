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

package cmdrun

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/dbrecord/internal/config"
	"github.com/greenmaskio/dbrecord/internal/dbrecord"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/schema"
	"github.com/greenmaskio/dbrecord/internal/validationcollector"
	"github.com/greenmaskio/dbrecord/internal/validator"
)

const propertyInputSchema = "input_schema"

// RunValidate - validates the output schema against the input schema and prints the warnings as a table.
// The input schema is taken from validate.input_schema or, when empty and a source is configured, resolved
// from the source query columns. Returns ErrValidationFailed when any warning is fatal.
func RunValidate(ctx context.Context, cfg *config.Config, w io.Writer) error {
	ctx, _ = withRunID(ctx)
	vc := validationcollector.NewCollectorWithMeta(models.MetaKeyStage, "validate")
	ctx = validationcollector.WithCollector(ctx, vc)

	input, err := inputSchema(ctx, cfg)
	if err != nil {
		vc.Add(models.NewValidationWarning().
			SetSeverity(models.ValidationSeverityError).
			SetMsg("Cannot resolve input schema").
			SetError(err).
			AddMeta(models.MetaKeyPropertyName, propertyInputSchema))
	}

	out, err := validator.ValidateOutputSchemaAndInputSchemaIfPresent(ctx, cfg.Validate.OutputSchema, input)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("output schema validation")
	}
	if out != nil && len(cfg.Validate.RequiredFields) > 0 {
		if err := validator.ValidateFieldsArePresentInSchema(out, cfg.Validate.RequiredFields...); err != nil {
			vc.Add(models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsg("Required field is missing").
				SetError(err))
		}
	}
	if out != nil && cfg.Validate.SampleRows > 0 && cfg.Source.DSN != "" && cfg.Source.Query != "" {
		if err := sampleSource(ctx, cfg, out, vc); err != nil {
			vc.Add(models.NewValidationWarning().
				SetSeverity(models.ValidationSeverityError).
				SetMsg("Cannot check source rows").
				SetError(err))
		}
	}
	validator.CanRecordLineage(out, "output")

	if err := printWarnings(w, vc.GetWarnings()); err != nil {
		return err
	}
	if vc.IsFatal() {
		return ErrValidationFailed
	}
	return nil
}

func inputSchema(ctx context.Context, cfg *config.Config) (*schema.Schema, error) {
	if cfg.Validate.InputSchema != "" {
		return schema.Parse(cfg.Validate.InputSchema)
	}
	if cfg.Source.DSN == "" || cfg.Source.Query == "" {
		return nil, nil
	}
	conv, err := dbrecord.New(cfg.Converter)
	if err != nil {
		return nil, err
	}
	cursor, closeCursor, err := openQuery(ctx, cfg.Source.Driver, cfg.Source.DSN, cfg.Source.Query)
	if err != nil {
		return nil, err
	}
	defer closeCursor()
	return conv.OutputSchema(cursor.Columns())
}

func sampleSource(ctx context.Context, cfg *config.Config, out *schema.Schema, vc *validationcollector.Collector) error {
	conv, err := dbrecord.New(cfg.Converter)
	if err != nil {
		return err
	}
	cursor, closeCursor, err := openQuery(ctx, cfg.Source.Driver, cfg.Source.DSN, cfg.Source.Query)
	if err != nil {
		return err
	}
	defer closeCursor()
	return checkSampleRows(ctx, conv, cursor, out, cfg.Validate.SampleRows, vc)
}

// checkSampleRows - reads up to limit rows and reports values of the output schema datetime fields that
// are not ISO-8601 local date-times.
func checkSampleRows(
	ctx context.Context, conv *dbrecord.Converter, cursor rowCursor, out *schema.Schema, limit int,
	vc *validationcollector.Collector,
) error {
	for row := 1; row <= limit; row++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := cursor.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		rec, _, err := conv.ReadRow(cursor)
		if err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
		for _, f := range out.Fields {
			v, err := rec.Get(f.Name)
			if err != nil {
				// Reported by the subset check
				continue
			}
			if err := validator.ValidateDateTimeField(f.Schema, f.Name, v); err != nil {
				vc.Add(models.NewValidationWarning().
					SetSeverity(models.ValidationSeverityError).
					SetMsg("Datetime value is not in ISO-8601 format").
					SetError(err).
					AddMeta(models.MetaKeyFieldName, f.Name).
					AddMeta(models.MetaKeyRowNumber, row))
			}
		}
	}
	return nil
}

func printWarnings(w io.Writer, warnings models.ValidationWarnings) error {
	if len(warnings) == 0 {
		if _, err := fmt.Fprintln(w, "no validation warnings"); err != nil {
			return fmt.Errorf("cannot print warnings: %w", err)
		}
		return nil
	}
	data := make([][]string, 0, len(warnings))
	for _, vw := range warnings {
		vw.MakeHash()
		data = append(data, []string{
			string(vw.Severity),
			vw.Msg,
			metaString(vw, models.MetaKeyFieldName),
			metaString(vw, models.MetaKeyCorrectiveAction),
			metaString(vw, models.MetaKeyError),
			vw.Hash,
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"severity", "message", "field", "corrective action", "error", "hash"})
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
	return nil
}

func metaString(vw *models.ValidationWarning, key string) string {
	if v, ok := vw.Meta[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}
