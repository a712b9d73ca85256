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
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/dbrecord/internal/config"
	"github.com/greenmaskio/dbrecord/internal/dbrecord"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/utils/ioutils"
)

var errUnknownExportFormat = errors.New("unknown export format")

// recordEncoder - writes a single record into the export stream.
type recordEncoder func(w io.Writer, rec *record.Record) error

func encodeJSONLine(w io.Writer, rec *record.Record) error {
	data, err := rec.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func encoderFor(format string) (recordEncoder, error) {
	switch format {
	case config.ExportFormatJSON:
		return encodeJSONLine, nil
	case config.ExportFormatBinary:
		return dbrecord.Serialize, nil
	}
	return nil, fmt.Errorf("%w: \"%s\"", errUnknownExportFormat, format)
}

// RunExport - converts every row of the source query and writes the records in the configured format.
func RunExport(ctx context.Context, cfg *config.Config) error {
	if err := requireOption("source.query", cfg.Source.Query); err != nil {
		return err
	}
	encode, err := encoderFor(cfg.Export.Format)
	if err != nil {
		return err
	}
	ctx, runID := withRunID(ctx)
	if cfg.Export.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Export.Timeout)
		defer cancel()
	}

	conv, err := dbrecord.New(cfg.Converter)
	if err != nil {
		return err
	}
	cursor, closeCursor, err := openQuery(ctx, cfg.Source.Driver, cfg.Source.DSN, cfg.Source.Query)
	if err != nil {
		return err
	}
	defer closeCursor()

	w, cw, err := ioutils.CreateFile(cfg.Export.Path, cfg.Export.Gzip)
	if err != nil {
		return err
	}
	stat, err := exportRows(ctx, conv, cursor, w, encode)
	if closeErr := w.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("cannot close export file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str("RunID", runID).
		Str("Path", cfg.Export.Path).
		Str("Format", cfg.Export.Format).
		Int64("Rows", stat.Rows).
		Int64("BytesRead", stat.BytesRead).
		Int64("FileSize", cw.Count()).
		Dur("Duration", stat.Duration).
		Msg("export completed")
	return nil
}

func exportRows(
	ctx context.Context, conv *dbrecord.Converter, cursor rowCursor, w io.Writer, encode recordEncoder,
) (models.ConversionStat, error) {
	var stat models.ConversionStat
	startedAt := time.Now()
	bw := bufio.NewWriter(w)
	for {
		if err := ctx.Err(); err != nil {
			return stat, err
		}
		ok, err := cursor.Next()
		if err != nil {
			return stat, err
		}
		if !ok {
			break
		}
		rec, n, err := conv.ReadRow(cursor)
		if err != nil {
			return stat, fmt.Errorf("row %d: %w", stat.Rows+1, err)
		}
		stat.AddRead(n)
		if err := encode(bw, rec); err != nil {
			return stat, fmt.Errorf("row %d: cannot write record: %w", stat.Rows, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return stat, fmt.Errorf("cannot write record: %w", err)
	}
	stat.Duration = time.Since(startedAt)
	return stat, nil
}
