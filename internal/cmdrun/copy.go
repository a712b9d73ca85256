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
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/greenmaskio/dbrecord/internal/config"
	"github.com/greenmaskio/dbrecord/internal/dbrecord"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/record"
	"github.com/greenmaskio/dbrecord/internal/sqldriver"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

const copyBufferSize = 128

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// RunCopy - reads the source query rows and inserts them into the sink table. Sink columns default to
// the record field names.
func RunCopy(ctx context.Context, cfg *config.Config) error {
	if err := requireOption("source.query", cfg.Source.Query); err != nil {
		return err
	}
	if err := requireOption("sink.table", cfg.Sink.Table); err != nil {
		return err
	}
	ctx, runID := withRunID(ctx)

	conv, err := dbrecord.New(cfg.Converter)
	if err != nil {
		return err
	}
	sinkDialect, err := sqldriver.ParseDialect(cfg.Sink.Driver)
	if err != nil {
		return err
	}
	cursor, closeCursor, err := openQuery(ctx, cfg.Source.Driver, cfg.Source.DSN, cfg.Source.Query)
	if err != nil {
		return err
	}
	defer closeCursor()
	sinkDB, err := sqldriver.Open(ctx, sinkDialect, cfg.Sink.DSN)
	if err != nil {
		return err
	}
	defer closeDB(ctx, sinkDB)

	out, err := conv.OutputSchema(cursor.Columns())
	if err != nil {
		return err
	}
	columns := cfg.Sink.Columns
	if len(columns) == 0 {
		columns = out.FieldNames()
	}
	if len(columns) != len(out.Fields) {
		return fmt.Errorf(
			"%w: sink has %d columns while the record has %d fields",
			dbrecord.ErrConfiguration, len(columns), len(out.Fields),
		)
	}
	columnTypes, err := sqldriver.ColumnTypes(ctx, sinkDB, sinkDialect, cfg.Sink.Table, columns)
	if err != nil {
		return err
	}
	query, err := sqldriver.InsertQuery(sinkDialect, cfg.Sink.Table, columns)
	if err != nil {
		return err
	}

	stat, err := copyRows(ctx, conv, cursor, sinkDB, query, columnTypes)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Str("RunID", runID).
		Str("Table", cfg.Sink.Table).
		Int64("Rows", stat.Rows).
		Int64("BytesRead", stat.BytesRead).
		Int64("BytesWritten", stat.BytesWritten).
		Dur("Duration", stat.Duration).
		Msg("copy completed")
	return nil
}

// copyRows - the reader converts rows into records and the writer binds and inserts them.
func copyRows(
	ctx context.Context, conv *dbrecord.Converter, cursor rowCursor, db execer, query string,
	columnTypes []sqltypes.Type,
) (models.ConversionStat, error) {
	var stat models.ConversionStat
	startedAt := time.Now()
	records := make(chan *record.Record, copyBufferSize)

	eg, gtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(records)
		for {
			ok, err := cursor.Next()
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			rec, n, err := conv.ReadRow(cursor)
			if err != nil {
				return fmt.Errorf("row %d: %w", stat.Rows+1, err)
			}
			stat.AddRead(n)
			select {
			case records <- rec:
			case <-gtx.Done():
				return gtx.Err()
			}
		}
	})
	eg.Go(func() error {
		stmt := sqldriver.NewArgsStatement(len(columnTypes))
		var written int64
		for rec := range records {
			n, err := conv.WriteRow(stmt, rec, columnTypes)
			if err != nil {
				return fmt.Errorf("row %d: %w", written+1, err)
			}
			if _, err := db.ExecContext(gtx, query, stmt.Args()...); err != nil {
				return fmt.Errorf("row %d: cannot insert: %w", written+1, err)
			}
			stmt.Reset()
			stat.AddWritten(n)
			written++
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return stat, err
	}
	stat.Duration = time.Since(startedAt)
	return stat, nil
}
