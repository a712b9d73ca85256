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
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/sqldriver"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	errMissingOption    = errors.New("missing required option")
)

// rowCursor - result cursor that walks the rows itself.
type rowCursor interface {
	interfaces.ResultCursor
	Next() (bool, error)
	Close() error
}

// withRunID - attaches a fresh run id to the context logger.
func withRunID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	l := log.Ctx(ctx).With().Str("RunID", id).Logger()
	return l.WithContext(ctx), id
}

func requireOption(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", errMissingOption, name)
	}
	return nil
}

// openQuery - connects and runs the query. The returned close func releases both the rows and the connection.
func openQuery(ctx context.Context, driver, dsn, query string) (*sqldriver.RowsCursor, func(), error) {
	dialect, err := sqldriver.ParseDialect(driver)
	if err != nil {
		return nil, nil, err
	}
	db, err := sqldriver.Open(ctx, dialect, dsn)
	if err != nil {
		return nil, nil, err
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		closeDB(ctx, db)
		return nil, nil, fmt.Errorf("cannot run source query: %w", err)
	}
	cursor, err := sqldriver.NewRowsCursor(rows)
	if err != nil {
		closeRows(ctx, rows)
		closeDB(ctx, db)
		return nil, nil, err
	}
	return cursor, func() {
		closeRows(ctx, rows)
		closeDB(ctx, db)
	}, nil
}

func closeRows(ctx context.Context, rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("error closing rows")
	}
}

func closeDB(ctx context.Context, db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("error closing connection")
	}
}
