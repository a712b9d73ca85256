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

package sqldriver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huandu/go-sqlbuilder"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
)

var (
	ErrUnknownDialect  = errors.New("unknown dialect")
	ErrUnexpectedValue = errors.New("unexpected driver value")
	ErrValueOverflow   = errors.New("value overflow")
	ErrParameterIndex  = errors.New("parameter index out of range")
)

type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(name); d {
	case DialectPostgres, DialectMySQL:
		return d, nil
	}
	return "", fmt.Errorf("%w: \"%s\"", ErrUnknownDialect, name)
}

func (d Dialect) flavor() (sqlbuilder.Flavor, error) {
	switch d {
	case DialectPostgres:
		return sqlbuilder.PostgreSQL, nil
	case DialectMySQL:
		return sqlbuilder.MySQL, nil
	}
	return sqlbuilder.DefaultFlavor, fmt.Errorf("%w: \"%s\"", ErrUnknownDialect, d)
}

// Open - opens and pings a connection pool for the dialect. Postgres connections get the numeric to
// decimal.Decimal codec registered. MySQL connections always parse DATE and DATETIME into time.Time in UTC.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	var db *sql.DB
	switch dialect {
	case DialectPostgres:
		cfg, err := pgx.ParseConfig(dsn)
		if err != nil {
			return nil, fmt.Errorf("cannot parse postgres dsn: %w", err)
		}
		db = stdlib.OpenDB(*cfg, stdlib.OptionAfterConnect(func(ctx context.Context, conn *pgx.Conn) error {
			pgxdecimal.Register(conn.TypeMap())
			return nil
		}))
	case DialectMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("cannot parse mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		cfg.Loc = time.UTC
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return nil, fmt.Errorf("cannot create mysql connector: %w", err)
		}
		db = sql.OpenDB(connector)
	default:
		return nil, fmt.Errorf("%w: \"%s\"", ErrUnknownDialect, dialect)
	}

	if err := db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing connection")
		}
		return nil, fmt.Errorf("cannot connect to %s: %w", dialect, err)
	}
	log.Debug().Str("Dialect", string(dialect)).Msg("connected")
	return db, nil
}
