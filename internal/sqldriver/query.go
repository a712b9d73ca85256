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
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

// InsertQuery - parameterized INSERT of all the columns in order.
func InsertQuery(dialect Dialect, table string, columns []string) (string, error) {
	flavor, err := dialect.flavor()
	if err != nil {
		return "", err
	}
	if len(columns) == 0 {
		return "", fmt.Errorf("insert into \"%s\" requires at least one column", table)
	}
	ib := flavor.NewInsertBuilder()
	ib.InsertInto(table)
	ib.Cols(quoteAll(flavor, columns)...)
	ib.Values(make([]any, len(columns))...)
	query, _ := ib.Build()
	return query, nil
}

// typesQuery - selects the columns without fetching any row.
func typesQuery(dialect Dialect, table string, columns []string) (string, error) {
	flavor, err := dialect.flavor()
	if err != nil {
		return "", err
	}
	sb := flavor.NewSelectBuilder()
	sb.Select(quoteAll(flavor, columns)...).
		From(table).
		Where("1 = 0")
	query, _ := sb.Build()
	return query, nil
}

// ColumnTypes - type codes of the table columns in the order requested.
func ColumnTypes(
	ctx context.Context, db *sql.DB, dialect Dialect, table string, columns []string,
) ([]sqltypes.Type, error) {
	query, err := typesQuery(dialect, table, columns)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("Query", query).Msg("fetching column types")
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("cannot query column types of \"%s\": %w", table, err)
	}
	defer rows.Close()

	cts, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("cannot get column types of \"%s\": %w", table, err)
	}
	res := make([]sqltypes.Type, 0, len(cts))
	for _, ct := range cts {
		t, _ := sqltypes.FromDatabaseTypeName(ct.DatabaseTypeName())
		res = append(res, t)
	}
	return res, rows.Err()
}

func quoteAll(flavor interface{ Quote(string) string }, names []string) []string {
	res := make([]string, len(names))
	for i, n := range names {
		res[i] = flavor.Quote(n)
	}
	return res
}
