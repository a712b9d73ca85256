//go:build integration

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
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/greenmaskio/dbrecord/internal/dbrecord"
	"github.com/greenmaskio/dbrecord/internal/testutils"
)

const (
	createSource = `
CREATE TABLE source (
	id INT NOT NULL PRIMARY KEY,
	full_name VARCHAR(64) NULL,
	amount DECIMAL(10, 2) NOT NULL,
	birth DATE NULL,
	created DATETIME(6) NOT NULL,
	flag TINYINT NOT NULL
)`
	createSink = `
CREATE TABLE sink (
	id INT NOT NULL PRIMARY KEY,
	full_name VARCHAR(64) NULL,
	amount DECIMAL(10, 2) NOT NULL,
	birth DATE NULL,
	created DATETIME(6) NOT NULL,
	flag TINYINT NOT NULL
)`
	fillSource = `
INSERT INTO source VALUES
	(1, 'Ada', 10.50, '1815-12-10', '2024-03-05 10:30:00.123456', 1),
	(2, NULL, 0.01, NULL, '2024-03-06 00:00:00', 0)`
)

type mysqlRoundTripSuite struct {
	testutils.MySQLContainerSuite
}

func (s *mysqlRoundTripSuite) SetupSuite() {
	s.SetMigrationUp(createSource, createSink, fillSource).
		SetMigrationDown("DROP TABLE sink", "DROP TABLE source")
	s.MySQLContainerSuite.SetupSuite()
}

func (s *mysqlRoundTripSuite) TestCopy() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := Open(ctx, DialectMySQL, s.GetDSN(ctx))
	s.Require().NoError(err)
	defer db.Close()

	columns := []string{"id", "full_name", "amount", "birth", "created", "flag"}
	columnTypes, err := ColumnTypes(ctx, db, DialectMySQL, "sink", columns)
	s.Require().NoError(err)
	insert, err := InsertQuery(DialectMySQL, "sink", columns)
	s.Require().NoError(err)

	conv, err := dbrecord.New(dbrecord.Config{})
	s.Require().NoError(err)

	rows, err := db.QueryContext(ctx, "SELECT id, full_name, amount, birth, created, flag FROM source ORDER BY id")
	s.Require().NoError(err)
	cursor, err := NewRowsCursor(rows)
	s.Require().NoError(err)
	defer cursor.Close()

	stmt := NewArgsStatement(len(columns))
	var copied int
	for {
		ok, err := cursor.Next()
		s.Require().NoError(err)
		if !ok {
			break
		}
		rec, read, err := conv.ReadRow(cursor)
		s.Require().NoError(err)
		s.Positive(read)

		written, err := conv.WriteRow(stmt, rec, columnTypes)
		s.Require().NoError(err)
		s.Positive(written)
		_, err = db.ExecContext(ctx, insert, stmt.Args()...)
		s.Require().NoError(err)
		stmt.Reset()
		copied++
	}
	s.Equal(2, copied)

	var (
		name    *string
		amount  string
		created time.Time
	)
	err = db.QueryRowContext(ctx, "SELECT full_name, amount, created FROM sink WHERE id = 1").
		Scan(&name, &amount, &created)
	s.Require().NoError(err)
	s.Require().NotNil(name)
	s.Equal("Ada", *name)
	s.True(decimal.RequireFromString("10.50").Equal(decimal.RequireFromString(amount)))
	s.Equal(time.Date(2024, 3, 5, 10, 30, 0, 123456000, time.UTC), created.UTC())

	err = db.QueryRowContext(ctx, "SELECT full_name FROM sink WHERE id = 2").Scan(&name)
	s.Require().NoError(err)
	s.Nil(name)
}

func TestMySQLRoundTrip(t *testing.T) {
	suite.Run(t, new(mysqlRoundTripSuite))
}
