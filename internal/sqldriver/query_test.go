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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertQuery(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		want    string
	}{
		{
			name:    "postgres",
			dialect: DialectPostgres,
			want:    `INSERT INTO users ("id", "name") VALUES ($1, $2)`,
		},
		{
			name:    "mysql",
			dialect: DialectMySQL,
			want:    "INSERT INTO users (`id`, `name`) VALUES (?, ?)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InsertQuery(tt.dialect, "users", []string{"id", "name"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertQuery_Errors(t *testing.T) {
	_, err := InsertQuery(Dialect("oracle"), "users", []string{"id"})
	require.ErrorIs(t, err, ErrUnknownDialect)
	_, err = InsertQuery(DialectPostgres, "users", nil)
	require.Error(t, err)
}

func TestTypesQuery(t *testing.T) {
	got, err := typesQuery(DialectPostgres, "users", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id" FROM users WHERE 1 = 0`, got)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("mysql")
	require.NoError(t, err)
	assert.Equal(t, DialectMySQL, d)
	_, err = ParseDialect("sqlite")
	require.ErrorIs(t, err, ErrUnknownDialect)
}
