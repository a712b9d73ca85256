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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
log:
  level: debug
  format: json
converter:
  override_schema: '{"type":"record","name":"r","fields":[{"name":"id","type":"long"}]}'
  pattern_to_replace: "-"
  replace_with: "_"
source:
  driver: mysql
  dsn: "user:pass@tcp(localhost:3306)/db"
  query: "SELECT id FROM users"
sink:
  table: users_copy
  columns: [id, full_name]
export:
  format: binary
  gzip: true
  timeout: 1d12h
validate:
  required_fields:
    - id
  sample_rows: 10
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_File(t *testing.T) {
	cfg, err := Load(viper.New(), writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, Log{Level: "debug", Format: "json"}, cfg.Log)
	assert.Equal(t, "-", cfg.Converter.PatternToReplace)
	assert.Equal(t, "_", cfg.Converter.ReplaceWith)
	assert.Contains(t, cfg.Converter.OverrideSchema, `"name":"r"`)
	assert.Equal(t, Source{
		Driver: "mysql",
		DSN:    "user:pass@tcp(localhost:3306)/db",
		Query:  "SELECT id FROM users",
	}, cfg.Source)
	assert.Equal(t, Sink{
		Driver:  "postgres",
		Table:   "users_copy",
		Columns: []string{"id", "full_name"},
	}, cfg.Sink)
	assert.Equal(t, Export{
		Path:    defaultExportPath,
		Format:  ExportFormatBinary,
		Gzip:    true,
		Timeout: 36 * time.Hour,
	}, cfg.Export)
	assert.Equal(t, []string{"id"}, cfg.Validate.RequiredFields)
	assert.Equal(t, 10, cfg.Validate.SampleRows)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SINK_COLUMNS", `["a","b"]`)
	t.Setenv("EXPORT_TIMEOUT", "1w")
	t.Setenv("SOURCE_QUERY", "SELECT 1")

	cfg, err := Load(viper.New(), writeConfig(t, testConfig))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, []string{"a", "b"}, cfg.Sink.Columns)
	assert.Equal(t, 7*24*time.Hour, cfg.Export.Timeout)
	assert.Equal(t, "SELECT 1", cfg.Source.Query)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	_, err = Load(viper.New(), writeConfig(t, "export:\n  timeout: forever\n"))
	require.Error(t, err)
}

func TestStringToSliceWithBracketHookFunc(t *testing.T) {
	v := viper.New()
	t.Setenv("SINK_COLUMNS", "a,b,c")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Sink.Columns)
}
