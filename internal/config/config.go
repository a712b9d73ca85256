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
	"time"

	"github.com/greenmaskio/dbrecord/internal/dbrecord"
)

const (
	defaultExportTimeout = 24 * time.Hour
	defaultExportPath    = "records.jsonl"

	ExportFormatJSON   = "json"
	ExportFormatBinary = "binary"
)

func NewConfig() *Config {
	return &Config{
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Source: Source{
			Driver: "postgres",
		},
		Sink: Sink{
			Driver: "postgres",
		},
		Export: Export{
			Path:    defaultExportPath,
			Format:  ExportFormatJSON,
			Timeout: defaultExportTimeout,
		},
	}
}

type Config struct {
	Log       Log             `mapstructure:"log" yaml:"log" json:"log"`
	Converter dbrecord.Config `mapstructure:"converter" yaml:"converter" json:"converter"`
	Source    Source          `mapstructure:"source" yaml:"source" json:"source"`
	Sink      Sink            `mapstructure:"sink" yaml:"sink" json:"sink"`
	Export    Export          `mapstructure:"export" yaml:"export" json:"export"`
	Validate  Validate        `mapstructure:"validate" yaml:"validate" json:"validate"`
}

type Log struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
}

// Source - connection and query the rows are read from.
type Source struct {
	Driver string `mapstructure:"driver" yaml:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" yaml:"dsn" json:"dsn"`
	Query  string `mapstructure:"query" yaml:"query" json:"query"`
}

// Sink - destination table of the copy command. Columns are matched to the record fields by position.
type Sink struct {
	Driver  string   `mapstructure:"driver" yaml:"driver" json:"driver"`
	DSN     string   `mapstructure:"dsn" yaml:"dsn" json:"dsn"`
	Table   string   `mapstructure:"table" yaml:"table" json:"table"`
	Columns []string `mapstructure:"columns" yaml:"columns" json:"columns"`
}

// Export - output of the export command. Format is either json (JSON lines) or binary (serialized records).
type Export struct {
	Path    string        `mapstructure:"path" yaml:"path" json:"path"`
	Format  string        `mapstructure:"format" yaml:"format" json:"format"`
	Gzip    bool          `mapstructure:"gzip" yaml:"gzip" json:"gzip"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`
}

type Validate struct {
	InputSchema    string   `mapstructure:"input_schema" yaml:"input_schema" json:"input_schema"`
	OutputSchema   string   `mapstructure:"output_schema" yaml:"output_schema" json:"output_schema"`
	RequiredFields []string `mapstructure:"required_fields" yaml:"required_fields" json:"required_fields"`
	// SampleRows - number of source rows whose datetime values are checked against the output schema.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows" json:"sample_rows"`
}
