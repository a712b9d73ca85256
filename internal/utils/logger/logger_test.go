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

package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		format     string
		wantCaller bool
		wantErr    error
	}{
		{name: "json info", level: "info", format: LogFormatJsonValue},
		{name: "json debug", level: "debug", format: LogFormatJsonValue, wantCaller: true},
		{name: "unknown level", level: "trace", format: LogFormatJsonValue, wantErr: errUnknownLogLevel},
		{name: "unknown format", level: "info", format: "xml", wantErr: errUnknownLogFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			l, err := newLogger(buf, tt.level, tt.format)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			l.Warn().Str("Column", "id").Msg("column renamed")
			line := buf.String()
			require.True(t, gjson.Valid(line), line)
			assert.Equal(t, "id", gjson.Get(line, "Column").String())
			assert.Equal(t, tt.wantCaller, gjson.Get(line, "caller").Exists())
			assert.Equal(t, tt.wantCaller, gjson.Get(line, "pid").Exists())
		})
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := newLogger(buf, "warn", LogFormatJsonValue)
	require.NoError(t, err)
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())
}

func TestNewLogger_Text(t *testing.T) {
	buf := new(bytes.Buffer)
	l, err := newLogger(buf, "info", LogFormatTextValue)
	require.NoError(t, err)
	l.Info().Msg("rows exported")
	assert.Contains(t, buf.String(), "rows exported")
	assert.False(t, gjson.Valid(buf.String()))
}
