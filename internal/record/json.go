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

package record

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/sjson"

	"github.com/greenmaskio/dbrecord/internal/schema"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.999999Z07:00"
)

// MarshalJSON - renders the record as a JSON object keyed by field name. Dates, times and timestamps are
// rendered as ISO-8601 strings, decimals as strings with the field scale and bytes as base64.
func (r *Record) MarshalJSON() ([]byte, error) {
	doc := "{}"
	for i, f := range r.schema.Fields {
		v, err := jsonValue(r.values[i], f.Schema.NonNullable())
		if err != nil {
			return nil, fmt.Errorf("field \"%s\": %w", f.Name, err)
		}
		if doc, err = sjson.Set(doc, escapePath(f.Name), v); err != nil {
			return nil, fmt.Errorf("field \"%s\": %w", f.Name, err)
		}
	}
	return []byte(doc), nil
}

func jsonValue(v any, fs *schema.Schema) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch fs.LogicalType {
	case schema.LogicalTypeDate:
		return v.(time.Time).Format(dateLayout), nil
	case schema.LogicalTypeTimeMillis, schema.LogicalTypeTimeMicros:
		return FormatTime(v.(time.Duration)), nil
	case schema.LogicalTypeTimestampMillis, schema.LogicalTypeTimestampMicros:
		return v.(time.Time).Format(timestampLayout), nil
	case schema.LogicalTypeDecimal:
		return v.(decimal.Decimal).StringFixed(int32(fs.Scale)), nil
	}
	switch vv := v.(type) {
	case float32:
		if math.IsNaN(float64(vv)) || math.IsInf(float64(vv), 0) {
			return fmt.Sprint(vv), nil
		}
	case float64:
		if math.IsNaN(vv) || math.IsInf(vv, 0) {
			return fmt.Sprint(vv), nil
		}
	}
	return v, nil
}

// FormatTime - renders a duration since midnight as HH:MM:SS[.ffffff].
func FormatTime(d time.Duration) string {
	t := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC).Add(d)
	return t.Format("15:04:05.999999")
}

var pathReplacer = strings.NewReplacer(
	`\`, `\\`,
	".", `\.`,
	"*", `\*`,
	"?", `\?`,
	"|", `\|`,
	"#", `\#`,
	"@", `\@`,
	":", `\:`,
)

func escapePath(name string) string {
	return pathReplacer.Replace(name)
}
