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

package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidDateTime = errors.New("invalid ISO-8601 local date-time")

const (
	dateTimeLayout        = "2006-01-02T15:04:05"
	dateTimeMinutesLayout = "2006-01-02T15:04"
	maxFractionDigits     = 9
)

// ParseDateTime - parses an ISO-8601 local date-time (yyyy-MM-ddTHH:mm[:ss[.fffffffff]]).
// Zone offsets are rejected. The result is returned in UTC.
func ParseDateTime(s string) (time.Time, error) {
	// yyyy-MM-ddTHH:mm is the shortest accepted form
	if len(s) < len(dateTimeMinutesLayout) || s[10] != 'T' || s[13] != ':' {
		return time.Time{}, fmt.Errorf("%w: \"%s\"", ErrInvalidDateTime, s)
	}
	layout := dateTimeMinutesLayout
	if len(s) > len(dateTimeMinutesLayout) {
		layout = dateTimeLayout
		if len(s) < len(dateTimeLayout) || s[16] != ':' {
			return time.Time{}, fmt.Errorf("%w: \"%s\"", ErrInvalidDateTime, s)
		}
		if frac := s[len(dateTimeLayout):]; frac != "" {
			digits := strings.TrimPrefix(frac, ".")
			if digits == frac || digits == "" || len(digits) > maxFractionDigits {
				return time.Time{}, fmt.Errorf("%w: \"%s\"", ErrInvalidDateTime, s)
			}
		}
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: \"%s\": %w", ErrInvalidDateTime, s, err)
	}
	return t, nil
}
