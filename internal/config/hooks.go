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
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/xhit/go-str2duration/v2"
)

// StringToDurationHookFunc - accepts the extended duration syntax with days and weeks (1w2d3h).
func StringToDurationHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Type,
		t reflect.Type,
		data any,
	) (any, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		raw := reflect.ValueOf(data).String()
		if raw == "" {
			return time.Duration(0), nil
		}
		d, err := str2duration.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("cannot parse duration \"%s\": %w", raw, err)
		}
		return d, nil
	}
}

// StringToSliceWithBracketHookFunc - decodes a JSON array given as a string, as env variables do.
// Anything that is not a JSON array is left for the next hook.
func StringToSliceWithBracketHookFunc() mapstructure.DecodeHookFunc {
	return func(
		f reflect.Kind,
		t reflect.Kind,
		data any) (any, error) {
		if f != reflect.String || t != reflect.Slice {
			return data, nil
		}

		raw := reflect.ValueOf(data).String()
		if raw == "" {
			return []string{}, nil
		}
		var slice []string
		if err := json.Unmarshal([]byte(raw), &slice); err != nil {
			return data, nil
		}
		return slice, nil
	}
}

func decoderConfig(cfg *mapstructure.DecoderConfig) {
	cfg.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		StringToDurationHookFunc(),
		StringToSliceWithBracketHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
