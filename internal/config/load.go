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
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load - reads the config file when given, applies env overrides (log.level -> LOG_LEVEL) and decodes
// everything into a config prefilled with defaults.
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading from config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	cfg := NewConfig()
	if err := v.Unmarshal(cfg, decoderConfig); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	return cfg, nil
}

// bindEnvs - AutomaticEnv only sees the keys viper already knows, the rest are registered here.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"log.level", "log.format",
		"converter.override_schema", "converter.pattern_to_replace", "converter.replace_with",
		"source.driver", "source.dsn", "source.query",
		"sink.driver", "sink.dsn", "sink.table", "sink.columns",
		"export.path", "export.format", "export.gzip", "export.timeout",
		"validate.input_schema", "validate.output_schema", "validate.required_fields", "validate.sample_rows",
	} {
		// BindEnv fails only without arguments
		_ = v.BindEnv(key)
	}
}
