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

package dbrecord

// Config - converter options.
type Config struct {
	// OverrideSchema - JSON record schema that replaces the schema inferred from the result set.
	OverrideSchema string `mapstructure:"override_schema" yaml:"override_schema" json:"override_schema,omitempty"`
	// PatternToReplace - regular expression applied to every column name.
	PatternToReplace string `mapstructure:"pattern_to_replace" yaml:"pattern_to_replace" json:"pattern_to_replace,omitempty"`
	// ReplaceWith - replacement for PatternToReplace matches. Supports $1 style group references.
	ReplaceWith string `mapstructure:"replace_with" yaml:"replace_with" json:"replace_with,omitempty"`
}
