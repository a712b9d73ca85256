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

package main

import (
	"errors"
	"os"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/dbrecord/internal/cmd"
	"github.com/greenmaskio/dbrecord/internal/cmdrun"
)

var (
	sourceFlags = []cmd.Flag{
		{
			Name:       "source-driver",
			Usage:      "Source database driver [postgres|mysql]",
			ConfigPath: "source.driver",
			Default:    "postgres",
		},
		{
			Name:       "source-dsn",
			Usage:      "Source database connection string",
			ConfigPath: "source.dsn",
			Default:    "",
		},
		{
			Name:       "query",
			Shorthand:  "q",
			Usage:      "Query producing the rows to convert",
			ConfigPath: "source.query",
			Default:    "",
		},
		{
			Name:       "override-schema",
			Usage:      "JSON record schema replacing the schema inferred from the result set",
			ConfigPath: "converter.override_schema",
			Default:    "",
		},
		{
			Name:       "pattern-to-replace",
			Usage:      "Regular expression replaced in every column name",
			ConfigPath: "converter.pattern_to_replace",
			Default:    "",
		},
		{
			Name:       "replace-with",
			Usage:      "Replacement for --pattern-to-replace matches",
			ConfigPath: "converter.replace_with",
			Default:    "",
		},
	}

	exportCmd = cmd.MustCommand(viper.GetViper(), &cobra.Command{
		Use:   "export",
		Short: "Convert the source query rows and write them into a file",
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmdrun.RunExport(cmd.Context(), rootCmd.MustGetConfig()); err != nil {
				log.Fatal().Err(err).Msg("export failed")
			}
		},
	}, slices.Concat(sourceFlags, []cmd.Flag{
		{
			Name:       "output",
			Shorthand:  "o",
			Usage:      "Output file path",
			ConfigPath: "export.path",
			Default:    "records.jsonl",
		},
		{
			Name:       "format",
			Usage:      "Output format [json|binary]",
			ConfigPath: "export.format",
			Default:    "json",
		},
		{
			Name:       "gzip",
			Usage:      "Compress the output with gzip",
			ConfigPath: "export.gzip",
			Default:    false,
			Type:       cmd.FlagTypeBool,
		},
		{
			Name:       "timeout",
			Usage:      "Export timeout, days and weeks are accepted (1w2d3h)",
			ConfigPath: "export.timeout",
			Default:    "24h",
		},
	})...)

	copyCmd = cmd.MustCommand(viper.GetViper(), &cobra.Command{
		Use:   "copy",
		Short: "Convert the source query rows and insert them into the sink table",
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmdrun.RunCopy(cmd.Context(), rootCmd.MustGetConfig()); err != nil {
				log.Fatal().Err(err).Msg("copy failed")
			}
		},
	}, slices.Concat(sourceFlags, []cmd.Flag{
		{
			Name:       "sink-driver",
			Usage:      "Sink database driver [postgres|mysql]",
			ConfigPath: "sink.driver",
			Default:    "postgres",
		},
		{
			Name:       "sink-dsn",
			Usage:      "Sink database connection string",
			ConfigPath: "sink.dsn",
			Default:    "",
		},
		{
			Name:       "table",
			Shorthand:  "t",
			Usage:      "Sink table",
			ConfigPath: "sink.table",
			Default:    "",
		},
		{
			Name:       "columns",
			Usage:      "Sink columns matched to the record fields by position, the field names by default",
			ConfigPath: "sink.columns",
			Default:    []string{},
			Type:       cmd.FlagTypeStringSlice,
		},
	})...)

	validateCmd = cmd.MustCommand(viper.GetViper(), &cobra.Command{
		Use:   "validate",
		Short: "Validate the output schema against the input schema and print the warnings",
		Run: func(cmd *cobra.Command, args []string) {
			err := cmdrun.RunValidate(cmd.Context(), rootCmd.MustGetConfig(), os.Stdout)
			if errors.Is(err, cmdrun.ErrValidationFailed) {
				os.Exit(1)
			}
			if err != nil {
				log.Fatal().Err(err).Msg("validation failed")
			}
		},
	}, slices.Concat(sourceFlags, []cmd.Flag{
		{
			Name:       "input-schema",
			Usage:      "JSON input record schema, resolved from the source query when empty",
			ConfigPath: "validate.input_schema",
			Default:    "",
		},
		{
			Name:       "output-schema",
			Usage:      "JSON output record schema",
			ConfigPath: "validate.output_schema",
			Default:    "",
		},
		{
			Name:       "required-fields",
			Usage:      "Fields that must be present in the output schema",
			ConfigPath: "validate.required_fields",
			Default:    []string{},
			Type:       cmd.FlagTypeStringSlice,
		},
		{
			Name:       "sample-rows",
			Usage:      "Number of source rows checked against the output schema datetime fields",
			ConfigPath: "validate.sample_rows",
			Default:    0,
			Type:       cmd.FlagTypeInt,
		},
	})...)

	showConfigCmd = cmd.MustCommand(viper.GetViper(), &cobra.Command{
		Use:   "show-config",
		Short: "Print the effective config",
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmdrun.ShowConfig(rootCmd.MustGetConfig(), os.Stdout); err != nil {
				log.Fatal().Err(err).Msg("")
			}
		},
	})
)
