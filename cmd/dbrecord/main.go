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
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenmaskio/dbrecord/internal/cmd"
)

var (
	Version string

	rootFlags = []cmd.Flag{
		{
			Name:       "log-format",
			Usage:      "Logging format [text|json]",
			ConfigPath: "log.format",
			Default:    "text",
			Persistent: true,
		},
		{
			Name: "log-level",
			Usage: fmt.Sprintf(
				"logging level [%s|%s|%s]",
				zerolog.LevelDebugValue,
				zerolog.LevelInfoValue,
				zerolog.LevelWarnValue,
			),
			ConfigPath: "log.level",
			Default:    zerolog.LevelInfoValue,
			Persistent: true,
		},
	}

	rootCmd = cmd.MustRootCommand(
		viper.GetViper(),
		&cobra.Command{
			Use:   "dbrecord",
			Short: "Convert SQL result set rows into typed schema records and back",
		},
		getVersion(Version),
		rootFlags...,
	)
)

func init() {
	rootCmd.AddCommand(exportCmd, copyCmd, validateCmd, showConfigCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("")
	}
}

func getVersion(version string) string {
	var (
		commitDate string
		commit     string
	)
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				commit = setting.Value
			}
			if setting.Key == "vcs.time" {
				commitDate = setting.Value
			}
		}
	}
	if version != "" {
		return fmt.Sprintf("%s %s %s", version, commit, commitDate)
	}
	return fmt.Sprintf("%s %s", commit, commitDate)
}
