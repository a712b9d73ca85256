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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/greenmaskio/dbrecord/internal/config"
	"github.com/greenmaskio/dbrecord/internal/utils/logger"
)

// Command - cobra command with flags bound to the viper config paths. Subcommands share config paths, so
// their flags are bound only when the subcommand runs.
type Command struct {
	*cobra.Command
	v     *viper.Viper
	flags []Flag
}

func MustCommand(v *viper.Viper, cobraCmd *cobra.Command, flags ...Flag) *Command {
	res, err := NewCommand(v, cobraCmd, flags...)
	if err != nil {
		panic(err)
	}
	return res
}

func NewCommand(v *viper.Viper, cobraCmd *cobra.Command, flags ...Flag) (*Command, error) {
	res := &Command{
		Command: cobraCmd,
		v:       v,
		flags:   flags,
	}
	for _, opt := range flags {
		if err := res.register(opt); err != nil {
			return nil, fmt.Errorf("register flag \"%s\": %w", opt.Name, err)
		}
	}
	return res, nil
}

func (c *Command) flagSet(flag Flag) *pflag.FlagSet {
	if flag.Persistent {
		return c.PersistentFlags()
	}
	return c.Flags()
}

func (c *Command) register(opt Flag) error {
	if err := opt.Validate(); err != nil {
		return fmt.Errorf("validate flag: %w", err)
	}
	if err := c.registerFlag(opt); err != nil {
		return err
	}
	if opt.IsRequired {
		if err := c.MarkFlagRequired(opt.Name); err != nil {
			return fmt.Errorf("mark flag as required: %w", err)
		}
	}
	return nil
}

func (c *Command) registerFlag(opt Flag) error {
	fs := c.flagSet(opt)
	switch opt.Type {
	case FlagTypeString:
		vv, ok := opt.Default.(string)
		if !ok {
			return fmt.Errorf("flag %s is not a string: %w", opt.Name, errWrongTypeProvided)
		}
		fs.StringP(opt.Name, opt.Shorthand, vv, opt.Usage)
	case FlagTypeStringSlice:
		vv, ok := opt.Default.([]string)
		if !ok {
			return fmt.Errorf("flag %s is not a []string: %w", opt.Name, errWrongTypeProvided)
		}
		fs.StringSliceP(opt.Name, opt.Shorthand, vv, opt.Usage)
	case FlagTypeInt:
		vv, ok := opt.Default.(int)
		if !ok {
			return fmt.Errorf("flag %s is not an int: %w", opt.Name, errWrongTypeProvided)
		}
		fs.IntP(opt.Name, opt.Shorthand, vv, opt.Usage)
	case FlagTypeBool:
		vv, ok := opt.Default.(bool)
		if !ok {
			return fmt.Errorf("flag %s is not a bool: %w", opt.Name, errWrongTypeProvided)
		}
		fs.BoolP(opt.Name, opt.Shorthand, vv, opt.Usage)
	default:
		return fmt.Errorf("flag type %s: %w", opt.Name, errUnknownFlagType)
	}
	return nil
}

// BindFlags - binds the flags with a config path to the viper instance.
func (c *Command) BindFlags() error {
	for _, opt := range c.flags {
		if opt.ConfigPath == "" {
			continue
		}
		if err := c.bindToConfig(opt); err != nil {
			return fmt.Errorf("bind flag: %w", err)
		}
	}
	return nil
}

func (c *Command) bindToConfig(opt Flag) error {
	flag := c.flagSet(opt).Lookup(opt.Name)
	if flag == nil {
		return fmt.Errorf("lookup flag \"%s\": %w", opt.Name, errFlagIsNotRegistered)
	}
	if err := c.v.BindPFlag(opt.ConfigPath, flag); err != nil {
		return fmt.Errorf("bind flag \"%s\": %w", opt.ConfigPath, err)
	}
	return nil
}

// RootCommand - loads the config and sets up the logger before any subcommand runs.
type RootCommand struct {
	*Command
	subcommands map[*cobra.Command]*Command
	cfgFile     string
	cfg         *config.Config
}

func MustRootCommand(v *viper.Viper, cobraCmd *cobra.Command, version string, flags ...Flag) *RootCommand {
	c := MustCommand(v, cobraCmd, flags...)
	if err := c.BindFlags(); err != nil {
		panic(err)
	}
	r := &RootCommand{
		Command:     c,
		subcommands: make(map[*cobra.Command]*Command),
	}
	r.Version = version
	r.SilenceUsage = true
	r.PersistentFlags().StringVar(&r.cfgFile, "config", "", "config file")
	r.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if sub, ok := r.subcommands[cmd]; ok {
			if err := sub.BindFlags(); err != nil {
				return err
			}
		}
		return r.initConfig()
	}
	return r
}

func (r *RootCommand) AddCommand(cmds ...*Command) *RootCommand {
	for _, c := range cmds {
		r.Command.Command.AddCommand(c.Command)
		r.subcommands[c.Command] = c
	}
	return r
}

func (r *RootCommand) initConfig() error {
	cfg, err := config.Load(r.v, r.cfgFile)
	if err != nil {
		return err
	}
	if err := logger.SetLogLevel(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}
	r.cfg = cfg
	return nil
}

// MustGetConfig - the loaded config, available once a subcommand runs.
func (r *RootCommand) MustGetConfig() *config.Config {
	if r.cfg == nil {
		panic("config is not loaded")
	}
	return r.cfg
}
