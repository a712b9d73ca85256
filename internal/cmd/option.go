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
	"errors"
	"fmt"
)

var (
	errFlagNameIsEmpty        = errors.New("flag name is empty")
	errFlagDescriptionIsEmpty = errors.New("flag description is empty")
	errDefaultValueIsEmpty    = errors.New("default value is empty")
	errUnknownFlagType        = errors.New("unknown flag type")
	errWrongTypeProvided      = errors.New("wrong default value type")
	errFlagIsNotRegistered    = errors.New("flag is not registered")
)

type FlagType int

const (
	FlagTypeString FlagType = iota
	FlagTypeStringSlice
	FlagTypeInt
	FlagTypeBool
)

func (o FlagType) Validate() error {
	switch o {
	case FlagTypeString, FlagTypeStringSlice, FlagTypeInt, FlagTypeBool:
		return nil
	default:
		return fmt.Errorf("type %d is not supported: %w", o, errUnknownFlagType)
	}
}

// Flag - command line flag bound to the config path. The default must match the config default because
// an unset flag still provides its default to the config.
type Flag struct {
	Name       string
	Shorthand  string
	Usage      string
	ConfigPath string
	Default    any
	Type       FlagType
	// Persistent - the flag is inherited by the subcommands.
	Persistent bool
	IsRequired bool
}

func (o *Flag) Validate() error {
	if o.Name == "" {
		return errFlagNameIsEmpty
	}
	if o.Usage == "" {
		return errFlagDescriptionIsEmpty
	}
	if o.Default == nil {
		return errDefaultValueIsEmpty
	}
	if err := o.Type.Validate(); err != nil {
		return fmt.Errorf("validate option type: %w", err)
	}
	return nil
}
