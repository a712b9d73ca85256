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

package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"slices"
)

type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
	ValidationSeverityInfo    ValidationSeverity = "info"
)

const (
	MetaKeyPropertyName     = "PropertyName"
	MetaKeyFieldName        = "FieldName"
	MetaKeyFieldType        = "FieldType"
	MetaKeyExpectedType     = "ExpectedType"
	MetaKeyCorrectiveAction = "CorrectiveAction"
	MetaKeyStage            = "Stage"
	MetaKeyError            = "Error"
	MetaKeyRowNumber        = "RowNumber"
)

type ValidationWarnings []*ValidationWarning

func (re ValidationWarnings) IsFatal() bool {
	return slices.ContainsFunc(re, func(warning *ValidationWarning) bool {
		return warning.Severity == ValidationSeverityError
	})
}

type ValidationWarning struct {
	Msg      string             `json:"msg,omitempty" yaml:"msg,omitempty"`
	Severity ValidationSeverity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Meta     map[string]any     `json:"meta,omitempty" yaml:"meta,omitempty"`
	Hash     string             `json:"hash" yaml:"hash"`
}

func NewValidationWarning() *ValidationWarning {
	return &ValidationWarning{
		Severity: ValidationSeverityWarning,
		Meta:     make(map[string]any),
	}
}

func (re *ValidationWarning) IsFatal() bool {
	return re.Severity == ValidationSeverityError
}

func (re *ValidationWarning) SetMsg(msg string) *ValidationWarning {
	re.Msg = msg
	return re
}

func (re *ValidationWarning) SetMsgf(msg string, args ...any) *ValidationWarning {
	re.Msg = fmt.Sprintf(msg, args...)
	return re
}

func (re *ValidationWarning) SetSeverity(severity ValidationSeverity) *ValidationWarning {
	re.Severity = severity
	return re
}

func (re *ValidationWarning) SetError(v error) *ValidationWarning {
	re.Meta[MetaKeyError] = v.Error()
	return re
}

// SetCorrectiveAction - hint on how the user can fix the problem.
func (re *ValidationWarning) SetCorrectiveAction(action string) *ValidationWarning {
	re.Meta[MetaKeyCorrectiveAction] = action
	return re
}

func (re *ValidationWarning) AddMeta(key string, value any) *ValidationWarning {
	re.Meta[key] = value
	return re
}

// MetaKeys - sorted meta keys.
func (re *ValidationWarning) MetaKeys() []string {
	keys := make([]string, 0, len(re.Meta))
	for key := range re.Meta {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// MakeHash - fills Hash with a stable digest of message, severity and meta.
func (re *ValidationWarning) MakeHash() {
	var meta string
	for _, key := range re.MetaKeys() {
		meta = fmt.Sprintf("%s %s=%v", meta, key, re.Meta[key])
	}

	signature := fmt.Sprintf("msg=%s severity=%s %s", re.Msg, re.Severity, meta)

	hash := md5.Sum([]byte(signature))
	re.Hash = hex.EncodeToString(hash[:])
}
