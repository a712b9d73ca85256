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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationWarning_Builder(t *testing.T) {
	w := NewValidationWarning().
		SetSeverity(ValidationSeverityError).
		SetMsgf("Field '%s' is of unexpected type '%s'.", "tags", "array").
		SetCorrectiveAction("remove the field").
		SetError(errors.New("boom")).
		AddMeta(MetaKeyFieldName, "tags")

	assert.True(t, w.IsFatal())
	assert.Equal(t, "Field 'tags' is of unexpected type 'array'.", w.Msg)
	assert.Equal(t, []string{MetaKeyCorrectiveAction, MetaKeyError, MetaKeyFieldName}, w.MetaKeys())
	assert.Equal(t, "boom", w.Meta[MetaKeyError])
}

func TestValidationWarning_MakeHash(t *testing.T) {
	a := NewValidationWarning().SetMsg("a").AddMeta("k1", 1).AddMeta("k2", "v")
	b := NewValidationWarning().SetMsg("a").AddMeta("k2", "v").AddMeta("k1", 1)
	c := NewValidationWarning().SetMsg("a").AddMeta("k1", 2).AddMeta("k2", "v")
	a.MakeHash()
	b.MakeHash()
	c.MakeHash()
	require.NotEmpty(t, a.Hash)
	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, c.Hash)
}

func TestValidationWarnings_IsFatal(t *testing.T) {
	warns := ValidationWarnings{NewValidationWarning()}
	assert.False(t, warns.IsFatal())
	warns = append(warns, NewValidationWarning().SetSeverity(ValidationSeverityError))
	assert.True(t, warns.IsFatal())
}
