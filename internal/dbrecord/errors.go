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

import (
	"errors"

	"github.com/greenmaskio/dbrecord/internal/record"
)

var (
	// ErrConfiguration - the converter or the pipeline is misconfigured. Fatal for the whole run.
	ErrConfiguration = errors.New("configuration error")
	// ErrUnexpectedFormat - a value does not match the format its field requires.
	ErrUnexpectedFormat = errors.New("unexpected format")
	// ErrNumericOverflow - a numeric value cannot be represented exactly by the field type.
	ErrNumericOverflow = errors.New("numeric overflow")
	// ErrUnsupportedType - the combination of the field type and the value shape is not supported.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrNullValue - null value in a non-nullable field.
	ErrNullValue = record.ErrNullValue
)
