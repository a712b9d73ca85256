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

import "time"

// ConversionStat - totals of a conversion run.
type ConversionStat struct {
	Rows         int64
	BytesRead    int64
	BytesWritten int64
	Duration     time.Duration
}

func (s *ConversionStat) AddRead(n int64) {
	s.Rows++
	s.BytesRead += n
}

func (s *ConversionStat) AddWritten(n int64) {
	s.BytesWritten += n
}
