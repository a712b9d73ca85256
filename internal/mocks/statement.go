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

package mocks

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/sqltypes"
)

var (
	_ interfaces.Statement = (*StatementMock)(nil)
)

type StatementMock struct {
	mock.Mock
}

func NewStatementMock() *StatementMock {
	return &StatementMock{}
}

func (s *StatementMock) SetNull(idx int, columnType sqltypes.Type) error {
	args := s.Called(idx, columnType)
	return args.Error(0)
}

func (s *StatementMock) SetString(idx int, v string) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetBoolean(idx int, v bool) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetShort(idx int, v int16) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetInt(idx int, v int32) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetLong(idx int, v int64) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetFloat(idx int, v float32) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetDouble(idx int, v float64) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetDate(idx int, v time.Time) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetTime(idx int, v time.Duration) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetTimestamp(idx int, v time.Time) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetDecimal(idx int, v decimal.Decimal) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetBytes(idx int, v []byte) error {
	args := s.Called(idx, v)
	return args.Error(0)
}

func (s *StatementMock) SetBlob(idx int, v []byte) error {
	args := s.Called(idx, v)
	return args.Error(0)
}
