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
	"github.com/stretchr/testify/mock"

	"github.com/greenmaskio/dbrecord/internal/interfaces"
	"github.com/greenmaskio/dbrecord/internal/models"
	"github.com/greenmaskio/dbrecord/internal/schema"
)

var (
	_ interfaces.ResultCursor = (*ResultCursorMock)(nil)
)

type ResultCursorMock struct {
	mock.Mock
}

func NewResultCursorMock() *ResultCursorMock {
	return &ResultCursorMock{}
}

func (c *ResultCursorMock) Columns() []models.ColumnMeta {
	args := c.Called()
	return args.Get(0).([]models.ColumnMeta)
}

func (c *ResultCursorMock) Value(column models.ColumnMeta, target *schema.Schema) (models.Value, error) {
	args := c.Called(column, target)
	if args.Error(1) != nil {
		return models.Value{}, args.Error(1)
	}
	return args.Get(0).(models.Value), nil
}
