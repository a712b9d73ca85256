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

package ioutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writeCloserMock struct {
	data           []byte
	closeCallCount int
	closeErr       error
}

func (w *writeCloserMock) Write(p []byte) (n int, err error) {
	w.data = append(w.data, p...)
	return len(p), nil
}

func (w *writeCloserMock) Close() error {
	w.closeCallCount++
	return w.closeErr
}

const testData = `{"id":1,"name":"a"}
{"id":2,"name":"b"}
`

func TestCreateFile(t *testing.T) {
	tests := []struct {
		name string
		gzip bool
	}{
		{name: "plain"},
		{name: "gzip", gzip: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out")
			w, cw, err := CreateFile(path, tt.gzip)
			require.NoError(t, err)
			_, err = w.Write([]byte(testData))
			require.NoError(t, err)
			require.NoError(t, w.Close())

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, info.Size(), cw.Count())

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			var r io.Reader = f
			if tt.gzip {
				gz, err := pgzip.NewReader(f)
				require.NoError(t, err)
				defer gz.Close()
				r = gz
			}
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, testData, string(data))
		})
	}
}

func TestCreateFile_Error(t *testing.T) {
	_, _, err := CreateFile(filepath.Join(t.TempDir(), "missing", "out"), false)
	require.Error(t, err)
}

func TestGzipWriter_Close(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		objSrc := &writeCloserMock{}
		require.NoError(t, NewGzipWriter(objSrc).Close())
		assert.Equal(t, 1, objSrc.closeCallCount)
		assert.NotEmpty(t, objSrc.data)
	})

	t.Run("Underlying Close Error", func(t *testing.T) {
		objSrc := &writeCloserMock{closeErr: errors.New("close")}
		err := NewGzipWriter(objSrc).Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error closing underlying writer")
	})
}
