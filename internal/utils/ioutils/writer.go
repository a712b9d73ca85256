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
	"fmt"
	"io"
	"os"
)

// CountWriter - counts the bytes passed to the underlying writer.
type CountWriter struct {
	w     io.WriteCloser
	count int64
}

func NewCountWriter(w io.WriteCloser) *CountWriter {
	return &CountWriter{w: w}
}

func (cw *CountWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.count += int64(n)
	return n, err
}

func (cw *CountWriter) Close() error {
	return cw.w.Close()
}

func (cw *CountWriter) Count() int64 {
	return cw.count
}

// CreateFile - creates the export file. The returned writer counts the bytes that reach the file,
// compressed when gzip is set.
func CreateFile(path string, gzip bool) (io.WriteCloser, *CountWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create file \"%s\": %w", path, err)
	}
	cw := NewCountWriter(f)
	if gzip {
		return NewGzipWriter(cw), cw, nil
	}
	return cw, cw, nil
}
