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

package validationcollector

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/greenmaskio/dbrecord/internal/models"
)

type contextKey struct{}

var collectorKey = contextKey{}

// WithCollector adds a Collector to the context, allowing it to be retrieved later.
func WithCollector(ctx context.Context, vc *Collector) context.Context {
	return context.WithValue(ctx, collectorKey, vc)
}

// WithMeta returns a context with a child Collector that adds `pairs` to its context.
func WithMeta(ctx context.Context, pairs ...any) context.Context {
	return WithCollector(ctx, FromContext(ctx).WithMeta(pairs...))
}

// FromContext returns the Collector from the context. A context without a collector gets a fresh root
// collector, so warnings added to it are not shared with anybody.
func FromContext(ctx context.Context) *Collector {
	if vc, ok := ctx.Value(collectorKey).(*Collector); ok {
		return vc
	}
	return NewCollector()
}

// Collector gathers warnings, layering on context metadata.
// Children created with WithMeta write into the root.
type Collector struct {
	// parent - nil on the root.
	parent *Collector
	// warnings - stored only on the root.
	warnings []*models.ValidationWarning
	mu       sync.Mutex
	// contextMeta - meta added to every warning passing through this collector.
	contextMeta map[string]any
}

func NewCollector() *Collector {
	return &Collector{
		contextMeta: make(map[string]any),
	}
}

// NewCollectorWithMeta creates a root collector with the meta provided as key-value pairs.
func NewCollectorWithMeta(pairs ...any) *Collector {
	return &Collector{
		contextMeta: getMetaFromPairs(pairs...),
	}
}

func getMetaFromPairs(pairs ...any) map[string]any {
	if len(pairs)%2 != 0 {
		panic("pairs must have pairs")
	}
	meta := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("key should be a string, got %T", pairs[i]))
		}
		meta[key] = pairs[i+1]
	}
	return meta
}

// WithMeta returns a child collector that adds the key-value pairs to the inherited meta.
func (vc *Collector) WithMeta(pairs ...any) *Collector {
	meta := getMetaFromPairs(pairs...)
	merged := make(map[string]any, len(vc.contextMeta)+len(meta))
	maps.Copy(merged, vc.contextMeta)
	maps.Copy(merged, meta)
	return &Collector{
		parent:      vc.Root(),
		contextMeta: merged,
	}
}

// Add enriches the warnings with the collector meta and appends them to the root.
// Meta already set on a warning wins over the collector meta.
func (vc *Collector) Add(warnings ...*models.ValidationWarning) {
	root := vc.Root()
	for _, w := range warnings {
		for k, v := range vc.contextMeta {
			if _, ok := w.Meta[k]; !ok {
				w.AddMeta(k, v)
			}
		}
	}
	root.mu.Lock()
	defer root.mu.Unlock()
	root.warnings = append(root.warnings, warnings...)
}

// GetWarnings returns a copy of all warnings collected in the root.
func (vc *Collector) GetWarnings() models.ValidationWarnings {
	root := vc.Root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return slices.Clone(root.warnings)
}

func (vc *Collector) HasWarnings() bool {
	return vc.Len() > 0
}

// IsFatal returns true if any collected warning is fatal.
func (vc *Collector) IsFatal() bool {
	return vc.GetWarnings().IsFatal()
}

// Root walks up to the root collector.
func (vc *Collector) Root() *Collector {
	if vc.parent == nil {
		return vc
	}
	return vc.parent.Root()
}

func (vc *Collector) Len() int {
	root := vc.Root()
	root.mu.Lock()
	defer root.mu.Unlock()
	return len(root.warnings)
}

func (vc *Collector) GetMeta() map[string]any {
	return maps.Clone(vc.contextMeta)
}
