package rangectx

import (
	"sync"

	"github.com/freeeve/tscolfilter/coltype"
)

// pool recycles Ctx values (and their backing range slices) across
// short-lived contexts; filter.GetTimeRange takes one per group for its
// temporary AND-fold. The Group Merger allocates its contexts with New
// instead. Grounded on the teacher's ast/pool.go slice-pool idiom, adapted
// from pooling immutable AST nodes to pooling a mutated-in-place arena.
var pool = sync.Pool{New: func() any { return &Ctx{} }}

// Get returns a pooled, freshly Reset Ctx over typ.
func Get(typ coltype.Type, options uint32) (*Ctx, error) {
	c := pool.Get().(*Ctx)
	if err := c.Reset(typ, options); err != nil {
		pool.Put(c)
		return nil, err
	}
	return c, nil
}

// Put returns c to the pool. Callers must not use c afterward.
func Put(c *Ctx) {
	if c == nil {
		return
	}
	pool.Put(c)
}
