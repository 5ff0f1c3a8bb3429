package tree

import (
	"sync/atomic"

	"github.com/idilsaglam/treedit/internal/model"
)

// IDSource hands out node ids. Every value must be non-zero and unique for
// the lifetime of the process.
type IDSource interface {
	Next() model.ID
}

// Counter is an IDSource counting up from 1.
type Counter struct {
	last atomic.Uint64
}

func NewCounter() *Counter { return &Counter{} }

func (c *Counter) Next() model.ID { return model.ID(c.last.Add(1)) }
