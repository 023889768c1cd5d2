package core

import (
	"fmt"
	"sync/atomic"
)

// IDGenerator hands out string identifiers "<prefix>-N" with a monotonically
// increasing N. It is safe for concurrent use.
type IDGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix}
}

// Next returns a new identifier, starting at "<prefix>-0".
func (g *IDGenerator) Next() string {
	n := g.next.Add(1) - 1
	return fmt.Sprintf("%s-%d", g.prefix, n)
}
