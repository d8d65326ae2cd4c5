package flexmessage

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out element ids. Each editor owns one.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random UUIDv4 ids
type UUIDGenerator struct{}

// NewID implements IDGenerator
func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}

// SequenceGenerator produces monotonic ids such as "el-1", "el-2".
// Used where ids must be predictable, e.g. tests and template seeding previews.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator creates a generator whose ids start at prefix-1
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// NewID implements IDGenerator
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next)
}
