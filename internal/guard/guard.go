// Package guard provides the reader/writer coordination the teardown
// tree facades use to offer shared read-only access while no mutation is
// in flight (spec §5). It does not make the core tree descent concurrent
// by itself — the core stays single-threaded and allocation-free; this
// only serializes callers around it, the same way the teacher's KV store
// serializes readers and the writer with a pair of mutexes rather than
// making the B-tree itself lock-free.
package guard

import "sync"

// RWGuard coordinates shared readers against a single writer for a tree
// facade. Zero value is ready to use.
type RWGuard struct {
	mu sync.RWMutex
}

// BeginRead acquires the shared lock for a non-mutating operation
// (Contains, Find, QueryRange, Size, ...).
func (g *RWGuard) BeginRead() {
	g.mu.RLock()
}

// EndRead releases the shared lock acquired by BeginRead.
func (g *RWGuard) EndRead() {
	g.mu.RUnlock()
}

// BeginWrite acquires the exclusive lock for a mutating operation
// (Delete*, Clear, Refill, ...).
func (g *RWGuard) BeginWrite() {
	g.mu.Lock()
}

// EndWrite releases the exclusive lock acquired by BeginWrite.
func (g *RWGuard) EndWrite() {
	g.mu.Unlock()
}

// Read runs f while holding the shared lock.
func (g *RWGuard) Read(f func()) {
	g.BeginRead()
	defer g.EndRead()
	f()
}

// Write runs f while holding the exclusive lock.
func (g *RWGuard) Write(f func()) {
	g.BeginWrite()
	defer g.EndWrite()
	f()
}
