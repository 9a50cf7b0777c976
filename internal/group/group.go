// Package group provides a minimal in-memory stand-in for the group
// context and group-membership table, which live outside the engine
// proper in a full capture stack. The engine only ever
// consumes it through the Lookup oracle and the opaque Context pointer it
// hands back, so this implementation exists purely to give the evaluator
// and demo CLI something concrete to install against.
package group

import (
	"sync"
	"sync/atomic"
)

// Context is the per-group state threaded opaquely through packet.Buf's
// State.Context field. Built-in combinators that need persistent,
// cross-packet state (inc/dec's sparse counters) type-assert against
// CounterContext rather than this concrete type, so alternate context
// implementations remain possible.
type Context struct {
	id       string
	mu       sync.Mutex
	counters map[int]*atomic.Int64
}

// CounterContext is the interface built-in counter combinators consult.
// Any State.Context implementing it supports indexed sparse counters.
type CounterContext interface {
	Counter(index int) *atomic.Int64
}

// Counter returns the atomic counter at index, creating it on first use.
func (c *Context) Counter(index int) *atomic.Int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counters == nil {
		c.counters = make(map[int]*atomic.Int64)
	}
	ctr, ok := c.counters[index]
	if !ok {
		ctr = new(atomic.Int64)
		c.counters[index] = ctr
	}
	return ctr
}

// ID returns the group identifier this context belongs to.
func (c *Context) ID() string { return c.id }

// Registry is a minimal group-membership table: group id to its context and
// default class mask. The real group-membership table lives outside this
// engine's scope; Registry exists so install/run call sites in this module
// and its tests have a concrete Lookup oracle to exercise.
type Registry struct {
	mu     sync.Mutex
	groups map[string]*entry
}

type entry struct {
	ctx       *Context
	classMask uint32
}

// NewRegistry returns an empty group registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string]*entry)}
}

// Add registers a group, creating a fresh Context for it.
func (r *Registry) Add(id string, classMask uint32) *Context {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctx := &Context{id: id}
	r.groups[id] = &entry{ctx: ctx, classMask: classMask}
	return ctx
}

// Lookup resolves a group id to its context and default class mask. It
// reports false for unknown groups; the evaluator turns that into a null
// result for the packet.
func (r *Registry) Lookup(id string) (ctx *Context, classMask uint32, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.groups[id]
	if !ok {
		return nil, 0, false
	}
	return e.ctx, e.classMask, true
}
