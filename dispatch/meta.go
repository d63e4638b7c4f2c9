// Package dispatch implements per-call-site binding caches over swappable
// per-type dispatch tables. Call sites live in a multi-threaded invocation
// environment: bindings are published through an atomic slot, and the worst
// cost of any race is a redundant re-resolution.
package dispatch

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// CallType selects the resolution strategy at a call site.
type CallType int

const (
	CallMethod CallType = iota
	CallInit
	CallGetProperty
	CallSetProperty
	CallCast
)

var callSiteNames = map[CallType]string{
	CallMethod:      "invoke",
	CallInit:        "init",
	CallGetProperty: "getProperty",
	CallSetProperty: "setProperty",
	CallCast:        "cast",
}

// CallSiteName returns the wire name of the call type.
func (t CallType) CallSiteName() string {
	if name, ok := callSiteNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CallType(%d)", int(t))
}

func (t CallType) String() string { return t.CallSiteName() }

// FromCallSiteName maps a wire name back to its call type.
func FromCallSiteName(name string) (CallType, bool) {
	for t, n := range callSiteNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// Call-site flags. They are part of the site's static identity and steer
// invocation behavior.
const (
	SafeNavigation = 1 << iota // nil receiver yields nil instead of an error
	ThisCall                   // receiver is the enclosing instance
	DynamicObject              // receiver routes its own dispatch
	ImplicitThis               // receiver was not written at the call site
	SpreadCall                 // list arguments are flattened into the call
	UncachedCall               // resolve on every invocation, never bind
)

// Target is an executable bound at a call site.
type Target func(receiver any, args []any) (any, error)

// MetaTable is the dispatch table of one receiver type. Tables are treated
// as immutable once published; changing a type's behavior means publishing
// a replacement table, whose new identity is what invalidates bound sites.
type MetaTable struct {
	Methods     map[string]Target
	Getters     map[string]Target
	Setters     map[string]Target
	Casters     map[string]Target
	Constructor Target
}

func (m *MetaTable) lookup(callType CallType, name string) Target {
	switch callType {
	case CallMethod:
		return m.Methods[name]
	case CallInit:
		return m.Constructor
	case CallGetProperty:
		return m.Getters[name]
	case CallSetProperty:
		return m.Setters[name]
	case CallCast:
		return m.Casters[name]
	}
	return nil
}

// Registry maps receiver types to their current meta tables and carries the
// global invalidation counter. Bindings record the counter value and the
// table identity they bound against; either changing makes them stale, and
// staleness is only ever detected lazily at the next invocation.
type Registry struct {
	mu      sync.RWMutex
	tables  map[reflect.Type]*MetaTable
	version atomic.Uint64
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[reflect.Type]*MetaTable)}
}

// Table returns the current meta table for a receiver type, nil if none.
func (r *Registry) Table(t reflect.Type) *MetaTable {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables[t]
}

// SetTable publishes a new table for the type. Sites bound to the previous
// table see the identity change on their next guard check; sites for other
// types are unaffected.
func (r *Registry) SetTable(t reflect.Type, table *MetaTable) {
	r.mu.Lock()
	r.tables[t] = table
	r.mu.Unlock()
}

// Version is the current global invalidation counter.
func (r *Registry) Version() uint64 { return r.version.Load() }

// InvalidateAll bumps the counter, staling every bound site without
// touching any of them.
func (r *Registry) InvalidateAll() { r.version.Add(1) }
