package dispatch

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/tliron/commonlog"
)

// ErrNoSuchTarget reports that resolution found no executable for the call
// type and name on the receiver's type. A later call may still succeed
// after the type's table changes.
var ErrNoSuchTarget = fmt.Errorf("no matching call target")

// DynamicReceiver routes its own dispatch. Sites flagged DynamicObject
// forward to it directly, bypassing the binding cache.
type DynamicReceiver interface {
	Dispatch(callType CallType, name string, args []any) (any, error)
}

// binding is one bound target with its validity guard: the receiver type it
// was resolved for, the table identity it came from and the global version
// at bind time.
type binding struct {
	target   Target
	recvType reflect.Type
	table    *MetaTable
	version  uint64
}

// CallSite is one fixed dynamic invocation location. Unbound until first
// use; thereafter it invokes the bound target as long as the guard holds
// and rebinds otherwise. Rebinding races are benign: the slot is swapped
// atomically and every candidate binding is fully constructed before
// publication.
type CallSite struct {
	registry *Registry
	callType CallType
	name     string
	flags    int

	bound atomic.Pointer[binding]
	log   commonlog.Logger
}

func NewCallSite(registry *Registry, callType CallType, name string, flags int) *CallSite {
	return &CallSite{
		registry: registry,
		callType: callType,
		name:     name,
		flags:    flags,
		log:      commonlog.GetLogger("miru.dispatch"),
	}
}

func (s *CallSite) Name() string       { return s.name }
func (s *CallSite) CallType() CallType { return s.callType }
func (s *CallSite) Flags() int         { return s.flags }

// Invoke dispatches the call for the given receiver and arguments.
func (s *CallSite) Invoke(receiver any, args ...any) (any, error) {
	if receiver == nil {
		if s.flags&SafeNavigation != 0 {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s %q on nil receiver", ErrNoSuchTarget, s.callType, s.name)
	}
	if s.flags&SpreadCall != 0 {
		args = spread(args)
	}
	if s.flags&DynamicObject != 0 {
		if dr, ok := receiver.(DynamicReceiver); ok {
			return dr.Dispatch(s.callType, s.name, args)
		}
	}
	if s.flags&UncachedCall != 0 {
		b, err := s.resolve(receiver)
		if err != nil {
			return nil, err
		}
		return b.target(receiver, args)
	}

	recvType := reflect.TypeOf(receiver)
	b := s.bound.Load()
	if b == nil || !s.valid(b, recvType) {
		rebound, err := s.resolve(receiver)
		if err != nil {
			return nil, err
		}
		s.bound.Store(rebound)
		b = rebound
	}
	return b.target(receiver, args)
}

// valid is the guard check: same receiver type, same table identity, same
// global version as at bind time.
func (s *CallSite) valid(b *binding, recvType reflect.Type) bool {
	return b.recvType == recvType &&
		b.version == s.registry.Version() &&
		b.table == s.registry.Table(recvType)
}

func (s *CallSite) resolve(receiver any) (*binding, error) {
	recvType := reflect.TypeOf(receiver)
	version := s.registry.Version()
	table := s.registry.Table(recvType)
	if table == nil {
		return nil, fmt.Errorf("%w: %s %q on %s", ErrNoSuchTarget, s.callType, s.name, recvType)
	}
	target := table.lookup(s.callType, s.name)
	if target == nil {
		return nil, fmt.Errorf("%w: %s %q on %s", ErrNoSuchTarget, s.callType, s.name, recvType)
	}
	s.log.Debugf("bound %s %q for %s at version %d", s.callType, s.name, recvType, version)
	return &binding{target: target, recvType: recvType, table: table, version: version}, nil
}

// spread flattens list arguments into the positional argument list.
func spread(args []any) []any {
	flattened := make([]any, 0, len(args))
	for _, arg := range args {
		if list, ok := arg.([]any); ok {
			flattened = append(flattened, list...)
		} else {
			flattened = append(flattened, arg)
		}
	}
	return flattened
}
