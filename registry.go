package serializer

import (
	"fmt"
	"reflect"
)

// registry maps type identifiers to plugins and claimed Go types back to
// identifiers for the encode-side lookup. It is owned by one Serializer and
// is never mutated during an in-flight serialize/deserialize pass.
type registry struct {
	byID   map[string]Plugin
	byType map[reflect.Type]string
	// Interface-typed claims cannot be keyed exactly; they are scanned in
	// registration order, first match wins.
	ifaces []ifaceBinding
}

type ifaceBinding struct {
	rt     reflect.Type
	typeID string
}

func newRegistry() *registry {
	return &registry{
		byID:   make(map[string]Plugin),
		byType: make(map[reflect.Type]string),
	}
}

// register inserts p, or replaces the previous plugin with the same type id
// when overwrite is enabled. Failure leaves the registry unchanged.
func (r *registry) register(p Plugin, overwrite bool) error {
	if !p.valid() {
		return singleIssue(CodeInvalidPlugin, "plugin must be built via NewPlugin or NewValuePlugin")
	}
	old, dup := r.byID[p.typeID]
	if dup && !overwrite {
		return Issues{{
			Code:    CodeDuplicateType,
			Message: fmt.Sprintf("plugin for type %q already registered", p.typeID),
			Params:  map[string]any{"type": p.typeID},
		}}
	}
	if dup {
		r.unbind(old)
	}
	r.byID[p.typeID] = p
	if p.goType != nil {
		if p.goType.Kind() == reflect.Interface {
			r.ifaces = append(r.ifaces, ifaceBinding{rt: p.goType, typeID: p.typeID})
		} else {
			r.byType[p.goType] = p.typeID
		}
	}
	return nil
}

// unbind drops the type claims of a plugin being replaced so the new claims
// cannot coexist with stale ones.
func (r *registry) unbind(p Plugin) {
	if p.goType == nil {
		return
	}
	if p.goType.Kind() == reflect.Interface {
		for i, b := range r.ifaces {
			if b.typeID == p.typeID {
				r.ifaces = append(r.ifaces[:i], r.ifaces[i+1:]...)
				break
			}
		}
		return
	}
	if id, ok := r.byType[p.goType]; ok && id == p.typeID {
		delete(r.byType, p.goType)
	}
}

// lookup finds a plugin by identifier. Absence is a normal outcome.
func (r *registry) lookup(typeID string) (Plugin, bool) {
	p, ok := r.byID[typeID]
	return p, ok
}

// lookupValue finds the plugin claiming v's type: exact match first, then the
// interface claims in registration order.
func (r *registry) lookupValue(v any) (Plugin, string, bool) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return Plugin{}, "", false
	}
	if id, ok := r.byType[rt]; ok {
		return r.byID[id], id, true
	}
	for _, b := range r.ifaces {
		if rt.Implements(b.rt) {
			return r.byID[b.typeID], b.typeID, true
		}
	}
	return Plugin{}, "", false
}
