package typeinfo

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Registry maps type identifiers to their descriptors.
// Descriptors are built once per TypeID and never change afterwards; reads
// only take the read lock and never wait on each other.
type Registry struct {
	mu       sync.RWMutex
	types    map[TypeID]*TypeDescriptor
	order    []TypeID
	byGoType map[reflect.Type]TypeID

	// Concurrent registrations of one TypeID share a single build
	builds singleflight.Group

	// Query result cache, invalidated on every registration
	cache      map[string]interface{}
	cacheMutex sync.RWMutex

	autoIntrospect atomic.Bool
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithAutoIntrospect controls whether DescribeFromInstance introspects and
// registers Go types it has not seen before. Enabled by default.
func WithAutoIntrospect(enabled bool) RegistryOption {
	return func(r *Registry) { r.autoIntrospect.Store(enabled) }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		types:    make(map[TypeID]*TypeDescriptor),
		byGoType: make(map[reflect.Type]TypeID),
		cache:    make(map[string]interface{}),
	}
	r.autoIntrospect.Store(true)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process-wide registry, created on first use
var (
	globalRegistry  atomic.Pointer[Registry]
	globalInitMutex sync.Mutex
)

// Default returns the process-wide registry.
// Uses double-check locking: the fast path is a single atomic load.
func Default() *Registry {
	if r := globalRegistry.Load(); r != nil {
		return r
	}
	globalInitMutex.Lock()
	defer globalInitMutex.Unlock()
	if globalRegistry.Load() == nil {
		globalRegistry.Store(NewRegistry())
	}
	return globalRegistry.Load()
}

// Register registers a type in the process-wide registry.
func Register(id TypeID, build Builder) (*TypeDescriptor, error) {
	return Default().Register(id, build)
}

// Describe looks a type up in the process-wide registry.
func Describe(id TypeID) (*TypeDescriptor, error) {
	return Default().Describe(id)
}

// DescribeFromInstance resolves a live value against the process-wide registry.
func DescribeFromInstance(value any) (*TypeDescriptor, error) {
	return Default().DescribeFromInstance(value)
}

// Reset clears the process-wide registry (used for testing).
func Reset() {
	Default().Reset()
}

// Register builds and stores the descriptor for id unless one is already
// installed, in which case the existing descriptor is returned and build is
// not called. Concurrent callers for the same id observe a single build.
func (r *Registry) Register(id TypeID, build Builder) (*TypeDescriptor, error) {
	if d, ok := r.lookup(id); ok {
		return d, nil
	}
	if build == nil {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: id, Member: "nil builder"}
	}

	v, err, _ := r.builds.Do(string(id), func() (interface{}, error) {
		// A build for id may have completed since the fast path
		if d, ok := r.lookup(id); ok {
			return d, nil
		}
		d, err := runBuilder(id, build)
		if err != nil {
			return nil, err
		}
		return r.install(d), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TypeDescriptor), nil
}

// runBuilder calls build, converting panics and inconsistent results into errors.
func runBuilder(id TypeID, build Builder) (d *TypeDescriptor, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			d = nil
			err = &Error{Kind: KindInvalidDescriptor, Type: id, Member: "builder panicked", Err: panicError(rec)}
		}
	}()

	d, err = build()
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: id, Member: "builder returned no descriptor"}
	}
	if d.id != id {
		return nil, &Error{Kind: KindInvalidDescriptor, Type: id, Member: fmt.Sprintf("builder produced %s", d.id)}
	}
	return d, nil
}

// install stores d unless another descriptor won the race. First writer wins.
func (r *Registry) install(d *TypeDescriptor) *TypeDescriptor {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.types[d.id]; ok {
		return existing
	}
	r.types[d.id] = d
	r.order = append(r.order, d.id)
	if d.goType != nil {
		if _, taken := r.byGoType[d.goType]; !taken {
			r.byGoType[d.goType] = d.id
		}
	}
	r.clearCache()
	return d
}

func (r *Registry) lookup(id TypeID) (*TypeDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[id]
	return d, ok
}

// Describe returns the descriptor registered under id.
func (r *Registry) Describe(id TypeID) (*TypeDescriptor, error) {
	if d, ok := r.lookup(id); ok {
		return d, nil
	}
	return nil, &Error{Kind: KindNotFound, Type: id}
}

// DescribeFromInstance derives the TypeID from the runtime type of value
// (an *Instance or any Go value; pointers are followed) and describes it.
// Unknown named Go types are introspected and registered when
// auto-introspection is enabled.
func (r *Registry) DescribeFromInstance(value any) (*TypeDescriptor, error) {
	if inst, ok := value.(*Instance); ok {
		if inst == nil {
			return nil, &Error{Kind: KindNotFound, Type: "<nil>"}
		}
		return r.Describe(inst.typeID)
	}

	t := indirectType(reflect.TypeOf(value))
	if t == nil {
		return nil, &Error{Kind: KindNotFound, Type: "<nil>"}
	}
	if id, ok := r.lookupGoType(t); ok {
		return r.Describe(id)
	}
	if !r.autoIntrospect.Load() || t.Name() == "" {
		return nil, &Error{Kind: KindNotFound, Type: TypeID(t.String())}
	}
	return RegisterIntrospected(r, t)
}

// LookupGoType returns the TypeID linked to a Go type, if any.
func (r *Registry) LookupGoType(t reflect.Type) (TypeID, bool) {
	return r.lookupGoType(indirectType(t))
}

func (r *Registry) lookupGoType(t reflect.Type) (TypeID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byGoType[t]
	return id, ok
}

// Wrap returns an Instance handle for a caller-owned value. Non-pointer
// struct values are copied into a new pointer so setters have something to
// write to.
func (r *Registry) Wrap(value any) (*Instance, error) {
	if inst, ok := value.(*Instance); ok {
		if inst == nil {
			return nil, &Error{Kind: KindNotFound, Type: "<nil>"}
		}
		return inst, nil
	}
	d, err := r.DescribeFromInstance(value)
	if err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer && rv.Kind() == reflect.Struct {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		value = p.Interface()
	}
	return newInstance(d.id, value), nil
}

// Types returns all registered TypeIDs in registration order.
func (r *Registry) Types() []TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TypeID, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Descriptors returns every registered descriptor in registration order.
func (r *Registry) Descriptors() []*TypeDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*TypeDescriptor, len(r.order))
	for i, id := range r.order {
		out[i] = r.types[id]
	}
	return out
}

// QueryTypes returns the TypeIDs matching a wildcard pattern, in
// registration order. "*" matches anything; a single "*" may lead, trail or
// split the pattern.
func (r *Registry) QueryTypes(pattern string) []TypeID {
	// Held across compute and store so a registration cannot slip in between
	r.mu.RLock()
	defer r.mu.RUnlock()

	cacheKey := "pattern:" + pattern
	result, ok := r.getCached(cacheKey).([]TypeID)
	if !ok {
		result = make([]TypeID, 0)
		for _, id := range r.order {
			if matchPattern(string(id), pattern) {
				result = append(result, id)
			}
		}
		r.setCached(cacheKey, result)
	}

	// Return a copy to prevent external mutation
	out := make([]TypeID, len(result))
	copy(out, result)
	return out
}

// Reset clears all registrations.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[TypeID]*TypeDescriptor)
	r.order = nil
	r.byGoType = make(map[reflect.Type]TypeID)
	r.clearCache()
}

// getCached retrieves a value from the cache
func (r *Registry) getCached(key string) interface{} {
	r.cacheMutex.RLock()
	defer r.cacheMutex.RUnlock()
	return r.cache[key]
}

// setCached stores a value in the cache
func (r *Registry) setCached(key string, value interface{}) {
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()
	r.cache[key] = value
}

func (r *Registry) clearCache() {
	r.cacheMutex.Lock()
	defer r.cacheMutex.Unlock()
	r.cache = make(map[string]interface{})
}

func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// matchPattern matches a string against a pattern with wildcards
func matchPattern(s, pattern string) bool {
	// Exact match
	if pattern == s {
		return true
	}

	// Wildcard match
	if pattern == "*" || pattern == "" {
		return true
	}

	// Prefix match (pattern ends with *)
	if strings.HasSuffix(pattern, "*") && strings.Count(pattern, "*") == 1 {
		return strings.HasPrefix(s, strings.TrimSuffix(pattern, "*"))
	}

	// Suffix match (pattern starts with *)
	if strings.HasPrefix(pattern, "*") && strings.Count(pattern, "*") == 1 {
		return strings.HasSuffix(s, strings.TrimPrefix(pattern, "*"))
	}

	// Contains match (pattern has * in the middle)
	if strings.Contains(pattern, "*") {
		parts := strings.Split(pattern, "*")
		if len(parts) == 2 {
			return len(s) >= len(parts[0])+len(parts[1]) &&
				strings.HasPrefix(s, parts[0]) && strings.HasSuffix(s, parts[1])
		}
	}

	return false
}
