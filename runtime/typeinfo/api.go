package typeinfo

// GetRegistry returns a query API over the process-wide registry.
// This is the primary entry point for tooling that browses registered types.
//
// Example usage:
//
//	api := typeinfo.GetRegistry()
//	for _, d := range api.Types(typeinfo.TypeFilter{Namespace: "sample"}) {
//		fmt.Printf("Type: %s\n", d.ID())
//	}
func GetRegistry() *RegistryAPI {
	return &RegistryAPI{registry: Default()}
}

// NewQuery returns a query API over r.
func NewQuery(r *Registry) *RegistryAPI {
	return &RegistryAPI{registry: r}
}

// RegistryAPI answers filtered queries across all registered types.
//
// Example usage:
//
//	api := typeinfo.NewQuery(registry)
//
//	// Public types carrying a tag
//	types := api.Types(typeinfo.TypeFilter{Tag: "Serializable", PublicOnly: true})
//
//	// What does MyClass refer to, one level deep
//	refs, err := api.References("sample.MyClass", typeinfo.ReferenceOptions{Depth: 1})
type RegistryAPI struct {
	registry *Registry
}

// TypeFilter provides optional filters for type queries.
// All fields are optional - zero values mean no filtering on that field.
type TypeFilter struct {
	Namespace  string // Optional: exact namespace
	Pattern    string // Optional: wildcard pattern on the TypeID
	Tag        string // Optional: only types carrying this tag
	PublicOnly bool   // Optional: only public types
}

// Types returns the descriptors matching filter in registration order.
// Multiple filter criteria are combined with AND logic.
func (a *RegistryAPI) Types(filter TypeFilter) []*TypeDescriptor {
	var ids []TypeID
	if filter.Pattern != "" {
		ids = a.registry.QueryTypes(filter.Pattern)
	} else {
		ids = a.registry.Types()
	}

	result := make([]*TypeDescriptor, 0, len(ids))
	for _, id := range ids {
		d, err := a.registry.Describe(id)
		if err != nil {
			continue
		}
		if filter.Namespace != "" && d.namespace != filter.Namespace {
			continue
		}
		if filter.Tag != "" && !HasTag(d, filter.Tag) {
			continue
		}
		if filter.PublicOnly && !d.flags.Public {
			continue
		}
		result = append(result, d)
	}
	return result
}

// Type returns the descriptor registered under id.
func (a *RegistryAPI) Type(id TypeID) (*TypeDescriptor, error) {
	return a.registry.Describe(id)
}

// References returns the reference graph reachable from id.
//
//   - Depth: Maximum traversal depth (0 = unlimited)
//   - Reverse: If true, finds the types that refer to id
//   - Kinds: Only follow edges of these kinds
func (a *RegistryAPI) References(id TypeID, opts ReferenceOptions) (*ReferenceGraph, error) {
	return QueryReferences(a.registry, id, opts)
}

// Cycles returns the reference cycles among all registered types.
func (a *RegistryAPI) Cycles() [][]TypeID {
	return DetectCycles(a.registry)
}

// Namespaces returns the distinct namespaces in registration order.
func (a *RegistryAPI) Namespaces() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range a.registry.Descriptors() {
		if !seen[d.namespace] {
			seen[d.namespace] = true
			out = append(out, d.namespace)
		}
	}
	return out
}
