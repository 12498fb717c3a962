// Package typeinfo is a runtime type introspection and late-binding engine.
//
// # Overview
//
// Types are described once by a TypeDescriptor and stored in a Registry.
// Callers can then enumerate a type's constructors, methods, properties and
// tags, construct instances, read and write properties, and invoke methods by
// name without compile-time knowledge of the type.
//
// Members are bound at registration time: every constructor, method and
// property accessor carries a Go closure, so invocation is a table lookup
// followed by a direct call.
//
// # Core Structures
//
//   - TypeDescriptor: immutable description of a registered type
//   - ConstructorDescriptor: one constructor overload
//   - MethodDescriptor: one method overload, possibly a synthesized accessor
//   - PropertyDescriptor: a property with bound getter and optional setter
//   - TagRecord: a named annotation with ordered fields
//   - Instance: an opaque handle to a constructed value
//
// # Registering Types
//
// Declaratively, with bound closures:
//
//	b := typeinfo.Define[Account]("bank", "Account").
//		Public().
//		DefaultConstructor().
//		Constructor([]typeinfo.ParameterDescriptor{typeinfo.Param("owner", "string")},
//			func(args []any) (any, error) {
//				owner, err := typeinfo.Arg[string](args, 0)
//				if err != nil {
//					return nil, err
//				}
//				return &Account{Owner: owner}, nil
//			}).
//		Property("Owner", "string",
//			typeinfo.BindGetter(func(a *Account) string { return a.Owner }),
//			typeinfo.BindSetter(func(a *Account, v string) { a.Owner = v })).
//		Tag("Audited", typeinfo.Field("level", "full"))
//
//	desc, err := typeinfo.Register(b.ID(), b.Build)
//
// Or through a one-time reflection pass:
//
//	desc, err := typeinfo.RegisterIntrospected(typeinfo.Default(),
//		reflect.TypeOf(Account{}),
//		typeinfo.WithConstructor(NewAccount, "owner"))
//
// Registration is idempotent: registering a TypeID again returns the
// descriptor already installed without running the builder.
//
// # Late Binding
//
//	inst, err := typeinfo.Construct("bank.Account", "alice")
//	owner, err := typeinfo.GetProperty(inst, "Owner")
//	err = typeinfo.SetProperty(inst, "Owner", "bob")
//	result, err := typeinfo.InvokeMethod(inst, "Deposit", 100)
//
// Overloads are chosen by argument count; the first declared overload with
// a matching arity wins. Arguments are never converted: an int is not
// accepted where an int64 is declared.
//
// # Special Members
//
// Each property accessor is also exposed as a method named get_<Property> or
// set_<Property> with the Special flag set. MethodsOf(d, false) leaves them
// out.
//
// # Errors
//
// Every operation returns a *Error whose Kind can be matched with errors.Is
// against the Err* sentinels. Failures raised by member bodies, including
// panics, are wrapped as ConstructionFailed or InvocationFailed with the
// original error available through errors.Unwrap.
//
// # Concurrency
//
// The registry is safe for concurrent use. Concurrent registrations of the
// same TypeID run the builder once; every caller receives the same
// descriptor. Queries only take a read lock.
package typeinfo
