package typeinfo

import (
	"fmt"

	"github.com/google/uuid"
)

// Instance is an opaque handle to a constructed value. The holder owns it;
// the engine keeps no reference once a call returns.
type Instance struct {
	id     uuid.UUID
	typeID TypeID
	value  any
}

func newInstance(typeID TypeID, value any) *Instance {
	return &Instance{id: uuid.New(), typeID: typeID, value: value}
}

// ID returns a random identifier distinguishing this handle in logs.
func (i *Instance) ID() uuid.UUID { return i.id }

// Type returns the TypeID the instance was constructed or wrapped as.
func (i *Instance) Type() TypeID { return i.typeID }

// Value returns the underlying Go value.
func (i *Instance) Value() any { return i.value }

// String implements fmt.Stringer.
func (i *Instance) String() string {
	return fmt.Sprintf("%s#%s", i.typeID, i.id)
}
