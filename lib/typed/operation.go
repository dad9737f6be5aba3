package typed

import (
	"bytes"
	"fmt"

	"github.com/ValentinKolb/tKV/lib/store"
)

// OpKind is the kind of a deferred operation
type OpKind uint8

const (
	// OpSave writes the referenced value
	OpSave OpKind = iota + 1
	// OpLoad reads a value
	OpLoad
)

func (k OpKind) String() string {
	switch k {
	case OpSave:
		return "save"
	case OpLoad:
		return "load"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// OpState is the lifecycle state of an operation
type OpState uint8

const (
	// StateConstructed means the operation was built but not executed yet
	StateConstructed OpState = iota
	// StateExecuted means the operation was executed successfully
	StateExecuted
	// StateFailed means the execution of the operation returned an error
	StateFailed
)

func (s OpState) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateExecuted:
		return "executed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("OpState(%d)", uint8(s))
	}
}

// Operation is a save or load of a T stored for one identifier that is built now
// and executed later. Building it never touches a store, executing it performs
// exactly one get or set. An operation executes at most once.
// Operations are not safe for concurrent use.
type Operation[T any] struct {
	catalog *Catalog
	kind    OpKind
	state   OpState
	id      []byte
	value   *T
}

// SaveFor builds an operation that saves v for id.
// The operation keeps the pointer, changes to *v before execution are written.
func SaveFor[T any](c *Catalog, v *T, id Identifier) *Operation[T] {
	return &Operation[T]{
		catalog: c,
		kind:    OpSave,
		id:      bytes.Clone(id.Bytes()),
		value:   v,
	}
}

// LoadFor builds an operation that loads the T stored for id
func LoadFor[T any](c *Catalog, id Identifier) *Operation[T] {
	return &Operation[T]{
		catalog: c,
		kind:    OpLoad,
		id:      bytes.Clone(id.Bytes()),
	}
}

// Kind returns the kind of the operation
func (op *Operation[T]) Kind() OpKind {
	return op.kind
}

// State returns the lifecycle state of the operation
func (op *Operation[T]) State() OpState {
	return op.state
}

// DynamicKey returns the identifier of the operation
func (op *Operation[T]) DynamicKey() []byte {
	return op.id
}

// AsTarget returns the value a save operation writes (nil for load operations)
func (op *Operation[T]) AsTarget() *T {
	return op.value
}

func (op *Operation[T]) String() string {
	return fmt.Sprintf("%s %s for %q (%s)", op.kind, typeName[T](), op.id, op.state)
}

// ExecuteSave executes a save operation against s
func (op *Operation[T]) ExecuteSave(s store.Storage) error {
	if err := op.check(OpSave); err != nil {
		return err
	}
	return op.finish(DynamicSaveAs[T](op.catalog, s, op))
}

// ExecuteLoad executes a load operation against s
func (op *Operation[T]) ExecuteLoad(s store.ReadonlyStorage) (T, error) {
	if err := op.check(OpLoad); err != nil {
		var zero T
		return zero, err
	}
	v, err := DynamicLoad[T](op.catalog, s, op)
	return v, op.finish(err)
}

// Execute executes op against s. For a save operation the saved value is returned.
func Execute[T any](op *Operation[T], s store.Storage) (T, error) {
	switch op.kind {
	case OpSave:
		if err := op.ExecuteSave(s); err != nil {
			var zero T
			return zero, err
		}
		return *op.value, nil
	case OpLoad:
		return op.ExecuteLoad(s)
	default:
		var zero T
		return zero, NewError(ErrCInvalidOperation, fmt.Sprintf("unknown operation kind %s", op.kind))
	}
}

// check returns an error if op cannot be executed as kind
func (op *Operation[T]) check(kind OpKind) error {
	if op.kind != kind {
		return &Error{
			Code:     ErrCInvalidOperation,
			Key:      displayKey(op.id),
			TypeName: typeName[T](),
			Msg:      fmt.Sprintf("cannot execute %s operation as %s", op.kind, kind),
		}
	}
	if op.state != StateConstructed {
		return &Error{
			Code:     ErrCInvalidOperation,
			Key:      displayKey(op.id),
			TypeName: typeName[T](),
			Msg:      fmt.Sprintf("%s operation was already %s", op.kind, op.state),
		}
	}
	return nil
}

func (op *Operation[T]) finish(err error) error {
	if err != nil {
		op.state = StateFailed
		return err
	}
	op.state = StateExecuted
	return nil
}
