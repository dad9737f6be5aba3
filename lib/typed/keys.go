package typed

import (
	"reflect"
)

// DynamicKeyer is implemented by everything that knows the identifier it is stored under
type DynamicKeyer interface {
	// DynamicKey returns the identifier bytes (not the physical key)
	DynamicKey() []byte
}

// AsTarget is the projection of a value onto the type T that actually gets written
type AsTarget[T any] interface {
	AsTarget() *T
}

// Identifier is anything with a canonical byte form, e.g. ident.CanonicalAddr
type Identifier interface {
	Bytes() []byte
}

// ID is a plain byte identifier
type ID []byte

func (id ID) Bytes() []byte {
	return id
}

// StaticKey returns the physical key under which the single value of type T is stored
func StaticKey[T any](c *Catalog) ([]byte, error) {
	_, physical, err := c.staticKey(reflect.TypeFor[T]())
	return physical, err
}

// DynamicKey returns the physical key under which the value of type T for id is stored
func DynamicKey[T any](c *Catalog, id []byte) ([]byte, error) {
	return c.dynamicKey(reflect.TypeFor[T](), id)
}

// self is the projection of a value onto itself
type self[T any] struct {
	v *T
}

func (s self[T]) AsTarget() *T {
	return s.v
}

// keyed is a value together with the identifier it is stored under
type keyed[T any] struct {
	self[T]
	id []byte
}

func (k keyed[T]) DynamicKey() []byte {
	return k.id
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
