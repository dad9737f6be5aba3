package typed

import (
	"bytes"
	"fmt"
	"reflect"
	"sync"

	"github.com/ValentinKolb/tKV/lib/typed/codec"
)

const (
	staticTag  byte = 's'
	dynamicTag byte = 'd'

	maxNamespaceLen = 255
)

// Option configures a Catalog
type Option func(*Catalog)

// WithCodec sets the codec used for all values of the catalog (default: msgpack)
func WithCodec(cdc codec.ICodec) Option {
	return func(c *Catalog) {
		if cdc != nil {
			c.codec = cdc
		}
	}
}

// WithRawKeys disables the key tagging of the catalog. Static keys are written as the
// registered constant and dynamic keys as the bare identifier bytes, so a static key and
// an identifier with the same bytes share one slot in the store.
func WithRawKeys() Option {
	return func(c *Catalog) {
		c.rawKeys = true
	}
}

// Catalog holds the storage capabilities of all types: which type is stored under
// which static key and which type is stored in which dynamic namespace.
// Registration is safe for concurrent use, but is meant to happen once at startup.
type Catalog struct {
	mu      sync.RWMutex
	codec   codec.ICodec
	rawKeys bool

	static     map[reflect.Type][]byte
	staticKeys map[string]reflect.Type

	dynamic    map[reflect.Type][]byte
	namespaces map[string]reflect.Type
}

// NewCatalog creates an empty catalog
func NewCatalog(opts ...Option) *Catalog {
	c := &Catalog{
		codec:      codec.NewMsgpack(),
		static:     make(map[reflect.Type][]byte),
		staticKeys: make(map[string]reflect.Type),
		dynamic:    make(map[reflect.Type][]byte),
		namespaces: make(map[string]reflect.Type),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Codec returns the codec of the catalog
func (c *Catalog) Codec() codec.ICodec {
	return c.codec
}

// RawKeys reports whether the catalog writes untagged keys
func (c *Catalog) RawKeys() bool {
	return c.rawKeys
}

// String returns a short description of the catalog
func (c *Catalog) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	layout := "namespaced"
	if c.rawKeys {
		layout = "raw"
	}
	return fmt.Sprintf("Catalog(codec=%s, keys=%s, static=%d, dynamic=%d)",
		c.codec.Name(), layout, len(c.static), len(c.dynamic))
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// RegisterStatic declares that exactly one value of type T is stored under key.
// It fails if T already has a static key or key is used by another type.
func RegisterStatic[T any](c *Catalog, key []byte) error {
	t := reflect.TypeFor[T]()
	if len(key) == 0 {
		return NewError(ErrCInvalidOperation, fmt.Sprintf("empty static key for type %s", t))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.static[t]; ok {
		return NewError(ErrCInvalidOperation,
			fmt.Sprintf("type %s is already registered with static key %q", t, existing))
	}
	if owner, ok := c.staticKeys[string(key)]; ok {
		return NewError(ErrCInvalidOperation,
			fmt.Sprintf("static key %q is already used by type %s", key, owner))
	}

	k := bytes.Clone(key)
	c.static[t] = k
	c.staticKeys[string(k)] = t
	log.Debugf("registered static key %q for %s", k, t)
	return nil
}

// MustRegisterStatic is like RegisterStatic but panics on error
func MustRegisterStatic[T any](c *Catalog, key []byte) {
	if err := RegisterStatic[T](c, key); err != nil {
		panic(err)
	}
}

// RegisterDynamic declares that values of type T are stored per identifier in namespace.
// The namespace must be 1..255 bytes long and unique across types.
func RegisterDynamic[T any](c *Catalog, namespace string) error {
	t := reflect.TypeFor[T]()
	if len(namespace) == 0 || len(namespace) > maxNamespaceLen {
		return NewError(ErrCInvalidOperation,
			fmt.Sprintf("namespace for type %s must be 1..%d bytes, got %d", t, maxNamespaceLen, len(namespace)))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.dynamic[t]; ok {
		return NewError(ErrCInvalidOperation,
			fmt.Sprintf("type %s is already registered in namespace %q", t, existing))
	}
	if owner, ok := c.namespaces[namespace]; ok {
		return NewError(ErrCInvalidOperation,
			fmt.Sprintf("namespace %q is already used by type %s", namespace, owner))
	}

	c.dynamic[t] = []byte(namespace)
	c.namespaces[namespace] = t
	log.Debugf("registered namespace %q for %s", namespace, t)
	return nil
}

// MustRegisterDynamic is like RegisterDynamic but panics on error
func MustRegisterDynamic[T any](c *Catalog, namespace string) {
	if err := RegisterDynamic[T](c, namespace); err != nil {
		panic(err)
	}
}

// --------------------------------------------------------------------------
// Physical keys
// --------------------------------------------------------------------------

// staticKey returns the registered key of t and its physical form
func (c *Catalog) staticKey(t reflect.Type) (logical, physical []byte, err error) {
	c.mu.RLock()
	key, ok := c.static[t]
	c.mu.RUnlock()
	if !ok {
		return nil, nil, newUnregistered(t.String(), "static key")
	}
	if c.rawKeys {
		return key, bytes.Clone(key), nil
	}
	physical = make([]byte, 0, 1+len(key))
	physical = append(physical, staticTag)
	physical = append(physical, key...)
	return key, physical, nil
}

// dynamicKey returns the physical key of id in the namespace of t
func (c *Catalog) dynamicKey(t reflect.Type, id []byte) ([]byte, error) {
	c.mu.RLock()
	ns, ok := c.dynamic[t]
	c.mu.RUnlock()
	if !ok {
		return nil, newUnregistered(t.String(), "dynamic namespace")
	}
	if c.rawKeys {
		return bytes.Clone(id), nil
	}
	physical := make([]byte, 0, 2+len(ns)+len(id))
	physical = append(physical, dynamicTag, byte(len(ns)))
	physical = append(physical, ns...)
	physical = append(physical, id...)
	return physical, nil
}
