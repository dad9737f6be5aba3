package typed

import (
	"reflect"

	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("typed")

// --------------------------------------------------------------------------
// Raw key primitives
// --------------------------------------------------------------------------

// Save encodes v with the codec of the catalog and writes it under key.
// The key is used as is, T does not need to be registered.
// If encoding fails the store is not touched. Errors of the store are returned unchanged.
func Save[T any](c *Catalog, s store.Storage, key []byte, v *T) error {
	return save(c, s, key, v)
}

// Load reads the value stored under key and decodes it into a T.
// It returns a NotFound error if nothing is stored under key.
func Load[T any](c *Catalog, s store.ReadonlyStorage, key []byte) (T, error) {
	return load[T](c, s, key, key)
}

func save[T any](c *Catalog, s store.Storage, key []byte, v *T) error {
	name := typeName[T]()
	if v == nil {
		return &Error{Code: ErrCInvalidOperation, TypeName: name, Msg: "cannot save nil " + name}
	}
	data, err := c.codec.Encode(v)
	if err != nil {
		return newSerializeErr(name, err)
	}
	log.Debugf("save %s: key=%q bytes=%d", name, key, len(data))
	return s.Set(key, data)
}

// load reads physical and reports absence with the logical key
func load[T any](c *Catalog, s store.ReadonlyStorage, physical, logical []byte) (T, error) {
	var out T
	name := typeName[T]()
	data, ok, err := s.Get(physical)
	if err != nil {
		return out, err
	}
	if !ok {
		log.Debugf("load %s: key=%q not found", name, physical)
		return out, newNotFound(logical, name)
	}
	if err := c.codec.Decode(data, &out); err != nil {
		var zero T
		return zero, newSerializeErr(name, err)
	}
	log.Debugf("load %s: key=%q bytes=%d", name, physical, len(data))
	return out, nil
}

// --------------------------------------------------------------------------
// Static primitives
// --------------------------------------------------------------------------

// StaticSave writes v under the static key registered for T
func StaticSave[T any](c *Catalog, s store.Storage, v *T) error {
	return StaticSaveAs[T](c, s, self[T]{v})
}

// StaticSaveAs writes the projection of src under the static key registered for T
func StaticSaveAs[T any](c *Catalog, s store.Storage, src AsTarget[T]) error {
	_, physical, err := c.staticKey(reflect.TypeFor[T]())
	if err != nil {
		return err
	}
	return save(c, s, physical, src.AsTarget())
}

// StaticLoad reads the value stored under the static key registered for T
func StaticLoad[T any](c *Catalog, s store.ReadonlyStorage) (T, error) {
	logical, physical, err := c.staticKey(reflect.TypeFor[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return load[T](c, s, physical, logical)
}

// Update loads the static value of T, applies fn to it and saves the result.
// If loading fails nothing is written. Update does not lock: the caller must make sure
// that no other write to the same key happens between the load and the save.
func Update[T any](c *Catalog, s store.Storage, fn func(*T)) error {
	v, err := StaticLoad[T](c, s)
	if err != nil {
		log.Warningf("update %s: %v", typeName[T](), err)
		return err
	}
	fn(&v)
	if err := StaticSave(c, s, &v); err != nil {
		log.Warningf("update %s: %v", typeName[T](), err)
		return err
	}
	log.Debugf("updated %s", typeName[T]())
	return nil
}

// --------------------------------------------------------------------------
// Dynamic primitives
// --------------------------------------------------------------------------

// DynamicSave writes v in the namespace of T under the identifier returned by v.DynamicKey()
func DynamicSave[T any, P interface {
	*T
	DynamicKeyer
}](c *Catalog, s store.Storage, v P) error {
	return DynamicSaveAs[T](c, s, keyed[T]{self: self[T]{v}, id: v.DynamicKey()})
}

// DynamicSaveAs writes the projection of src in the namespace of T under src.DynamicKey()
func DynamicSaveAs[T any](c *Catalog, s store.Storage, src interface {
	DynamicKeyer
	AsTarget[T]
}) error {
	physical, err := c.dynamicKey(reflect.TypeFor[T](), src.DynamicKey())
	if err != nil {
		return err
	}
	return save(c, s, physical, src.AsTarget())
}

// DynamicLoad reads the value of T stored for the identifier k.DynamicKey()
func DynamicLoad[T any](c *Catalog, s store.ReadonlyStorage, k DynamicKeyer) (T, error) {
	id := k.DynamicKey()
	physical, err := c.dynamicKey(reflect.TypeFor[T](), id)
	if err != nil {
		var zero T
		return zero, err
	}
	return load[T](c, s, physical, id)
}

// UpdateFor is Update for the value of T stored for id.
// The same precondition as for Update applies.
func UpdateFor[T any](c *Catalog, s store.Storage, id Identifier, fn func(*T)) error {
	k := keyed[T]{id: id.Bytes()}
	v, err := DynamicLoad[T](c, s, k)
	if err != nil {
		log.Warningf("update %s for %q: %v", typeName[T](), k.id, err)
		return err
	}
	fn(&v)
	k.v = &v
	if err := DynamicSaveAs[T](c, s, k); err != nil {
		log.Warningf("update %s for %q: %v", typeName[T](), k.id, err)
		return err
	}
	return nil
}
