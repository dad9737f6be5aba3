// Package typed implements typed persistence over an opaque byte key/value store.
// Go values are encoded with a codec and saved under either a fixed key (one slot per
// type) or a key derived from an identifier (one slot per type and identifier).
//
// Capabilities are declared in a Catalog:
//
//	c := typed.NewCatalog()
//	typed.MustRegisterStatic[Config](c, []byte("config"))
//	typed.MustRegisterDynamic[Reminder](c, "reminder")
//
// The primitives then work on any store.Storage:
//
//	err := typed.StaticSave(c, s, &Config{MaxSize: 20})
//	cfg, err := typed.StaticLoad[Config](c, s)
//	err = typed.Update(c, s, func(st *State) { st.Count++ })
//
// Values stored per identifier can be read and written directly (DynamicSave, DynamicLoad)
// or through an Operation, which is built without a store and executed later:
//
//	op := typed.SaveFor(c, &reminder, sender)
//	...
//	err := op.ExecuteSave(s)
//
// Key Layout:
//
// By default every key is tagged so that static and dynamic keys can never collide:
// static keys are written as 's' + key, dynamic keys as 'd' + len(namespace) + namespace + id.
// WithRawKeys disables the tagging: static keys are the registered constant and dynamic
// keys the bare identifier bytes.
//
// Errors:
//
// All errors produced here are *Error values with an ErrCode (see the Is... predicates).
// Errors returned by the store itself are passed through unchanged.
//
// Concurrency:
//
// The catalog is safe for concurrent use. The primitives hold no locks, Update and UpdateFor
// are a load followed by a save and rely on the caller to prevent interleaving writes.
package typed
