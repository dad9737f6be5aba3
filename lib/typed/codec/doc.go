// Package codec provides the value encodings of the typed layer. It defines a common
// interface and multiple implementations for turning Go values into the opaque byte
// blobs stored under a key and back.
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy.
//
//   - msgpackCodecImpl: The default. Compact msgpack encoding (hashicorp/go-msgpack)
//     that does not embed a schema; structs are written as maps of field names.
//
//   - gobCodecImpl: Go's gob encoding. Self-describing, so payloads are larger, but
//     it handles every exported Go type without tags.
//
//   - jsonCodecImpl: JSON encoding, useful for debugging or when other tools
//     read the store directly.
//
//   - binaryCodecImpl: Delegates to encoding.BinaryMarshaler / BinaryUnmarshaler
//     for types with a hand-written format.
//
// Decoding is strict where the format allows it: msgpack and json fail on field names
// the target struct does not have, gob fails when no field matches. Stored payloads
// carry no type tag. Changing the codec of an existing store makes
// the old values unreadable (decode errors), there is no migration.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package codec
