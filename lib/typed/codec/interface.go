package codec

import "fmt"

// ICodec is the interface for all value codecs of the typed layer.
// Round-trip must succeed for bytes produced by Encode of the same type.
// Decode must fail for bytes that cannot represent the target type (best effort per format).
type ICodec interface {
	// Encode encodes a value into a byte array
	// It returns the encoded byte array and an error if any
	Encode(v any) ([]byte, error)
	// Decode decodes a byte array into the value v points to
	// It returns an error if any
	Decode(data []byte, v any) error
	// Name returns the name of the codec (msgpack, gob, json, binary)
	Name() string
}

// ByName returns the codec for a name
func ByName(name string) (ICodec, error) {
	switch name {
	case "msgpack", "":
		return NewMsgpack(), nil
	case "gob":
		return NewGOB(), nil
	case "json":
		return NewJSON(), nil
	case "binary":
		return NewBinary(), nil
	default:
		return nil, fmt.Errorf("invalid codec %q (expected one of msgpack, gob, json, binary)", name)
	}
}
