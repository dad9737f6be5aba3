package codec

import (
	"encoding"
	"fmt"
)

// NewBinary creates a new codec for types that bring their own binary format
// by implementing encoding.BinaryMarshaler and encoding.BinaryUnmarshaler
func NewBinary() ICodec {
	return &binaryCodecImpl{}
}

// binaryCodecImpl implements the ICodec interface by delegating to the value
type binaryCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (b binaryCodecImpl) Encode(v any) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%T does not implement encoding.BinaryMarshaler", v)
	}
	return m.MarshalBinary()
}

func (b binaryCodecImpl) Decode(data []byte, v any) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("%T does not implement encoding.BinaryUnmarshaler", v)
	}
	return u.UnmarshalBinary(data)
}

func (b binaryCodecImpl) Name() string {
	return "binary"
}
