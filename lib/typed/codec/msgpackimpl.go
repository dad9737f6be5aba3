package codec

import (
	msgpack "github.com/hashicorp/go-msgpack/codec"
)

// NewMsgpack creates a new codec using the msgpack format.
// This is the default codec: compact and without embedded schema.
func NewMsgpack() ICodec {
	h := &msgpack.MsgpackHandle{
		RawToString: true,
		WriteExt:    true,
	}
	// a map with keys of another struct type must not decode into a zero value
	h.ErrorIfNoField = true
	return &msgpackCodecImpl{handle: h}
}

// msgpackCodecImpl implements the ICodec interface using msgpack encoding
type msgpackCodecImpl struct {
	handle *msgpack.MsgpackHandle
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (m msgpackCodecImpl) Encode(v any) ([]byte, error) {
	var b []byte
	if err := msgpack.NewEncoderBytes(&b, m.handle).Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

func (m msgpackCodecImpl) Decode(data []byte, v any) error {
	return msgpack.NewDecoderBytes(data, m.handle).Decode(v)
}

func (m msgpackCodecImpl) Name() string {
	return "msgpack"
}
