package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// NewJSON creates a new codec using json encoding
func NewJSON() ICodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the ICodec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (j jsonCodecImpl) Encode(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (j jsonCodecImpl) Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("json: trailing data after value")
	}
	return nil
}

func (j jsonCodecImpl) Name() string {
	return "json"
}
