package codec

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() ICodec{
	"msgpack": NewMsgpack,
	"gob":     NewGOB,
	"json":    NewJSON,
}

type testRecord struct {
	Content   []byte
	Timestamp uint64
	Name      string
	Tags      []string
	Ok        bool
}

// testValues creates a set of test values with different fields filled
func testValues() []testRecord {
	return []testRecord{
		// Only one field set
		{Timestamp: 7},

		// Binary content
		{
			Content:   []byte{0x00, 0xff, 0x10, 0x80},
			Timestamp: 1571797419,
		},

		// All fields filled
		{
			Content:   []byte("remember the milk"),
			Timestamp: 1 << 62,
			Name:      "alice",
			Tags:      []string{"home", "shopping"},
			Ok:        true,
		},
	}
}

// TestCodecRoundTrip tests that values can be encoded and decoded correctly
func TestCodecRoundTrip(t *testing.T) {
	values := testValues()

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			for i, v := range values {
				// Encode
				data, err := c.Encode(&v)
				if err != nil {
					t.Errorf("Failed to encode value %d: %v", i, err)
					continue
				}

				// Decode
				var result testRecord
				err = c.Decode(data, &result)
				if err != nil {
					t.Errorf("Failed to decode value %d: %v", i, err)
					continue
				}

				if !reflect.DeepEqual(normalize(v), normalize(result)) {
					t.Errorf("Value %d mismatch:\nExpected: %+v\nGot: %+v", i, v, result)
				}
			}
		})
	}
}

// normalize maps empty slices to nil, codecs differ in how they restore them
func normalize(r testRecord) testRecord {
	if len(r.Content) == 0 {
		r.Content = nil
	}
	if len(r.Tags) == 0 {
		r.Tags = nil
	}
	return r
}

// TestCodecDeterministic tests that encoding the same value twice yields the same bytes
func TestCodecDeterministic(t *testing.T) {
	v := testValues()[2]
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			a, err := factory().Encode(&v)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			b, err := factory().Encode(&v)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if !reflect.DeepEqual(a, b) {
				t.Errorf("Encoding is not deterministic:\n%x\n%x", a, b)
			}
		})
	}
}

// TestCodecDecodeGarbage tests that decoding invalid data fails
func TestCodecDecodeGarbage(t *testing.T) {
	tests := []struct {
		codec string
		data  []byte
	}{
		{"msgpack", []byte{0xc1}},
		{"msgpack", []byte{}},
		{"gob", []byte{}},
		{"json", []byte("{not json")},
		{"json", []byte(`"a string"`)},
	}

	for _, tt := range tests {
		t.Run(tt.codec, func(t *testing.T) {
			var result testRecord
			if err := testCodecs[tt.codec]().Decode(tt.data, &result); err == nil {
				t.Errorf("Expected decode of %x to fail", tt.data)
			}
		})
	}
}

type otherRecord struct {
	MaxSize uint64
	Owner   string
}

// TestCodecDecodeOtherType tests that bytes of another struct type are rejected
func TestCodecDecodeOtherType(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			data, err := c.Encode(&testValues()[2])
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			var result otherRecord
			if err := c.Decode(data, &result); err == nil {
				t.Errorf("Expected decode into otherRecord to fail, got %+v", result)
			}
		})
	}
}

// TestJSONTrailingData tests that the json codec rejects data after the value
func TestJSONTrailingData(t *testing.T) {
	var result testRecord
	if err := NewJSON().Decode([]byte(`{"Timestamp":1} {"Timestamp":2}`), &result); err == nil {
		t.Error("Expected decode with trailing data to fail")
	}
	if err := NewJSON().Decode([]byte(`{"Timestamp":1}`+"\n"), &result); err != nil {
		t.Errorf("Expected trailing whitespace to be accepted: %v", err)
	}
}

// TestCodecScalars tests that non struct values are supported
func TestCodecScalars(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			n := uint64(42)
			data, err := c.Encode(&n)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			var got uint64
			if err := c.Decode(data, &got); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if got != n {
				t.Errorf("Expected %d, got %d", n, got)
			}

			s := "hello"
			data, err = c.Encode(&s)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			var gotS string
			if err := c.Decode(data, &gotS); err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if gotS != s {
				t.Errorf("Expected %q, got %q", s, gotS)
			}
		})
	}
}

// counter has a fixed 8 byte binary format
type counter struct {
	N uint64
}

func (c counter) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, c.N), nil
}

func (c *counter) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return errors.New("counter: expected 8 bytes")
	}
	c.N = binary.BigEndian.Uint64(data)
	return nil
}

// TestBinaryCodec tests the codec for types with their own binary format
func TestBinaryCodec(t *testing.T) {
	c := NewBinary()

	data, err := c.Encode(&counter{N: 258})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !reflect.DeepEqual(data, []byte{0, 0, 0, 0, 0, 0, 1, 2}) {
		t.Errorf("Unexpected encoding: %x", data)
	}

	var got counter
	if err := c.Decode(data, &got); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got.N != 258 {
		t.Errorf("Expected 258, got %d", got.N)
	}

	if err := c.Decode([]byte{1, 2}, &got); err == nil {
		t.Error("Expected decode of short data to fail")
	}

	// types without a binary format are rejected
	if _, err := c.Encode(&testRecord{}); err == nil {
		t.Error("Expected encode of testRecord to fail")
	}
	var r testRecord
	if err := c.Decode(data, &r); err == nil {
		t.Error("Expected decode into testRecord to fail")
	}
}

// TestByName tests the codec lookup
func TestByName(t *testing.T) {
	for _, name := range []string{"msgpack", "gob", "json", "binary"} {
		c, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q) failed: %v", name, err)
		}
		if c.Name() != name {
			t.Errorf("Expected codec %q, got %q", name, c.Name())
		}
	}

	c, err := ByName("")
	if err != nil || c.Name() != "msgpack" {
		t.Errorf("Expected msgpack as default codec, got %v, %v", c, err)
	}

	if _, err := ByName("xml"); err == nil {
		t.Error("Expected error for unknown codec")
	}
}
