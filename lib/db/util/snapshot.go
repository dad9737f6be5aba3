package util

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// maxSnapshotKeyLen is the upper bound for a key read from a snapshot
const maxSnapshotKeyLen = 1 << 20

// --------------------------------------------------------------------------
// Snapshot Writer
// --------------------------------------------------------------------------

// SnapshotWriter writes entries in the engine snapshot format:
// magic number, 1 byte version, 8 bytes entry count,
// then per entry: 4 bytes key length, key, 4 bytes value length, value.
// All integers are little endian.
type SnapshotWriter struct {
	bw       *bufio.Writer
	expected uint64
	written  uint64
}

// NewSnapshotWriter writes the snapshot header and returns a writer for exactly count entries
func NewSnapshotWriter(w io.Writer, magic string, version uint8, count uint64) (*SnapshotWriter, error) {
	bw := bufio.NewWriterSize(w, 1024*1024) // 1 MB buffer

	if _, err := bw.WriteString(magic); err != nil {
		return nil, err
	}
	if err := binary.Write(bw, binary.LittleEndian, version); err != nil {
		return nil, err
	}
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return nil, err
	}

	return &SnapshotWriter{bw: bw, expected: count}, nil
}

// Write appends a single entry
func (sw *SnapshotWriter) Write(key string, value []byte) error {
	if sw.written == sw.expected {
		return fmt.Errorf("snapshot header announced %d entries", sw.expected)
	}
	if err := binary.Write(sw.bw, binary.LittleEndian, uint32(len(key))); err != nil {
		return err
	}
	if _, err := sw.bw.WriteString(key); err != nil {
		return err
	}
	if err := binary.Write(sw.bw, binary.LittleEndian, uint32(len(value))); err != nil {
		return err
	}
	if _, err := sw.bw.Write(value); err != nil {
		return err
	}
	sw.written++
	return nil
}

// Close flushes the buffer and checks that all announced entries were written
func (sw *SnapshotWriter) Close() error {
	if sw.written != sw.expected {
		return fmt.Errorf("snapshot incomplete: wrote %d of %d entries", sw.written, sw.expected)
	}
	return sw.bw.Flush()
}

// --------------------------------------------------------------------------
// Snapshot Reader
// --------------------------------------------------------------------------

// ReadSnapshot reads a snapshot written by SnapshotWriter and calls fn for every entry.
// Reading stops at the first error returned by fn.
func ReadSnapshot(r io.Reader, magic string, version uint8, fn func(key string, value []byte) error) error {

	// Use a buffered reader for better performance
	br := bufio.NewReaderSize(r, 1024*1024) // 1 MB buffer

	// Read and verify magic number
	magicBytes := make([]byte, len(magic))
	if _, err := io.ReadFull(br, magicBytes); err != nil {
		return err
	}
	if string(magicBytes) != magic {
		return fmt.Errorf("invalid file format: magic number mismatch")
	}

	// Read and verify version
	var fileVersion uint8
	if err := binary.Read(br, binary.LittleEndian, &fileVersion); err != nil {
		return err
	}
	if fileVersion != version {
		return fmt.Errorf("unsupported version: %d (expected %d)", fileVersion, version)
	}

	// Read data entries count
	var dataCount uint64
	if err := binary.Read(br, binary.LittleEndian, &dataCount); err != nil {
		return err
	}

	for i := uint64(0); i < dataCount; i++ {
		var keyLen uint32
		if err := binary.Read(br, binary.LittleEndian, &keyLen); err != nil {
			return err
		}
		if keyLen > maxSnapshotKeyLen {
			return fmt.Errorf("invalid key length %d in entry %d", keyLen, i)
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(br, key); err != nil {
			return err
		}

		var valueLen uint32
		if err := binary.Read(br, binary.LittleEndian, &valueLen); err != nil {
			return err
		}
		value := make([]byte, valueLen)
		if _, err := io.ReadFull(br, value); err != nil {
			return err
		}

		if err := fn(string(key), value); err != nil {
			return err
		}
	}

	return nil
}
