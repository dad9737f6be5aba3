package internal

import (
	"encoding/binary"
	"fmt"
	"github.com/ValentinKolb/tKV/lib/db"
)

// CommandType defines the possible operations for the state machine.
type CommandType uint8

const (
	CommandTSet    CommandType = iota // Insert or update an entry.
	CommandTDelete                    // Delete an entry.
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTSet:
		return "Set"
	case CommandTDelete:
		return "Delete"
	default:
		return fmt.Sprintf("Unknown(%d)", ct)
	}
}

// ToDBFeature converts a CommandType to the corresponding db.Feature.
// This can be used for checking if the database supports a certain operation.
func (ct CommandType) ToDBFeature() (db.Feature, error) {
	switch ct {
	case CommandTSet:
		return db.FeatureSet, nil
	case CommandTDelete:
		return db.FeatureDelete, nil
	default:
		return 0, fmt.Errorf("unknown command type %d", ct)
	}
}

// headerSize is the fixed part of a serialized command: Type + KeyLen
const headerSize = 1 + 4

// Command represents a command to be executed by the state machine (a single entry in the raft log)
type Command struct {
	Type  CommandType
	Key   string
	Value []byte
}

// SizeBytes returns the exact number of bytes needed to serialize this command
func (command *Command) SizeBytes() int {
	return headerSize + len(command.Key) + len(command.Value)
}

// Serialize serializes a command into a byte array with the format:
// 1 byte for operation type,
// 4 bytes for key length (big endian),
// N bytes for key data,
// N bytes for value data (optional)
func (command *Command) Serialize() []byte {
	result := make([]byte, command.SizeBytes())

	// Set operation type
	result[0] = byte(command.Type)

	// Set key length (4 bytes, big endian)
	binary.BigEndian.PutUint32(result[1:headerSize], uint32(len(command.Key)))

	// Copy key and value bytes
	n := copy(result[headerSize:], command.Key)
	copy(result[headerSize+n:], command.Value)

	return result
}

// Deserialize extracts all Command fields from a byte array.
func (command *Command) Deserialize(data []byte) error {
	if len(data) < headerSize {
		return fmt.Errorf("data too short for command")
	}

	// Extract operation type
	command.Type = CommandType(data[0])

	// Extract key length
	keyLen := binary.BigEndian.Uint32(data[1:headerSize])

	// Validate key length
	if uint64(len(data)) < uint64(headerSize)+uint64(keyLen) {
		return fmt.Errorf("data too short for key of length %d", keyLen)
	}

	// Extract key
	end := headerSize + int(keyLen)
	command.Key = string(data[headerSize:end])

	// Extract value if present
	if len(data) > end {
		command.Value = make([]byte, len(data)-end)
		copy(command.Value, data[end:])
	} else {
		command.Value = nil
	}

	return nil
}
