package ident

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/google/uuid"
)

const (
	// MinAddrLen is the minimum length of a human readable address
	MinAddrLen = 3
	// MaxAddrLen is the maximum length of a human readable address
	MaxAddrLen = 64
)

// HumanAddr is the human readable form of an address, e.g. as typed on the command line
type HumanAddr string

// CanonicalAddr is the canonical byte form of an address, the form used as storage key
type CanonicalAddr []byte

// Bytes returns the raw bytes of the address
func (a CanonicalAddr) Bytes() []byte {
	return a
}

// String returns the address as standard base64
func (a CanonicalAddr) String() string {
	return base64.StdEncoding.EncodeToString(a)
}

// Equal reports whether a and b are the same address
func (a CanonicalAddr) Equal(b CanonicalAddr) bool {
	return bytes.Equal(a, b)
}

// Canonicalize converts a human readable address into its canonical form.
// Surrounding whitespace is ignored and the address is lower cased.
func Canonicalize(addr HumanAddr) (CanonicalAddr, error) {
	if !utf8.ValidString(string(addr)) {
		return nil, typed.NewError(typed.ErrCInvalidUtf8, "Cannot decode UTF8 bytes into string: invalid address")
	}
	trimmed := strings.TrimSpace(string(addr))
	if n := len(trimmed); n < MinAddrLen || n > MaxAddrLen {
		return nil, typed.NewError(typed.ErrCParse,
			fmt.Sprintf("Error parsing into type CanonicalAddr: address length %d not in [%d, %d]", n, MinAddrLen, MaxAddrLen))
	}
	return CanonicalAddr(strings.ToLower(trimmed)), nil
}

// Humanize converts a canonical address back into its human readable form
func Humanize(addr CanonicalAddr) (HumanAddr, error) {
	if !utf8.Valid(addr) {
		return "", typed.NewError(typed.ErrCInvalidUtf8, "Cannot decode UTF8 bytes into string: invalid canonical address")
	}
	return HumanAddr(addr), nil
}

// ParseBase64 parses the String form of a canonical address
func ParseBase64(s string) (CanonicalAddr, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, typed.WrapError(typed.ErrCInvalidBase64, "Invalid Base64 string", err)
	}
	return b, nil
}

// FromUUID returns the canonical address of a UUID (its 16 raw bytes)
func FromUUID(id uuid.UUID) CanonicalAddr {
	return CanonicalAddr(id[:])
}

// ParseUUID parses a UUID in any of the forms uuid.Parse accepts
func ParseUUID(s string) (CanonicalAddr, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, typed.WrapError(typed.ErrCParse, "Error parsing into type UUID", err)
	}
	return FromUUID(id), nil
}

// NewRandom returns the canonical address of a new random UUID
func NewRandom() CanonicalAddr {
	return FromUUID(uuid.New())
}
