package ident

import (
	"testing"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var _ typed.Identifier = CanonicalAddr(nil)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in      HumanAddr
		want    string
		errPred func(error) bool
	}{
		{in: "alice", want: "alice"},
		{in: "  Alice\n", want: "alice"},
		{in: "BOB", want: "bob"},
		{in: "abc", want: "abc"},
		{in: "ab", errPred: typed.IsParseErr},
		{in: "   ab   ", errPred: typed.IsParseErr},
		{in: "", errPred: typed.IsParseErr},
		{in: HumanAddr(make([]byte, 65)), errPred: typed.IsParseErr},
		{in: HumanAddr([]byte{'a', 'b', 0xff}), errPred: typed.IsInvalidUtf8},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := Canonicalize(tt.in)
			if tt.errPred != nil {
				require.Error(t, err)
				require.True(t, tt.errPred(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}

func TestHumanize(t *testing.T) {
	addr, err := Canonicalize("Alice")
	require.NoError(t, err)

	human, err := Humanize(addr)
	require.NoError(t, err)
	require.Equal(t, HumanAddr("alice"), human)

	_, err = Humanize(CanonicalAddr{0xff, 0xfe})
	require.True(t, typed.IsInvalidUtf8(err))
}

func TestBase64(t *testing.T) {
	addr := CanonicalAddr("alice")
	require.Equal(t, "YWxpY2U=", addr.String())

	parsed, err := ParseBase64(addr.String())
	require.NoError(t, err)
	require.True(t, addr.Equal(parsed))

	_, err = ParseBase64("not base64!")
	require.True(t, typed.IsInvalidBase64(err))
}

func TestUUID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	addr := FromUUID(id)
	require.Len(t, addr.Bytes(), 16)

	parsed, err := ParseUUID(id.String())
	require.NoError(t, err)
	require.True(t, addr.Equal(parsed))

	_, err = ParseUUID("not-a-uuid")
	require.True(t, typed.IsParseErr(err))

	require.False(t, NewRandom().Equal(NewRandom()))
}
