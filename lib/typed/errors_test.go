package typed_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	predicates := map[typed.ErrCode]func(error) bool{
		typed.ErrCNotFound:         typed.IsNotFound,
		typed.ErrCSerialize:        typed.IsSerializeErr,
		typed.ErrCInvalidBase64:    typed.IsInvalidBase64,
		typed.ErrCInvalidUtf8:      typed.IsInvalidUtf8,
		typed.ErrCParse:            typed.IsParseErr,
		typed.ErrCUnauthorized:     typed.IsUnauthorized,
		typed.ErrCUnderflow:        typed.IsUnderflow,
		typed.ErrCUnregistered:     typed.IsUnregistered,
		typed.ErrCInvalidOperation: typed.IsInvalidOperation,
	}

	for code := range predicates {
		t.Run(code.String(), func(t *testing.T) {
			err := typed.NewError(code, "boom")
			wrapped := fmt.Errorf("handling message: %w", err)

			for other, is := range predicates {
				require.Equal(t, other == code, is(err), "%s on %s", other, code)
				require.Equal(t, other == code, is(wrapped), "%s on wrapped %s", other, code)
			}
			require.Equal(t, code, typed.CodeOf(wrapped))
		})
	}

	require.False(t, typed.IsNotFound(nil))
	require.False(t, typed.IsNotFound(errors.New("plain")))
	require.Equal(t, typed.ErrCode(0), typed.CodeOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("bad byte")
	err := typed.WrapError(typed.ErrCParse, "Error parsing into type Addr", cause)
	require.Equal(t, "Error parsing into type Addr: bad byte", err.Error())
	require.ErrorIs(t, err, cause)

	require.Equal(t, "Unauthorized", typed.NewError(typed.ErrCUnauthorized, "Unauthorized").Error())
	require.Equal(t, "ErrCode(99)", typed.ErrCode(99).String())
}
