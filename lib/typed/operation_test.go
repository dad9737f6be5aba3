package typed_test

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/tKV/lib/store/storetest"
	"github.com/ValentinKolb/tKV/lib/typed"
	"github.com/stretchr/testify/require"
)

// save_for("hello", 0x01) then load_for(0x01) returns "hello"
func TestSaveForLoadFor(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	v := "hello"
	_, err := typed.Execute(typed.SaveFor(c, &v, typed.ID{0x01}), s)
	require.NoError(t, err)

	got, err := typed.Execute(typed.LoadFor[string](c, typed.ID{0x01}), s)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

// load_for on an untouched identifier returns NotFound
func TestLoadForUntouched(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	_, err := typed.Execute(typed.LoadFor[string](c, typed.ID{0x02}), s)
	require.True(t, typed.IsNotFound(err))
}

func TestOperationConstructionIsPure(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	v := reminder{Content: []byte("buy milk"), Timestamp: 12}
	save := typed.SaveFor(c, &v, typed.ID("alice"))
	load := typed.LoadFor[reminder](c, typed.ID("alice"))
	require.Equal(t, 0, s.Calls())

	// inspecting the operations does not touch the store either
	require.Equal(t, typed.OpSave, save.Kind())
	require.Equal(t, typed.OpLoad, load.Kind())
	require.Equal(t, typed.StateConstructed, save.State())
	require.Equal(t, []byte("alice"), save.DynamicKey())
	require.Same(t, &v, save.AsTarget())
	require.Nil(t, load.AsTarget())
	require.Equal(t, 0, s.Calls())

	require.NoError(t, save.ExecuteSave(s))
	require.Equal(t, 1, s.Sets())
	require.Equal(t, 0, s.Gets())

	got, err := load.ExecuteLoad(s)
	require.NoError(t, err)
	require.Equal(t, v, got)
	require.Equal(t, 1, s.Gets())
	require.Equal(t, 2, s.Calls())
}

func TestSaveForWritesValueAtExecution(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	v := counter{Count: 1}
	op := typed.SaveFor(c, &v, typed.ID("alice"))
	v.Count = 2
	require.NoError(t, op.ExecuteSave(s))

	got, err := typed.LoadFor[counter](c, typed.ID("alice")).ExecuteLoad(s)
	require.NoError(t, err)
	require.Equal(t, uint64(2), got.Count)
}

func TestSaveForCopiesIdentifier(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	id := []byte("alice")
	v := "hello"
	op := typed.SaveFor(c, &v, typed.ID(id))
	copy(id, "bobby")
	require.NoError(t, op.ExecuteSave(s))

	got, err := typed.LoadFor[string](c, typed.ID("alice")).ExecuteLoad(s)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestOperationExecutesOnce(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	v := "hello"
	save := typed.SaveFor(c, &v, typed.ID("a"))
	require.NoError(t, save.ExecuteSave(s))
	require.Equal(t, typed.StateExecuted, save.State())

	err := save.ExecuteSave(s)
	require.True(t, typed.IsInvalidOperation(err))
	require.Equal(t, 1, s.Sets())

	load := typed.LoadFor[string](c, typed.ID("a"))
	_, err = load.ExecuteLoad(s)
	require.NoError(t, err)
	_, err = typed.Execute(load, s)
	require.True(t, typed.IsInvalidOperation(err))
	require.Equal(t, 1, s.Gets())
}

// a binary identifier shows up in the error the same way for NotFound and InvalidOperation
func TestOperationErrorKeyIsLossy(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	id := typed.ID{0xff, 'a', 0xfe}
	load := typed.LoadFor[string](c, id)
	_, err := load.ExecuteLoad(s)
	var notFound *typed.Error
	require.True(t, errors.As(err, &notFound))
	require.Equal(t, typed.ErrCNotFound, notFound.Code)

	_, err = load.ExecuteLoad(s)
	var invalid *typed.Error
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, typed.ErrCInvalidOperation, invalid.Code)
	require.Equal(t, "\uFFFDa\uFFFD", invalid.Key)
	require.Equal(t, notFound.Key, invalid.Key)
}

func TestOperationFailedIsTerminal(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	load := typed.LoadFor[string](c, typed.ID("missing"))
	_, err := load.ExecuteLoad(s)
	require.True(t, typed.IsNotFound(err))
	require.Equal(t, typed.StateFailed, load.State())

	v := "now it exists"
	require.NoError(t, typed.SaveFor(c, &v, typed.ID("missing")).ExecuteSave(s))

	_, err = load.ExecuteLoad(s)
	require.True(t, typed.IsInvalidOperation(err))
}

func TestOperationWrongKind(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	v := "hello"
	save := typed.SaveFor(c, &v, typed.ID("a"))
	_, err := save.ExecuteLoad(s)
	require.True(t, typed.IsInvalidOperation(err))
	require.Equal(t, typed.StateConstructed, save.State())

	load := typed.LoadFor[string](c, typed.ID("a"))
	require.True(t, typed.IsInvalidOperation(load.ExecuteSave(s)))
	require.Equal(t, typed.StateConstructed, load.State())

	require.Equal(t, 0, s.Calls())
}

func TestExecuteSaveReturnsValue(t *testing.T) {
	c := newCatalog()
	s := storetest.NewRecorder()

	v := reminder{Content: []byte("x"), Timestamp: 1}
	got, err := typed.Execute(typed.SaveFor(c, &v, typed.ID("a")), s)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestOperationString(t *testing.T) {
	c := newCatalog()
	op := typed.LoadFor[string](c, typed.ID("alice"))
	require.Equal(t, `load string for "alice" (constructed)`, op.String())
	require.Equal(t, "save", typed.OpSave.String())
	require.Equal(t, "failed", typed.StateFailed.String())
}
