package dstore

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple"
	"github.com/ValentinKolb/tKV/lib/store"
	"github.com/ValentinKolb/tKV/lib/store/dstore/internal"
	sm "github.com/lni/dragonboat/v4/statemachine"
)

func newTestStateMachine() sm.IConcurrentStateMachine {
	factory := CreateStateMachineFactory(func() db.KVDB { return maple.NewMapleDB(nil) })
	return factory(1, 1)
}

func setEntry(index uint64, key, value string) sm.Entry {
	cmd := internal.Command{Type: internal.CommandTSet, Key: key, Value: []byte(value)}
	return sm.Entry{Index: index, Cmd: cmd.Serialize()}
}

func TestStateMachineUpdateAndLookup(t *testing.T) {
	fsm := newTestStateMachine()
	defer fsm.Close()

	del := internal.Command{Type: internal.CommandTDelete, Key: "b"}
	entries, err := fsm.Update([]sm.Entry{
		setEntry(1, "a", "1"),
		setEntry(2, "b", "2"),
		{Index: 3, Cmd: del.Serialize()},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	for _, e := range entries {
		if e.Result.Value != uint64(store.RetCSuccess) {
			t.Errorf("Entry %d failed: %s", e.Index, e.Result.Data)
		}
	}

	res, err := fsm.Lookup(internal.GetQuery([]byte("a")))
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if qr := res.(internal.QueryResult); !qr.Ok || !bytes.Equal(qr.Value, []byte("1")) {
		t.Errorf("Unexpected result for key a: %+v", qr)
	}

	res, err = fsm.Lookup(internal.HasQuery([]byte("b")))
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if res.(bool) {
		t.Errorf("Key b should have been deleted")
	}

	res, err = fsm.Lookup(internal.InfoQuery())
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if info := res.(db.DatabaseInfo); info.Entries != 1 {
		t.Errorf("Expected 1 entry, got %d", info.Entries)
	}
}

func TestStateMachineInvalidInput(t *testing.T) {
	fsm := newTestStateMachine()
	defer fsm.Close()

	entries, err := fsm.Update([]sm.Entry{
		{Index: 1, Cmd: nil},
		{Index: 2, Cmd: []byte{0x00}},
		{Index: 3, Cmd: (&internal.Command{Type: internal.CommandType(9), Key: "k"}).Serialize()},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	want := []store.RetCode{store.RetCInvalidOperation, store.RetCInternalError, store.RetCInvalidOperation}
	for i, e := range entries {
		if store.RetCode(e.Result.Value) != want[i] {
			t.Errorf("Entry %d: expected %s, got %s", e.Index, want[i], store.RetCode(e.Result.Value))
		}
	}

	_, err = fsm.Lookup("not a query")
	var storeErr *store.Error
	if !errors.As(err, &storeErr) || storeErr.Code != store.RetCInternalError {
		t.Errorf("Expected internal error for invalid query type, got %v", err)
	}

	_, err = fsm.Lookup(internal.Query{Type: internal.QueryType(9)})
	if !errors.As(err, &storeErr) || storeErr.Code != store.RetCInvalidOperation {
		t.Errorf("Expected invalid operation for unknown query, got %v", err)
	}
}

func TestStateMachineSnapshot(t *testing.T) {
	source := newTestStateMachine()
	defer source.Close()

	if _, err := source.Update([]sm.Entry{setEntry(1, "s\x00config", "cfg"), setEntry(2, "key", "value")}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var buf bytes.Buffer
	if err := source.SaveSnapshot(nil, &buf, nil, nil); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	target := newTestStateMachine()
	defer target.Close()
	if err := target.RecoverFromSnapshot(&buf, nil, nil); err != nil {
		t.Fatalf("RecoverFromSnapshot failed: %v", err)
	}

	res, err := target.Lookup(internal.GetQuery([]byte("s\x00config")))
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if qr := res.(internal.QueryResult); !qr.Ok || string(qr.Value) != "cfg" {
		t.Errorf("Unexpected result after recovery: %+v", qr)
	}
}
