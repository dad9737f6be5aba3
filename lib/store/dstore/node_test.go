package dstore

import (
	"bytes"
	"context"
	"testing"

	"github.com/ValentinKolb/tKV/lib/db"
	"github.com/ValentinKolb/tKV/lib/db/engines/maple"
)

func TestSingleNodeStore(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a raft node host")
	}

	cfg := DefaultNodeConfig(t.TempDir())
	cfg.RaftAddress = "localhost:63091"

	s, err := StartSingleNode(context.Background(), cfg, func() db.KVDB { return maple.NewMapleDB(nil) })
	if err != nil {
		t.Fatalf("Failed to start node: %v", err)
	}
	defer s.Close()

	if err := s.Set([]byte("key"), []byte("value")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := s.Get([]byte("key"))
	if err != nil || !ok || !bytes.Equal(value, []byte("value")) {
		t.Errorf("Get returned %q (ok=%v, err=%v)", value, ok, err)
	}

	if err := s.Delete([]byte("key")); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	has, err := s.Has([]byte("key"))
	if err != nil || has {
		t.Errorf("Has returned %v (err=%v) after Delete", has, err)
	}

	info, err := s.GetDBInfo()
	if err != nil || info.DbType != db.ImplMaple {
		t.Errorf("Unexpected db info %+v (err=%v)", info, err)
	}
}
