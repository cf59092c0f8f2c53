package kvstore

import (
	"context"
	"testing"
)

func TestBackendTypeIsValid(t *testing.T) {
	for _, bt := range []BackendType{MemoryBackend, SQLiteBackend, PostgresBackend} {
		if !bt.IsValid() {
			t.Errorf("%s should be valid", bt)
		}
	}
	if BackendType("redis").IsValid() {
		t.Errorf("unknown backend should be invalid")
	}
}

func TestOpenMemory(t *testing.T) {
	store, err := Open(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	if _, ok := store.(*Memory); !ok {
		t.Fatalf("expected *Memory, got %T", store)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), Config{Type: "redis"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}
