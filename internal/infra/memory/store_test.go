package memory

import (
	"context"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	if _, ok, err := store.Get(ctx, "user:1"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "user:1", []byte(`{"phone":"123"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, ok, err := store.Get(ctx, "user:1")
	if err != nil || !ok {
		t.Fatalf("expected value, got ok=%v err=%v", ok, err)
	}
	if string(value) != `{"phone":"123"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := store.Delete(ctx, "user:1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "user:1"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestStoreListReturnsSortedPrefixMatches(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	for _, key := range []string{"sub:q1:u2", "sub:q1:u1", "sub:q2:u1", "quiz:q1"} {
		if err := store.Put(ctx, key, []byte(`{}`)); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	keys, err := store.List(ctx, "sub:q1:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "sub:q1:u1" || keys[1] != "sub:q1:u2" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestPutIfAbsent(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	created, err := store.PutIfAbsent(ctx, "sub:q1:u1", []byte(`{"score":1}`))
	if err != nil || !created {
		t.Fatalf("expected first write to win, created=%v err=%v", created, err)
	}

	created, err = store.PutIfAbsent(ctx, "sub:q1:u1", []byte(`{"score":9}`))
	if err != nil || created {
		t.Fatalf("expected second write rejected, created=%v err=%v", created, err)
	}

	value, _, _ := store.Get(ctx, "sub:q1:u1")
	if string(value) != `{"score":1}` {
		t.Fatalf("first value should survive, got %q", value)
	}
}
