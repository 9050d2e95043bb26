package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, ok, err := store.Get(ctx, "quiz:1"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, "quiz:1", []byte(`{"id":"1"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	value, ok, err := store.Get(ctx, "quiz:1")
	if err != nil || !ok || string(value) != `{"id":"1"}` {
		t.Fatalf("unexpected get result value=%q ok=%v err=%v", value, ok, err)
	}

	if err := store.Delete(ctx, "quiz:1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "quiz:1"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestStoreListScansPrefix(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, key := range []string{"user:b", "user:a", "quiz:1", "sub:1:a"} {
		if err := store.Put(ctx, key, []byte(`{}`)); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	keys, err := store.List(ctx, "user:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "user:a" || keys[1] != "user:b" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestPutIfAbsentUsesSetNX(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.PutIfAbsent(ctx, "sub:1:u1", []byte(`{"score":2}`))
	if err != nil || !created {
		t.Fatalf("expected first write accepted, created=%v err=%v", created, err)
	}
	created, err = store.PutIfAbsent(ctx, "sub:1:u1", []byte(`{"score":7}`))
	if err != nil || created {
		t.Fatalf("expected duplicate write rejected, created=%v err=%v", created, err)
	}
	value, _, _ := store.Get(ctx, "sub:1:u1")
	if string(value) != `{"score":2}` {
		t.Fatalf("first value should survive, got %q", value)
	}
}
