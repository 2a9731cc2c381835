package kvstore_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lightningstudio/watchbili/internal/kvstore"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
)

func newEncrypted(t *testing.T, kv bilibili.KV, seed byte) *kvstore.Encrypted {
	t.Helper()
	e, err := kvstore.NewEncrypted(kv, bytes.Repeat([]byte{seed}, 32))
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestEncryptedRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := bilibili.NewMemoryKV()
	e := newEncrypted(t, mem, 1)
	if err := e.PutString(ctx, bilibili.AccountKey, `{"accessToken":"secret-token"}`); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := mem.GetString(ctx, bilibili.AccountKey)
	if strings.Contains(raw, "secret-token") {
		t.Fatalf("plaintext stored: %s", raw)
	}
	got, ok, err := e.GetString(ctx, bilibili.AccountKey)
	if err != nil || !ok || got != `{"accessToken":"secret-token"}` {
		t.Errorf("GetString() = %q, %v, %v", got, ok, err)
	}
	if _, ok, err := e.GetString(ctx, "missing"); ok || err != nil {
		t.Errorf("GetString(missing) = %v, %v", ok, err)
	}
}

func TestEncryptedWrongKeyIsCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := bilibili.NewMemoryKV()
	if err := newEncrypted(t, mem, 1).PutString(ctx, bilibili.AccountKey, "v"); err != nil {
		t.Fatal(err)
	}
	_, _, err := newEncrypted(t, mem, 2).GetString(ctx, bilibili.AccountKey)
	if !errors.Is(err, bilibili.ErrCorruptRecord) {
		t.Fatalf("error = %v, want ErrCorruptRecord", err)
	}

	// The account store starts over instead of failing.
	a, err := bilibili.NewStore(newEncrypted(t, mem, 2)).Read(ctx)
	if err != nil || a == nil {
		t.Errorf("Read() = %+v, %v", a, err)
	}
}

func TestEncryptedBindsName(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := bilibili.NewMemoryKV()
	e := newEncrypted(t, mem, 1)
	if err := e.PutString(ctx, "a", "value"); err != nil {
		t.Fatal(err)
	}
	raw, _, _ := mem.GetString(ctx, "a")
	_ = mem.PutString(ctx, "b", raw)
	if _, _, err := e.GetString(ctx, "b"); !errors.Is(err, bilibili.ErrCorruptRecord) {
		t.Errorf("moved value opened: %v", err)
	}
}
