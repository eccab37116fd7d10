package store

import "testing"

func TestSetGetRemove(t *testing.T) {
	kv, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get("missing"); err != nil || ok {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(KeyAuthToken, "tok-1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := kv.Get(KeyAuthToken)
	if err != nil || !ok || value != "tok-1" {
		t.Fatalf("get: value=%q ok=%v err=%v", value, ok, err)
	}

	if err := kv.Set(KeyAuthToken, "tok-2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = kv.Get(KeyAuthToken)
	if value != "tok-2" {
		t.Fatalf("expected overwrite, got %q", value)
	}

	if err := kv.Remove(KeyAuthToken); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := kv.Get(KeyAuthToken); ok {
		t.Fatal("expected key removed")
	}
	if err := kv.Remove(KeyAuthToken); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
}

func TestValuesPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set(KeyInstallID, "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	value, ok, err := kv.Get(KeyInstallID)
	if err != nil || !ok || value != "abc" {
		t.Fatalf("expected persisted value, got value=%q ok=%v err=%v", value, ok, err)
	}
}
