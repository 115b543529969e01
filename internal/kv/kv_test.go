package kv

import (
	"errors"
	"testing"
)

type failingStore struct{}

func (failingStore) Get(string) ([]byte, bool, error) { return nil, false, errors.New("disk gone") }
func (failingStore) Set(string, []byte) error         { return errors.New("disk gone") }
func (failingStore) Delete(string) error              { return errors.New("disk gone") }
func (failingStore) Keys() ([]string, error)          { return nil, errors.New("disk gone") }

func TestMemory_GetSetDelete(t *testing.T) {
	m := NewMemory()

	if _, ok, _ := m.Get("missing"); ok {
		t.Error("Get on empty store should report missing")
	}

	if err := m.Set("a", []byte("1")); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	v, ok, err := m.Get("a")
	if err != nil || !ok || string(v) != "1" {
		t.Errorf("Get(a) = %q, %v, %v; want \"1\", true, nil", v, ok, err)
	}

	if err := m.Delete("a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok, _ := m.Get("a"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestMemory_ValuesAreCopied(t *testing.T) {
	m := NewMemory()
	buf := []byte("abc")
	m.Set("k", buf)
	buf[0] = 'z'

	v, _, _ := m.Get("k")
	if string(v) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", v)
	}
}

func TestMemory_Keys(t *testing.T) {
	m := NewMemory()
	m.Set("b", nil)
	m.Set("a", nil)

	keys, _ := m.Keys()
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v, want [a b]", keys)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	m := NewMemory()
	SaveJSON(m, "stats", map[string]int{"games": 3})

	var got map[string]int
	if !LoadJSON(m, "stats", &got) {
		t.Fatal("LoadJSON reported failure")
	}
	if got["games"] != 3 {
		t.Errorf("games = %d, want 3", got["games"])
	}
}

func TestLoadJSON_CorruptKeepsDefault(t *testing.T) {
	m := NewMemory()
	m.Set("stats", []byte("{not json"))

	got := map[string]int{"games": 7}
	if LoadJSON(m, "stats", &got) {
		t.Error("LoadJSON should fail on corrupt data")
	}
	if got["games"] != 7 {
		t.Errorf("default overwritten: %v", got)
	}
}

func TestFailingStore_Swallowed(t *testing.T) {
	var got int
	if LoadJSON(failingStore{}, "x", &got) {
		t.Error("LoadJSON should report failure")
	}
	// Should not panic
	SaveJSON(failingStore{}, "x", 1)

	if err := PutJSON(failingStore{}, "x", 1); err == nil {
		t.Error("PutJSON should surface the write error")
	}
}
