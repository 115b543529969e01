package difficulty

import (
	"errors"
	"testing"
	"time"

	"primehunt/internal/kv"
)

func TestNewManager_DefaultsToNormal(t *testing.T) {
	m := NewManager(kv.NewMemory())
	if m.Level() != Normal {
		t.Errorf("Level() = %q, want %q", m.Level(), Normal)
	}
}

func TestSet_PersistsRawName(t *testing.T) {
	store := kv.NewMemory()
	m := NewManager(store)
	if err := m.Set(Hard); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	raw, _, _ := store.Get("primeHunt_difficulty")
	if string(raw) != Hard {
		t.Errorf("stored = %q, want %q", raw, Hard)
	}
	if NewManager(store).Level() != Hard {
		t.Error("level not reloaded")
	}
}

func TestSet_UnknownKeepsPrevious(t *testing.T) {
	m := NewManager(kv.NewMemory())
	m.Set(Easy)
	err := m.Set("NIGHTMARE")
	if !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("err = %v, want ErrUnknownLevel", err)
	}
	if m.Level() != Easy {
		t.Errorf("Level() = %q, want %q", m.Level(), Easy)
	}
}

func TestNewManager_IgnoresGarbage(t *testing.T) {
	store := kv.NewMemory()
	store.Set("primeHunt_difficulty", []byte("\"HARD\""))
	if NewManager(store).Level() != Normal {
		t.Error("unrecognised stored value should fall back to NORMAL")
	}
}

func TestApply(t *testing.T) {
	m := NewManager(kv.NewMemory())
	m.Set(Expert)
	got := m.Apply(Base{EnemySpeed: 100, SpawnRate: 2 * time.Second, NumberRangeMax: 500})
	if got.EnemySpeed != 160 || got.SpawnRate != time.Second || got.NumberRangeMax != 300 || got.Lives != 1 {
		t.Errorf("Apply = %+v", got)
	}
}

func TestApply_RangeCapNeverRaises(t *testing.T) {
	got := ApplyLevel(Levels[Easy], Base{EnemySpeed: 80, SpawnRate: time.Second, NumberRangeMax: 30})
	if got.NumberRangeMax != 30 {
		t.Errorf("NumberRangeMax = %d, want 30", got.NumberRangeMax)
	}
}

func TestReset(t *testing.T) {
	store := kv.NewMemory()
	m := NewManager(store)
	m.Set(Hard)
	m.Reset()
	if m.Level() != Normal || NewManager(store).Level() != Normal {
		t.Error("Reset should restore NORMAL")
	}
}
