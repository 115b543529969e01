package powerup

import (
	"math/rand"
	"testing"

	"primehunt/internal/gameconfig"
)

func newTestManager() *Manager {
	return NewManager(rand.New(rand.NewSource(42)))
}

func TestThreshold(t *testing.T) {
	cases := map[int]int{0: 10, 1: 20, 2: 40, 3: 70, 4: 120, 12: 6090, 20: 6090}
	for idx, want := range cases {
		if got := Threshold(idx); got != want {
			t.Errorf("Threshold(%d) = %d, want %d", idx, got, want)
		}
	}
}

func TestCheckForPowerUpSpawn_BelowThreshold(t *testing.T) {
	m := newTestManager()
	if _, ok := m.CheckForPowerUpSpawn(9); ok {
		t.Error("should not spawn below the first threshold")
	}
	if m.Schedule().NextThreshold != 10 {
		t.Errorf("NextThreshold = %d, want 10", m.Schedule().NextThreshold)
	}
}

func TestCheckForPowerUpSpawn_Crossings(t *testing.T) {
	m := newTestManager()
	fib := gameconfig.PowerUpFibonacci
	for n := 1; n <= 20; n++ {
		item, ok := m.CheckForPowerUpSpawn(m.Schedule().NextThreshold)
		if !ok || item == nil {
			t.Fatalf("crossing %d did not spawn", n)
		}
		idx := min(n, len(fib)-1)
		sum := 0
		for _, f := range fib[:idx+1] {
			sum += f
		}
		if got := m.Schedule().NextThreshold; got != 10*sum {
			t.Errorf("after %d crossings NextThreshold = %d, want %d", n, got, 10*sum)
		}
	}
}

func TestCheckForPowerUpSpawn_OnePerCall(t *testing.T) {
	m := newTestManager()
	if _, ok := m.CheckForPowerUpSpawn(5000); !ok {
		t.Fatal("expected a spawn")
	}
	if m.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", m.Pending())
	}
	if m.Schedule().Index != 1 {
		t.Errorf("Index = %d, want 1", m.Schedule().Index)
	}
}

func TestSaturation(t *testing.T) {
	m := newTestManager()
	for _i := 0; _i < 30; _i++ {
		m.CheckForPowerUpSpawn(1 << 20)
	}
	if s := m.Schedule(); s.Index != 12 || s.NextThreshold != 6090 {
		t.Errorf("Schedule = %+v, want index 12 threshold 6090", s)
	}
}

func TestSpawnPowerUp_KindsInCatalog(t *testing.T) {
	m := newTestManager()
	seen := map[Kind]bool{}
	for _i := 0; _i < 200; _i++ {
		item := m.SpawnPowerUp(100, -20)
		if item.Kind.Info().Name == "" {
			t.Fatalf("spawned kind %v missing from catalog", item.Kind)
		}
		seen[item.Kind] = true
	}
	if len(seen) != len(Kinds) {
		t.Errorf("saw %d kinds in 200 spawns, want %d", len(seen), len(Kinds))
	}
}

func TestCollect(t *testing.T) {
	m := newTestManager()
	item := m.SpawnPowerUp(10, 0)
	got, ok := m.Collect(item.ID)
	if !ok || got != item {
		t.Fatalf("Collect(%d) = %v, %v", item.ID, got, ok)
	}
	if _, ok := m.Collect(item.ID); ok {
		t.Error("second Collect should fail")
	}
}

func TestReset(t *testing.T) {
	m := newTestManager()
	m.CheckForPowerUpSpawn(100)
	m.Reset()
	if need, ord := m.Info(); need != 10 || ord != 1 {
		t.Errorf("Info after Reset = %d, %d; want 10, 1", need, ord)
	}
}

func TestKindParseAndString(t *testing.T) {
	for _, k := range Kinds {
		got, ok := Parse(k.String())
		if !ok || got != k {
			t.Errorf("Parse(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := Parse("LASER"); ok {
		t.Error("Parse should reject unknown keys")
	}
	if !RapidFire.Timed() || Shield.Timed() || LifeRestore.Timed() {
		t.Error("Timed() mismatch")
	}
}
