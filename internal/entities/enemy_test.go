package entities

import (
	"math/rand"
	"testing"

	"primehunt/internal/gameconfig"
)

func newEnemies() *Enemies {
	return NewEnemies(rand.New(rand.NewSource(7)))
}

func TestEnemies_Add(t *testing.T) {
	s := newEnemies()
	e := s.Add(17, 80, 0)

	if e.ID != 1 {
		t.Errorf("first enemy ID = %d, want 1", e.ID)
	}
	if !e.Prime {
		t.Error("17 should be marked prime")
	}
	if e.X < gameconfig.EnemyMargin || e.X > gameconfig.FieldWidth-gameconfig.EnemyMargin {
		t.Errorf("enemy X = %d, out of bounds", e.X)
	}
	if s.Get(e.ID) != e {
		t.Error("new enemy should be stored")
	}
	if s.Add(12, 80, 0).Prime {
		t.Error("12 should not be marked prime")
	}
}

func TestEnemies_Kill(t *testing.T) {
	s := newEnemies()
	e := s.Add(5, 80, 0)

	if _, ok := s.Kill(e.ID); !ok {
		t.Fatal("first Kill should succeed")
	}
	if _, ok := s.Kill(e.ID); ok {
		t.Error("second Kill should report false")
	}
	if _, ok := s.Kill(999); ok {
		t.Error("Kill of unknown enemy should report false")
	}
	if n := s.ActiveCount(); n != 0 {
		t.Errorf("ActiveCount = %d, want 0", n)
	}
}

func TestEnemies_KillFreesStorage(t *testing.T) {
	s := newEnemies()
	for i := 0; i < 1000; i++ {
		e := s.Add(i+2, 80, 0)
		if _, ok := s.Kill(e.ID); !ok {
			t.Fatalf("Kill(%d) failed", e.ID)
		}
	}
	if n := len(s.enemies); n != 0 {
		t.Errorf("stored enemies = %d, want 0", n)
	}
	if s.Get(1) != nil {
		t.Error("killed enemy should not be returned by Get")
	}
}

func TestEnemies_ActiveOrder(t *testing.T) {
	s := newEnemies()
	for _, n := range []int{4, 9, 11, 13} {
		s.Add(n, 80, 0)
	}
	s.Kill(2)

	got := s.ActiveNumbers()
	want := []int{4, 11, 13}
	if len(got) != len(want) {
		t.Fatalf("ActiveNumbers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ActiveNumbers = %v, want %v", got, want)
			break
		}
	}
}

func TestEnemies_Clear(t *testing.T) {
	s := newEnemies()
	s.Add(2, 80, 0)
	s.Add(3, 80, 0)
	s.Clear()

	if n := s.ActiveCount(); n != 0 {
		t.Errorf("after Clear(), got %d enemies, want 0", n)
	}
	if e := s.Add(7, 80, 0); e.ID != 1 {
		t.Errorf("after Clear(), new ID = %d, want 1", e.ID)
	}
}
