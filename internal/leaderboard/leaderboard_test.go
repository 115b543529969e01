package leaderboard

import (
	"testing"
	"time"

	"primehunt/internal/kv"
)

func TestAddScore_KeepsTopTen(t *testing.T) {
	m := NewManager(kv.NewMemory())
	for i := 1; i <= 12; i++ {
		m.AddScore(ModeClassic, "p", i*10, nil)
	}

	board := m.Board(ModeClassic)
	if len(board) != 10 {
		t.Fatalf("len = %d, want 10", len(board))
	}
	for i, e := range board {
		want := (12 - i) * 10
		if e.Score != want {
			t.Errorf("board[%d].Score = %d, want %d", i, e.Score, want)
		}
	}
}

func TestAddScore_Rank(t *testing.T) {
	m := NewManager(kv.NewMemory())
	if r := m.AddScore(ModeEndless, "a", 100, nil); r != 1 {
		t.Errorf("rank = %d, want 1", r)
	}
	if r := m.AddScore(ModeEndless, "b", 50, nil); r != 2 {
		t.Errorf("rank = %d, want 2", r)
	}
	if r := m.AddScore(ModeEndless, "c", 200, nil); r != 1 {
		t.Errorf("rank = %d, want 1", r)
	}
}

func TestAddScore_RankZeroWhenCut(t *testing.T) {
	m := NewManager(kv.NewMemory())
	for i := 0; i < 10; i++ {
		m.AddScore(ModeClassic, "p", 100+i, nil)
	}
	if r := m.AddScore(ModeClassic, "low", 1, nil); r != 0 {
		t.Errorf("rank = %d, want 0", r)
	}
}

func TestAddScore_TiesKeepInsertionOrder(t *testing.T) {
	m := NewManager(kv.NewMemory())
	m.AddScore(ModeClassic, "first", 50, nil)
	m.AddScore(ModeClassic, "second", 50, nil)

	board := m.Board(ModeClassic)
	if board[0].Name != "first" || board[1].Name != "second" {
		t.Errorf("tie order = %s, %s", board[0].Name, board[1].Name)
	}
}

func TestIsHighScore(t *testing.T) {
	m := NewManager(kv.NewMemory())
	if !m.IsHighScore(ModeClassic, 0) {
		t.Error("empty board should accept any score")
	}
	for i := 0; i < 10; i++ {
		m.AddScore(ModeClassic, "p", 10+i, nil)
	}
	if m.IsHighScore(ModeClassic, 10) {
		t.Error("score equal to the minimum should not qualify")
	}
	if !m.IsHighScore(ModeClassic, 11) {
		t.Error("score above the minimum should qualify")
	}
}

func TestPersistence(t *testing.T) {
	store := kv.NewMemory()
	m := NewManager(store)
	m.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	m.AddScore("challenge_mersenne_primes", "ada", 420, map[string]int{"accuracy": 88})

	reloaded := NewManager(store).Board("challenge_mersenne_primes")
	if len(reloaded) != 1 || reloaded[0].Name != "ada" || reloaded[0].Stats["accuracy"] != 88 {
		t.Errorf("reloaded = %+v", reloaded)
	}
	if !reloaded[0].Date.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("Date = %v", reloaded[0].Date)
	}
}

func TestUnknownModeGetsFreshList(t *testing.T) {
	m := NewManager(kv.NewMemory())
	if len(m.Board("speedrun")) != 0 {
		t.Error("unknown mode should start empty")
	}
	if r := m.AddScore("speedrun", "x", 1, nil); r != 1 {
		t.Errorf("rank = %d, want 1", r)
	}
	modes := m.Modes()
	if modes[len(modes)-1] != "speedrun" {
		t.Errorf("Modes() = %v, want speedrun last", modes)
	}
}

func TestClear(t *testing.T) {
	m := NewManager(kv.NewMemory())
	m.AddScore(ModeClassic, "a", 1, nil)
	m.AddScore(ModeEndless, "b", 1, nil)

	m.Clear(ModeClassic)
	if len(m.Board(ModeClassic)) != 0 || len(m.Board(ModeEndless)) != 1 {
		t.Error("Clear(classic) should only clear classic")
	}
	m.Clear(AllModes)
	if len(m.Board(ModeEndless)) != 0 {
		t.Error("Clear(all) should clear every board")
	}
}

func TestOnUpdate(t *testing.T) {
	m := NewManager(kv.NewMemory())
	var gotMode string
	var gotLen int
	m.OnUpdate = func(mode string, entries []Entry) {
		gotMode, gotLen = mode, len(entries)
	}
	m.AddScore(ModeTimeAttack, "a", 5, nil)
	if gotMode != ModeTimeAttack || gotLen != 1 {
		t.Errorf("hook got %q, %d", gotMode, gotLen)
	}
}

func TestCorruptStoreFallsBackToDefaults(t *testing.T) {
	store := kv.NewMemory()
	store.Set("primeHunt_leaderboards", []byte("nope"))
	m := NewManager(store)
	if len(m.Modes()) != len(DefaultModes) {
		t.Errorf("Modes() = %v", m.Modes())
	}
}
