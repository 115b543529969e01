package session

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"primehunt/internal/achievements"
	"primehunt/internal/difficulty"
	"primehunt/internal/game"
	"primehunt/internal/kv"
	"primehunt/internal/leaderboard"
	"primehunt/internal/metrics"
	"primehunt/internal/sound"
	"primehunt/internal/stats"
	"primehunt/internal/wshub"
)

func newShared() *Shared {
	store := kv.NewMemory()
	return &Shared{
		Lifetime:     stats.NewLifetimeStore(store),
		Achievements: achievements.NewStore(store),
		Leaderboard:  leaderboard.NewManager(store),
		Difficulty:   difficulty.NewManager(store),
		Sound:        sound.NewManager(store),
		Metrics:      metrics.New(),
	}
}

func newTestStore(t *testing.T, shared *Shared) *Store {
	t.Helper()
	s := NewStore(shared, 5*time.Millisecond, time.Hour)
	t.Cleanup(s.Close)
	return s
}

// drain collects the message types queued for c.
func drain(c *wshub.Client) []string {
	var types []string
	for {
		select {
		case data, ok := <-c.Send:
			if !ok {
				return types
			}
			var msg struct {
				Type string `json:"t"`
			}
			json.Unmarshal(data, &msg)
			types = append(types, msg.Type)
		default:
			return types
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestSession_ForwardsEvents(t *testing.T) {
	st := newTestStore(t, newShared())
	sess, err := st.Create(game.Options{Mode: game.ModeClassic, Name: "Ada"})
	if err != nil {
		t.Fatal(err)
	}
	// Stop the loop so the test drives the game directly
	st.cancels[sess.ID]()
	<-sess.Done()

	c := wshub.NewClient("p1", false, nil)
	sess.Hub.Register(c)
	sess.startGame()

	got := drain(c)
	for _, want := range []string{"sound", "lives", "wave"} {
		if !contains(got, want) {
			t.Errorf("messages %v missing %q", got, want)
		}
	}
}

func TestSession_PauseStopsClock(t *testing.T) {
	st := newTestStore(t, newShared())
	sess, _ := st.Create(game.Options{Mode: game.ModeTimeAttack})
	st.cancels[sess.ID]()
	<-sess.Done()

	c := wshub.NewClient("p1", false, nil)
	sess.Hub.Register(c)
	sess.startGame()
	sess.step(time.Second)
	if sess.now != time.Second {
		t.Fatalf("now = %v, want 1s", sess.now)
	}

	sess.apply(game.Command{Type: game.CmdPause})
	if !sess.Paused() {
		t.Fatal("session should be paused")
	}
	drain(c)
	sess.step(30 * time.Second)
	if sess.now != time.Second {
		t.Errorf("now = %v while paused, want 1s", sess.now)
	}
	sess.apply(game.Command{Type: game.CmdShoot})
	if got := drain(c); len(got) != 0 {
		t.Errorf("commands while paused produced %v", got)
	}

	sess.apply(game.Command{Type: game.CmdResume})
	if sess.Paused() {
		t.Fatal("session should be running after resume")
	}
	sess.step(time.Second)
	if sess.now != 2*time.Second {
		t.Errorf("now = %v after resume, want 2s", sess.now)
	}
	if sess.Snapshot().TimeRemaining != (58 * time.Second).Milliseconds() {
		t.Errorf("TimeRemaining = %d, want %d", sess.Snapshot().TimeRemaining, (58 * time.Second).Milliseconds())
	}
}

func TestSession_QuitFinishes(t *testing.T) {
	shared := newShared()
	var finished []game.Result
	shared.OnFinish = func(s *Session, r game.Result) { finished = append(finished, r) }

	st := newTestStore(t, shared)
	sess, _ := st.Create(game.Options{Mode: game.ModeEndless, Name: "Ada"})
	st.cancels[sess.ID]()
	<-sess.Done()

	c := wshub.NewClient("p1", false, nil)
	sess.Hub.Register(c)
	sess.startGame()
	sess.apply(game.Command{Type: game.CmdQuit})
	if !sess.mode.Over() {
		t.Fatal("quit should end the game")
	}
	sess.finish()

	r, ok := sess.Result()
	if !ok {
		t.Fatal("Result() not available after finish")
	}
	if r.Name != "Ada" || r.Mode != game.ModeEndless {
		t.Errorf("Result = %+v", r)
	}
	if len(finished) != 1 {
		t.Errorf("OnFinish calls = %d, want 1", len(finished))
	}
	if got := drain(c); !contains(got, "game_over") {
		t.Errorf("messages %v missing game_over", got)
	}
	if sess.Hub.Count() != 0 {
		t.Error("hub should be closed after finish")
	}
}

func TestSession_RunUntilQuit(t *testing.T) {
	st := newTestStore(t, newShared())
	sess, err := st.Create(game.Options{Mode: game.ModeClassic})
	if err != nil {
		t.Fatal(err)
	}
	sess.Begin()
	sess.Begin()

	time.Sleep(20 * time.Millisecond)
	if !sess.Send(game.Command{Type: game.CmdQuit}) {
		t.Fatal("Send() = false on a running session")
	}

	select {
	case <-sess.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after quit")
	}
	if _, ok := sess.Result(); !ok {
		t.Error("Result() not available after quit")
	}
	if sess.Send(game.Command{Type: game.CmdShoot}) {
		t.Error("Send() after game over should fail")
	}
}

func TestStore_CreateGetByCode(t *testing.T) {
	st := newTestStore(t, newShared())

	sess, err := st.Create(game.Options{Mode: game.ModeChallenge, Category: "small_primes"})
	if err != nil {
		t.Fatal(err)
	}
	if len(sess.Code) != codeLength {
		t.Errorf("code length = %d, want %d", len(sess.Code), codeLength)
	}

	got, err := st.Get(sess.ID)
	if err != nil || got != sess {
		t.Errorf("Get() = %v, %v", got, err)
	}
	byCode, err := st.ByCode(" " + strings.ToLower(sess.Code))
	if err != nil || byCode != sess {
		t.Errorf("ByCode() = %v, %v", byCode, err)
	}
	if _, err := st.ByCode("0000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByCode(0000) err = %v, want ErrNotFound", err)
	}
	if len(st.List()) != 1 {
		t.Errorf("List() = %d sessions, want 1", len(st.List()))
	}
}

func TestStore_CreateUnknownMode(t *testing.T) {
	st := newTestStore(t, newShared())
	if _, err := st.Create(game.Options{Mode: "pong"}); !errors.Is(err, game.ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
	if len(st.List()) != 0 {
		t.Error("failed create should not register a session")
	}
}

func TestStore_Delete(t *testing.T) {
	st := newTestStore(t, newShared())
	sess, _ := st.Create(game.Options{Mode: game.ModeClassic})

	st.Delete(sess.ID)
	if _, err := st.Get(sess.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete err = %v, want ErrNotFound", err)
	}
	if _, err := st.ByCode(sess.Code); !errors.Is(err, ErrNotFound) {
		t.Errorf("ByCode() after Delete err = %v, want ErrNotFound", err)
	}
	select {
	case <-sess.Done():
	case <-time.After(time.Second):
		t.Fatal("session loop still running after Delete")
	}
	// Deleting twice is harmless
	st.Delete(sess.ID)
}

func TestStore_Sweep(t *testing.T) {
	st := newTestStore(t, newShared())
	idle, _ := st.Create(game.Options{Mode: game.ModeClassic})
	fresh, _ := st.Create(game.Options{Mode: game.ModeClassic})
	done, _ := st.Create(game.Options{Mode: game.ModeClassic})

	now := time.Now()
	idle.mu.Lock()
	idle.lastActive = now.Add(-2 * time.Hour)
	idle.mu.Unlock()
	done.mu.Lock()
	done.finishedAt = now.Add(-finishedGrace - time.Second)
	done.mu.Unlock()

	if n := st.sweep(now); n != 2 {
		t.Errorf("sweep() = %d, want 2", n)
	}
	if _, err := st.Get(fresh.ID); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
	if _, err := st.Get(idle.ID); err == nil {
		t.Error("idle session should be swept")
	}
}
