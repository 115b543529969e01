package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/powerup"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe("classic", events.Event{Type: events.CorrectHit})
	m.Observe("classic", events.Event{Type: events.CorrectHit})
	m.Observe("classic", events.Event{Type: events.WrongHit})
	m.Observe("endless", events.Event{Type: events.EnemyEscaped})
	m.Observe("classic", events.Event{Type: events.WaveAdvanced, Data: 2})
	m.Observe("classic", events.Event{Type: events.PowerUpCollected, Data: powerup.Item{Kind: powerup.Freeze}})
	m.Observe("classic", events.Event{Type: events.AchievementShown})
	m.Observe("classic", events.Event{Type: events.GameOver, Data: game.Result{Score: 120}})

	if got := testutil.ToFloat64(m.Hits.WithLabelValues("classic", "correct")); got != 2 {
		t.Errorf("correct hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Hits.WithLabelValues("classic", "wrong")); got != 1 {
		t.Errorf("wrong hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Escapes.WithLabelValues("endless")); got != 1 {
		t.Errorf("escapes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.WavesCompleted.WithLabelValues("classic")); got != 1 {
		t.Errorf("waves = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.PowerUps.WithLabelValues("FREEZE")); got != 1 {
		t.Errorf("FREEZE collected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.Achievements); got != 1 {
		t.Errorf("achievements = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.GamesFinished.WithLabelValues("classic")); got != 1 {
		t.Errorf("games finished = %v, want 1", got)
	}
}

func TestObserveNil(t *testing.T) {
	var m *Metrics
	// Should not panic
	m.Observe("classic", events.Event{Type: events.CorrectHit})
}

func TestHandler(t *testing.T) {
	m := New()
	m.SessionsActive.Set(3)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "primehunt_sessions_active 3") {
		t.Errorf("metrics output missing sessions gauge:\n%s", body)
	}
}
