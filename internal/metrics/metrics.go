// Package metrics exposes Prometheus counters for sessions and gameplay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/powerup"
)

type Metrics struct {
	registry *prometheus.Registry

	SessionsActive  prometheus.Gauge
	SessionsCreated *prometheus.CounterVec
	Clients         prometheus.Gauge
	Hits            *prometheus.CounterVec
	Escapes         *prometheus.CounterVec
	WavesCompleted  *prometheus.CounterVec
	PowerUps        *prometheus.CounterVec
	Achievements    prometheus.Counter
	GamesFinished   *prometheus.CounterVec
	FinalScore      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primehunt_sessions_active",
			Help: "Game sessions currently held in memory.",
		}),
		SessionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primehunt_sessions_created_total",
			Help: "Game sessions created, by mode.",
		}, []string{"mode"}),
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "primehunt_ws_clients",
			Help: "Connected websocket clients, players and spectators.",
		}),
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primehunt_hits_total",
			Help: "Enemy hits, by mode and result.",
		}, []string{"mode", "result"}),
		Escapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primehunt_escapes_total",
			Help: "Enemies that left the field, by mode.",
		}, []string{"mode"}),
		WavesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primehunt_waves_completed_total",
			Help: "Waves cleared, by mode.",
		}, []string{"mode"}),
		PowerUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primehunt_powerups_collected_total",
			Help: "Power-ups collected, by kind.",
		}, []string{"kind"}),
		Achievements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "primehunt_achievements_unlocked_total",
			Help: "Achievements unlocked.",
		}),
		GamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "primehunt_games_finished_total",
			Help: "Games that reached game over, by mode.",
		}, []string{"mode"}),
		FinalScore: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primehunt_final_score",
			Help:    "Final score of finished games, by mode.",
			Buckets: []float64{0, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"mode"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.SessionsActive, m.SessionsCreated, m.Clients, m.Hits, m.Escapes,
		m.WavesCompleted, m.PowerUps, m.Achievements, m.GamesFinished, m.FinalScore,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe counts one game event for a session of the given mode. A nil
// receiver is a no-op.
func (m *Metrics) Observe(mode string, ev events.Event) {
	if m == nil {
		return
	}
	switch ev.Type {
	case events.CorrectHit:
		m.Hits.WithLabelValues(mode, "correct").Inc()
	case events.WrongHit:
		m.Hits.WithLabelValues(mode, "wrong").Inc()
	case events.EnemyEscaped:
		m.Escapes.WithLabelValues(mode).Inc()
	case events.WaveAdvanced:
		m.WavesCompleted.WithLabelValues(mode).Inc()
	case events.PowerUpCollected:
		if item, ok := ev.Data.(powerup.Item); ok {
			m.PowerUps.WithLabelValues(item.Kind.String()).Inc()
		}
	case events.AchievementShown:
		m.Achievements.Inc()
	case events.GameOver:
		m.GamesFinished.WithLabelValues(mode).Inc()
		if r, ok := ev.Data.(game.Result); ok {
			m.FinalScore.WithLabelValues(mode).Observe(float64(r.Score))
		}
	}
}
