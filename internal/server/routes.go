package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"primehunt/internal/achievements"
	"primehunt/internal/broadcast"
	"primehunt/internal/config"
	"primehunt/internal/db"
	"primehunt/internal/difficulty"
	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/kv"
	"primehunt/internal/leaderboard"
	"primehunt/internal/localdb"
	"primehunt/internal/metrics"
	"primehunt/internal/session"
	"primehunt/internal/sound"
	"primehunt/internal/stats"
)

func Run() error {
	appCfg := config.Load()

	var (
		store   kv.Store
		pinger  Pinger
		archive Archive
	)

	// PostgreSQL when configured, otherwise the local SQLite file
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (falling back to local store)\n", err)
		} else if err := database.Migrate(); err != nil {
			log.Printf("[DB] Migration failed: %v (falling back to local store)\n", err)
			database.Close()
		} else {
			store, pinger, archive = database, database, database
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, using local store")
	}
	if store == nil {
		local, err := localdb.Open(appCfg.StorePath)
		if err != nil {
			log.Printf("[Store] Failed to open %s: %v (running in memory)\n", appCfg.StorePath, err)
			store = kv.NewMemory()
		} else {
			store, pinger, archive = local, local, local
			log.Printf("[Store] Using %s\n", appCfg.StorePath)
		}
	}

	srv := NewServer(store, archive, appCfg)
	srv.DB = pinger

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.Routes())
}

// NewServer wires the shared managers over store. archive may be nil.
func NewServer(store kv.Store, archive Archive, cfg config.Config) *Server {
	bus := events.NewBus()
	m := metrics.New()

	lb := leaderboard.NewManager(store)
	lb.OnUpdate = func(mode string, entries []leaderboard.Entry) {
		publishBoard(bus, mode, entries)
	}

	srv := &Server{
		Broadcaster: broadcast.NewBroadcaster(bus),
		Bus:         bus,
		Metrics:     m,
		Archive:     archive,
	}
	srv.Shared = &session.Shared{
		Lifetime:     stats.NewLifetimeStore(store),
		Achievements: achievements.NewStore(store),
		Leaderboard:  lb,
		Difficulty:   difficulty.NewManager(store),
		Sound:        sound.NewManager(store),
		Metrics:      m,
		OnFinish:     srv.archiveGame,
	}
	if archive != nil {
		srv.ArchiveBuffer = make(chan game.Record, 100)
		go archiveWriter(archive, srv.ArchiveBuffer)
	}
	srv.Sessions = session.NewStore(srv.Shared, cfg.Tick(), cfg.SessionTimeout())
	return srv
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/ws", s.handlePlayerWS)
	mux.HandleFunc("GET /spectate/{code}/ws", s.handleSpectateWS)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboards)
	mux.HandleFunc("GET /leaderboard/events", s.handleLeaderboardEvents)
	mux.HandleFunc("GET /leaderboard/{mode}", s.handleLeaderboard)
	mux.HandleFunc("DELETE /leaderboard/{mode}", s.handleClearLeaderboard)
	mux.HandleFunc("GET /stats", s.handleStats)
	mux.HandleFunc("GET /achievements", s.handleAchievements)
	mux.HandleFunc("GET /settings/difficulty", s.handleGetDifficulty)
	mux.HandleFunc("PUT /settings/difficulty", s.handlePutDifficulty)
	mux.HandleFunc("GET /settings/sound", s.handleGetSound)
	mux.HandleFunc("PUT /settings/sound", s.handlePutSound)
	mux.HandleFunc("GET /sounds/{file}", s.handleSound)
	mux.HandleFunc("GET /games", s.handleGames)
	mux.HandleFunc("GET /games/summary", s.handleGameSummaries)
	mux.HandleFunc("DELETE /data", s.handleClearData)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	return mux
}

// archiveGame queues a finished game for the archive writer.
func (s *Server) archiveGame(sess *session.Session, r game.Result) {
	if s.ArchiveBuffer == nil {
		return
	}
	select {
	case s.ArchiveBuffer <- game.NewRecord(sess.ID, r, time.Now()):
	default:
		log.Println("[DB] Archive buffer full, dropping game")
	}
}

func archiveWriter(archive Archive, buffer chan game.Record) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]game.Record, 0, 20)

	for {
		select {
		case rec := <-buffer:
			batch = append(batch, rec)
			if len(batch) >= 20 {
				if err := archive.BatchRecordGames(batch); err != nil {
					log.Printf("[DB] BatchRecordGames error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := archive.BatchRecordGames(batch); err != nil {
					log.Printf("[DB] BatchRecordGames error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
