package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"primehunt/internal/achievements"
	"primehunt/internal/difficulty"
	"primehunt/internal/events"
	"primehunt/internal/game"
	"primehunt/internal/leaderboard"
	"primehunt/internal/sound"
)

type boardView struct {
	Mode    string              `json:"mode"`
	Entries []leaderboard.Entry `json:"entries"`
}

// publishBoard marshals a board for the leaderboard event stream.
func publishBoard(bus *events.Bus, mode string, entries []leaderboard.Entry) {
	payload, err := json.Marshal(boardView{Mode: mode, Entries: entries})
	if err != nil {
		log.Printf("[Leaderboard] Marshal error: %v\n", err)
		return
	}
	if !bus.PublishLeaderboard(events.LeaderboardUpdate{Mode: mode, Payload: payload}) {
		log.Println("[Leaderboard] Update buffer full, dropping event")
	}
}

func (s *Server) handleLeaderboards(w http.ResponseWriter, r *http.Request) {
	lb := s.Shared.Leaderboard
	boards := make([]boardView, 0)
	for _, mode := range lb.Modes() {
		boards = append(boards, boardView{Mode: mode, Entries: lb.Board(mode)})
	}
	writeJSON(w, http.StatusOK, boards)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	entries := s.Shared.Leaderboard.Board(mode)
	if entries == nil {
		entries = []leaderboard.Entry{}
	}
	writeJSON(w, http.StatusOK, boardView{Mode: mode, Entries: entries})
}

func (s *Server) handleClearLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode := r.PathValue("mode")
	s.Shared.Leaderboard.Clear(mode)
	if s.Bus != nil && mode != leaderboard.AllModes {
		publishBoard(s.Bus, mode, []leaderboard.Entry{})
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Shared.Lifetime.Get())
}

type achievementsView struct {
	Unlocked int                   `json:"unlocked"`
	Total    int                   `json:"total"`
	List     []achievements.Status `json:"achievements"`
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	store := s.Shared.Achievements
	list := store.List()
	writeJSON(w, http.StatusOK, achievementsView{Unlocked: store.UnlockedCount(), Total: len(list), List: list})
}

type difficultyView struct {
	Level  string           `json:"level"`
	Config difficulty.Level `json:"config"`
	Levels []string         `json:"levels"`
}

func (s *Server) difficultyView() difficultyView {
	d := s.Shared.Difficulty
	return difficultyView{Level: d.Level(), Config: d.Config(), Levels: difficulty.Order}
}

func (s *Server) handleGetDifficulty(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.difficultyView())
}

func (s *Server) handlePutDifficulty(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Level string `json:"level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := s.Shared.Difficulty.Set(strings.ToUpper(body.Level)); err != nil {
		if errors.Is(err, difficulty.ErrUnknownLevel) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to set difficulty", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s.difficultyView())
}

func (s *Server) handleGetSound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Shared.Sound.Settings())
}

func (s *Server) handlePutSound(w http.ResponseWriter, r *http.Request) {
	settings := s.Shared.Sound.Settings()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.Shared.Sound.Update(settings))
}

// handleSound renders a cue preview at the configured sound volume, or at
// ?volume= when given.
func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".wav")
	if !ok {
		http.Error(w, "Sound not found", http.StatusNotFound)
		return
	}
	cue, ok := sound.Lookup(name)
	if !ok {
		http.Error(w, "Sound not found", http.StatusNotFound)
		return
	}

	volume := s.Shared.Sound.Settings().SoundVolume
	if name == string(sound.MusicStart) {
		volume = s.Shared.Sound.Settings().MusicVolume
	}
	if v := r.URL.Query().Get("volume"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			http.Error(w, "Invalid volume", http.StatusBadRequest)
			return
		}
		volume = f
	}

	var buf sound.Buffer
	if err := sound.WriteWAV(&buf, cue, volume); err != nil {
		log.Printf("[Sound] %v\n", err)
		http.Error(w, "Failed to render sound", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf.Bytes())))
	w.Write(buf.Bytes())
}

// handleClearData wipes achievements, lifetime stats, leaderboards and the
// game archive.
func (s *Server) handleClearData(w http.ResponseWriter, r *http.Request) {
	s.Shared.Achievements.Reset()
	s.Shared.Lifetime.Reset()
	s.Shared.Leaderboard.Clear(leaderboard.AllModes)
	if s.Archive != nil {
		if err := s.Archive.ClearGames(); err != nil {
			log.Printf("[DB] ClearGames error: %v\n", err)
		}
	}
	log.Println("[Store] All player data cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	if s.Archive == nil {
		http.Error(w, "Game archive requires a database", http.StatusServiceUnavailable)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 100 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}
	games, err := s.Archive.RecentGames(r.URL.Query().Get("mode"), limit)
	if err != nil {
		log.Printf("[DB] RecentGames error: %v\n", err)
		http.Error(w, "Failed to load games", http.StatusInternalServerError)
		return
	}
	if games == nil {
		games = []game.Record{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (s *Server) handleGameSummaries(w http.ResponseWriter, r *http.Request) {
	if s.Archive == nil {
		http.Error(w, "Game archive requires a database", http.StatusServiceUnavailable)
		return
	}
	sums, err := s.Archive.Summaries()
	if err != nil {
		log.Printf("[DB] Summaries error: %v\n", err)
		http.Error(w, "Failed to load summaries", http.StatusInternalServerError)
		return
	}
	if sums == nil {
		sums = []game.Summary{}
	}
	writeJSON(w, http.StatusOK, sums)
}
