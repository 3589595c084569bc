package leaderboard

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

const dayFormat = "2006-01-02"

// Server exposes the leaderboard HTTP API:
//
//	GET /results?user=X&time=N[&date=YYYY-MM-DD]  record a completion time
//	GET /scores?date=YYYY-MM-DD                   a day's scoreboard
//	GET /dates                                    days with results
//
// Results arrive as GETs because the puzzle page fires them as beacons.
type Server struct {
	store Store
	cache *Cache
	now   func() time.Time
	mux   *http.ServeMux
}

// NewServer wires handlers over a store and an optional cache (nil to
// disable caching).
func NewServer(store Store, cache *Cache) *Server {
	s := &Server{store: store, cache: cache, now: time.Now, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /results", s.handleResults)
	s.mux.HandleFunc("GET /scores", s.handleScores)
	s.mux.HandleFunc("GET /dates", s.handleDates)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("user")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameter: user")
		return
	}
	timeParam := r.URL.Query().Get("time")
	if timeParam == "" {
		writeError(w, http.StatusBadRequest, "Missing required parameter: time")
		return
	}
	seconds, err := strconv.Atoi(timeParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Parameter time must be an integer")
		return
	}

	day := r.URL.Query().Get("date")
	if day == "" {
		day = s.now().Format(dayFormat)
	} else if _, err := time.Parse(dayFormat, day); err != nil {
		writeError(w, http.StatusBadRequest, "Parameter date must be YYYY-MM-DD")
		return
	}

	if err := s.store.Upsert(r.Context(), day, username, seconds); err != nil {
		log.Printf("store result for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.cache.Invalidate(day)

	log.Printf("Stored result for user %s: %d at %s", username, seconds, day)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Result stored for user " + username,
		"data": map[string]any{
			"user":            username,
			"time":            seconds,
			"submission_date": day,
		},
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("date")
	if day == "" {
		day = s.now().Format(dayFormat)
	} else if _, err := time.Parse(dayFormat, day); err != nil {
		writeError(w, http.StatusBadRequest, "Parameter date must be YYYY-MM-DD")
		return
	}

	if scores, ok := s.cache.Get(day); ok {
		writeJSON(w, http.StatusOK, scores)
		return
	}

	scores, err := s.store.Scores(r.Context(), day)
	if err != nil {
		log.Printf("load scores for %s: %v", day, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.cache.Set(day, scores)
	writeJSON(w, http.StatusOK, scores)
}

func (s *Server) handleDates(w http.ResponseWriter, r *http.Request) {
	dates, err := s.store.Dates(r.Context())
	if err != nil {
		log.Printf("load dates: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if dates == nil {
		dates = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"dates": dates})
}
