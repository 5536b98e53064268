// Package web serves a localhost-only single-user JSON viewer over the
// meter registry and stored profiles; it intentionally has no auth in
// this mode.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gokwh/profile"
	"gokwh/storage"
)

type Server struct {
	store *storage.SQLiteStore
	mux   *http.ServeMux
}

func NewServer(store *storage.SQLiteStore) *Server {
	server := &Server{store: store, mux: http.NewServeMux()}
	server.mux.HandleFunc("GET /api/meters", server.handleMeters)
	server.mux.HandleFunc("GET /api/meters/{id}/profile", server.handleProfile)
	server.mux.HandleFunc("GET /api/meters/{id}/day", server.handleDay)
	server.mux.HandleFunc("GET /api/meters/{id}/month", server.handleMonth)
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleMeters(w http.ResponseWriter, r *http.Request) {
	identities, err := s.store.ListMeterIdentities(r.URL.Query().Get("site"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	type meterView struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
		Site string `json:"site"`
	}
	views := make([]meterView, 0, len(identities))
	for _, identity := range identities {
		views = append(views, meterView{ID: identity.ID, Name: identity.DisplayName, Site: identity.Site})
	}
	writeJSON(w, views)
}

type profileView struct {
	Meter   string                   `json:"meter"`
	Daily   []profile.DailyProfile   `json:"daily"`
	Monthly []profile.MonthlyProfile `json:"monthly"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	identity, set, ok := s.loadMeterSet(w, r)
	if !ok {
		return
	}
	writeJSON(w, profileView{Meter: identity, Daily: set.Daily, Monthly: set.Monthly})
}

// handleDay exposes day navigation: ?date= selects a specific day, ?step=
// advances the cursor by the given offset with clamping at both ends. With
// neither parameter the default selection (most recent day) is returned.
func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	_, set, ok := s.loadMeterSet(w, r)
	if !ok {
		return
	}

	if date := r.URL.Query().Get("date"); date != "" {
		if !set.SelectDay(date) {
			writeError(w, http.StatusNotFound, fmt.Errorf("no profile for date %s", date))
			return
		}
	}
	if err := applyStep(r, set.AdvanceDay); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	day := set.SelectedDay()
	if day == nil {
		writeError(w, http.StatusNotFound, errors.New("meter has no daily profiles"))
		return
	}
	writeJSON(w, day)
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	_, set, ok := s.loadMeterSet(w, r)
	if !ok {
		return
	}

	if month := r.URL.Query().Get("month"); month != "" {
		if !set.SelectMonth(month) {
			writeError(w, http.StatusNotFound, fmt.Errorf("no profile for month %s", month))
			return
		}
	}
	if err := applyStep(r, set.AdvanceMonth); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	month := set.SelectedMonth()
	if month == nil {
		writeError(w, http.StatusNotFound, errors.New("meter has no monthly profiles"))
		return
	}
	writeJSON(w, month)
}

func (s *Server) loadMeterSet(w http.ResponseWriter, r *http.Request) (string, *profile.Set, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid meter id %q", r.PathValue("id")))
		return "", nil, false
	}

	identity, err := s.store.FindMeterByID(id)
	if errors.Is(err, storage.ErrMeterNotFound) {
		writeError(w, http.StatusNotFound, err)
		return "", nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return "", nil, false
	}

	daily, err := s.store.LoadDailyProfiles(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return "", nil, false
	}
	monthly, err := s.store.LoadMonthlyProfiles(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return "", nil, false
	}

	return identity.DisplayName, profile.NewSet(daily, monthly), true
}

func applyStep(r *http.Request, advance func(int)) error {
	raw := r.URL.Query().Get("step")
	if raw == "" {
		return nil
	}
	step, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid step %q", raw)
	}
	advance(step)
	return nil
}

func writeJSON(w http.ResponseWriter, value any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
