package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"gokwh/profile"
	"gokwh/storage"
)

func newTestServer(t *testing.T) (*Server, int64) {
	t.Helper()

	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "gokwh.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	created, err := store.CreateMeter("Pump House", "plant-a")
	if err != nil {
		t.Fatalf("create meter: %v", err)
	}

	daily := make([]profile.DailyProfile, 0, 3)
	for day := 14; day <= 16; day++ {
		daily = append(daily, profile.DailyProfile{
			DateKey:        fmt.Sprintf("2024-01-%02d", day),
			TotalEnergyKwh: float64(day),
			SampleCount:    48,
		})
	}
	monthly := []profile.MonthlyProfile{{
		MonthKey:         "2024-01",
		TotalEnergyKwh:   45,
		DistinctDayCount: 25,
		AvgDailyKwh:      1.8,
		SampleCount:      144,
	}}
	if err := store.UpsertProfiles(created.ID, daily, monthly); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	return NewServer(store), created.ID
}

func doGet(t *testing.T, server *Server, url string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, url, nil))
	return recorder
}

func TestHandleMeters(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	recorder := doGet(t, server, "/api/meters")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d", recorder.Code)
	}

	var meters []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &meters); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(meters) != 1 || meters[0].Name != "Pump House" {
		t.Fatalf("unexpected meters: %+v", meters)
	}
}

func TestHandleDayDefaultSelection(t *testing.T) {
	t.Parallel()

	server, id := newTestServer(t)
	recorder := doGet(t, server, fmt.Sprintf("/api/meters/%d/day", id))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d: %s", recorder.Code, recorder.Body.String())
	}

	var day profile.DailyProfile
	if err := json.Unmarshal(recorder.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if day.DateKey != "2024-01-16" {
		t.Fatalf("default selection should be most recent day, got %s", day.DateKey)
	}
}

func TestHandleDayNavigation(t *testing.T) {
	t.Parallel()

	server, id := newTestServer(t)
	recorder := doGet(t, server, fmt.Sprintf("/api/meters/%d/day?date=2024-01-15&step=-1", id))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d: %s", recorder.Code, recorder.Body.String())
	}

	var day profile.DailyProfile
	if err := json.Unmarshal(recorder.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if day.DateKey != "2024-01-14" {
		t.Fatalf("select+step should land on 2024-01-14, got %s", day.DateKey)
	}

	// Stepping past the start clamps instead of wrapping.
	recorder = doGet(t, server, fmt.Sprintf("/api/meters/%d/day?date=2024-01-14&step=-5", id))
	if err := json.Unmarshal(recorder.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if day.DateKey != "2024-01-14" {
		t.Fatalf("step past start should clamp, got %s", day.DateKey)
	}
}

func TestHandleDayUnknownDate(t *testing.T) {
	t.Parallel()

	server, id := newTestServer(t)
	recorder := doGet(t, server, fmt.Sprintf("/api/meters/%d/day?date=2030-01-01", id))
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("want 404 for unknown date, got %d", recorder.Code)
	}
}

func TestHandleMonth(t *testing.T) {
	t.Parallel()

	server, id := newTestServer(t)
	recorder := doGet(t, server, fmt.Sprintf("/api/meters/%d/month", id))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d: %s", recorder.Code, recorder.Body.String())
	}

	var month profile.MonthlyProfile
	if err := json.Unmarshal(recorder.Body.Bytes(), &month); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if month.MonthKey != "2024-01" {
		t.Fatalf("unexpected month: %s", month.MonthKey)
	}
}

func TestHandleUnknownMeter(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	recorder := doGet(t, server, "/api/meters/999/profile")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", recorder.Code)
	}
}

func TestHandleProfile(t *testing.T) {
	t.Parallel()

	server, id := newTestServer(t)
	recorder := doGet(t, server, fmt.Sprintf("/api/meters/%d/profile", id))
	if recorder.Code != http.StatusOK {
		t.Fatalf("status %d: %s", recorder.Code, recorder.Body.String())
	}

	var view struct {
		Meter   string                   `json:"meter"`
		Daily   []profile.DailyProfile   `json:"daily"`
		Monthly []profile.MonthlyProfile `json:"monthly"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Meter != "Pump House" || len(view.Daily) != 3 || len(view.Monthly) != 1 {
		t.Fatalf("unexpected profile view: meter=%s daily=%d monthly=%d", view.Meter, len(view.Daily), len(view.Monthly))
	}
}
