package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"gokwh/internal/fuzzy"
	"gokwh/meter"
	"gokwh/profile"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrMeterNotFound = errors.New("meter not found")

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS meters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	display_name TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	site TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(normalized_name)
);

CREATE TABLE IF NOT EXISTS daily_profiles (
	meter_id INTEGER NOT NULL REFERENCES meters(id),
	date_key TEXT NOT NULL,
	day_of_week INTEGER NOT NULL,
	is_weekend INTEGER NOT NULL,
	total_energy_kwh REAL NOT NULL,
	peak_power REAL NOT NULL,
	peak_hour INTEGER NOT NULL,
	hourly_profile TEXT NOT NULL,
	sample_count INTEGER NOT NULL,
	PRIMARY KEY (meter_id, date_key)
);

CREATE TABLE IF NOT EXISTS monthly_profiles (
	meter_id INTEGER NOT NULL REFERENCES meters(id),
	month_key TEXT NOT NULL,
	total_energy_kwh REAL NOT NULL,
	distinct_day_count INTEGER NOT NULL,
	avg_daily_kwh REAL NOT NULL,
	peak_power REAL NOT NULL,
	sample_count INTEGER NOT NULL,
	PRIMARY KEY (meter_id, month_key)
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateMeter(displayName, site string) (meter.Identity, error) {
	normalized := fuzzy.Normalize(displayName)
	result, err := s.db.Exec(
		`INSERT INTO meters (display_name, normalized_name, site) VALUES (?, ?, ?);`,
		displayName, normalized, site,
	)
	if err != nil {
		return meter.Identity{}, fmt.Errorf("insert meter %q: %w", displayName, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return meter.Identity{}, fmt.Errorf("meter id for %q: %w", displayName, err)
	}
	return meter.Identity{ID: id, DisplayName: displayName, NormalizedName: normalized, Site: site}, nil
}

func (s *SQLiteStore) FindMeterByID(id int64) (*meter.Identity, error) {
	row := s.db.QueryRow(
		`SELECT id, display_name, normalized_name, site FROM meters WHERE id = ?;`, id,
	)
	var identity meter.Identity
	err := row.Scan(&identity.ID, &identity.DisplayName, &identity.NormalizedName, &identity.Site)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMeterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find meter %d: %w", id, err)
	}
	return &identity, nil
}

func (s *SQLiteStore) ListMeterIdentities(siteFilter string) ([]meter.Identity, error) {
	query := `SELECT id, display_name, normalized_name, site FROM meters ORDER BY id;`
	args := []any{}
	if siteFilter != "" {
		query = `SELECT id, display_name, normalized_name, site FROM meters WHERE site = ? ORDER BY id;`
		args = append(args, siteFilter)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meters: %w", err)
	}
	defer rows.Close()

	identities := make([]meter.Identity, 0, 16)
	for rows.Next() {
		var identity meter.Identity
		if err := rows.Scan(&identity.ID, &identity.DisplayName, &identity.NormalizedName, &identity.Site); err != nil {
			return nil, fmt.Errorf("scan meter: %w", err)
		}
		identities = append(identities, identity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meters: %w", err)
	}

	return identities, nil
}

// UpsertProfiles replaces the meter's profile rows for the covered days and
// months in one transaction. Profiles are recomputed from scratch per file,
// so replacement is last-writer-wins by design.
func (s *SQLiteStore) UpsertProfiles(meterID int64, daily []profile.DailyProfile, monthly []profile.MonthlyProfile) error {
	if _, err := s.FindMeterByID(meterID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	const dailyStmt = `
INSERT OR REPLACE INTO daily_profiles (
	meter_id, date_key, day_of_week, is_weekend,
	total_energy_kwh, peak_power, peak_hour, hourly_profile, sample_count
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`

	stmt, err := tx.Prepare(dailyStmt)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare daily upsert: %w", err)
	}
	for _, day := range daily {
		hourly, marshalErr := json.Marshal(day.HourlyProfile)
		if marshalErr != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("marshal hourly profile for %s: %w", day.DateKey, marshalErr)
		}
		if _, err := stmt.Exec(
			meterID, day.DateKey, day.DayOfWeek, boolToInt(day.IsWeekend),
			day.TotalEnergyKwh, day.PeakPower, day.PeakHour, string(hourly), day.SampleCount,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("upsert daily profile %s: %w", day.DateKey, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("close daily statement: %w", err)
	}

	const monthlyStmt = `
INSERT OR REPLACE INTO monthly_profiles (
	meter_id, month_key, total_energy_kwh, distinct_day_count,
	avg_daily_kwh, peak_power, sample_count
) VALUES (?, ?, ?, ?, ?, ?, ?);`

	for _, month := range monthly {
		if _, err := tx.Exec(
			monthlyStmt,
			meterID, month.MonthKey, month.TotalEnergyKwh, month.DistinctDayCount,
			month.AvgDailyKwh, month.PeakPower, month.SampleCount,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert monthly profile %s: %w", month.MonthKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profiles: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadDailyProfiles(meterID int64) ([]profile.DailyProfile, error) {
	rows, err := s.db.Query(`
SELECT date_key, day_of_week, is_weekend, total_energy_kwh,
	peak_power, peak_hour, hourly_profile, sample_count
FROM daily_profiles WHERE meter_id = ? ORDER BY date_key;`, meterID)
	if err != nil {
		return nil, fmt.Errorf("load daily profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]profile.DailyProfile, 0, 64)
	for rows.Next() {
		var day profile.DailyProfile
		var weekend int
		var hourly string
		if err := rows.Scan(
			&day.DateKey, &day.DayOfWeek, &weekend, &day.TotalEnergyKwh,
			&day.PeakPower, &day.PeakHour, &hourly, &day.SampleCount,
		); err != nil {
			return nil, fmt.Errorf("scan daily profile: %w", err)
		}
		day.IsWeekend = weekend != 0
		if err := json.Unmarshal([]byte(hourly), &day.HourlyProfile); err != nil {
			return nil, fmt.Errorf("unmarshal hourly profile for %s: %w", day.DateKey, err)
		}
		profiles = append(profiles, day)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily profiles: %w", err)
	}

	return profiles, nil
}

func (s *SQLiteStore) LoadMonthlyProfiles(meterID int64) ([]profile.MonthlyProfile, error) {
	rows, err := s.db.Query(`
SELECT month_key, total_energy_kwh, distinct_day_count, avg_daily_kwh, peak_power, sample_count
FROM monthly_profiles WHERE meter_id = ? ORDER BY month_key;`, meterID)
	if err != nil {
		return nil, fmt.Errorf("load monthly profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]profile.MonthlyProfile, 0, 12)
	for rows.Next() {
		var month profile.MonthlyProfile
		if err := rows.Scan(
			&month.MonthKey, &month.TotalEnergyKwh, &month.DistinctDayCount,
			&month.AvgDailyKwh, &month.PeakPower, &month.SampleCount,
		); err != nil {
			return nil, fmt.Errorf("scan monthly profile: %w", err)
		}
		profiles = append(profiles, month)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly profiles: %w", err)
	}

	return profiles, nil
}

func (s *SQLiteStore) DeleteMeter(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	for _, stmt := range []string{
		`DELETE FROM daily_profiles WHERE meter_id = ?;`,
		`DELETE FROM monthly_profiles WHERE meter_id = ?;`,
		`DELETE FROM meters WHERE id = ?;`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete meter %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
