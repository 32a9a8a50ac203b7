// internal/storage/sqlite.go
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"diet-planner/internal/models"
)

var ErrNotFound = errors.New("not found")

// SQLiteStorage keeps whole profiles and generated meals as JSON documents,
// with a few columns pulled out for filtering.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; sqlite serialises anyway.
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS profiles (
        id TEXT PRIMARY KEY,
        data TEXT NOT NULL,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS recommendations (
        id TEXT PRIMARY KEY,
        profile_id TEXT NOT NULL,
        meal_type TEXT NOT NULL,
        total_carbs REAL NOT NULL,
        total_calories REAL NOT NULL,
        data TEXT NOT NULL,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL,
        FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS daily_plans (
        id TEXT PRIMARY KEY,
        profile_id TEXT NOT NULL,
        data TEXT NOT NULL,
        created_at TEXT NOT NULL,
        FOREIGN KEY (profile_id) REFERENCES profiles(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_recommendations_profile ON recommendations(profile_id, created_at);
    CREATE INDEX IF NOT EXISTS idx_daily_plans_profile ON daily_plans(profile_id, created_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveProfile inserts or replaces a profile. ID and timestamps must be set.
func (s *SQLiteStorage) SaveProfile(p *models.UserProfile) error {
	if p.ID == "" {
		return fmt.Errorf("profile id is required")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
        INSERT INTO profiles (id, data, created_at, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
    `
	_, err = s.db.Exec(query, p.ID, string(data), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetProfile(id string) (*models.UserProfile, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM profiles WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", id, err)
	}
	return &p, nil
}

// SaveRecommendation inserts a recommendation or replaces it after a
// substitution or portion change.
func (s *SQLiteStorage) SaveRecommendation(r *models.MealRecommendation) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation: %w", err)
	}

	query := `
        INSERT INTO recommendations (id, profile_id, meal_type, total_carbs, total_calories, data, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            total_carbs = excluded.total_carbs,
            total_calories = excluded.total_calories,
            data = excluded.data,
            updated_at = excluded.updated_at
    `
	_, err = s.db.Exec(query,
		r.ID, r.ProfileID, string(r.MealType), r.TotalCarbs, r.TotalCalories,
		string(data), formatTime(r.CreatedAt), formatTime(r.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) GetRecommendation(id string) (*models.MealRecommendation, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM recommendations WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation: %w", err)
	}
	return decodeRecommendation(data)
}

// GetRecommendations lists a profile's recommendations, newest first. An
// empty mealType matches every slot.
func (s *SQLiteStorage) GetRecommendations(profileID string, mealType models.Slot, limit int) ([]*models.MealRecommendation, error) {
	query := `
        SELECT data
        FROM recommendations
        WHERE profile_id = ?
    `
	args := []interface{}{profileID}

	if mealType != "" {
		query += " AND meal_type = ?"
		args = append(args, string(mealType))
	}

	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	recs := []*models.MealRecommendation{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		r, err := decodeRecommendation(data)
		if err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recommendations: %w", err)
	}

	return recs, nil
}

func (s *SQLiteStorage) SaveDailyPlan(plan *models.DailyPlan) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal daily plan: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO daily_plans (id, profile_id, data, created_at) VALUES (?, ?, ?, ?)`,
		plan.ID, plan.ProfileID, string(data), formatTime(plan.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to save daily plan: %w", err)
	}
	return nil
}

// GetLatestDailyPlan returns the most recent plan generated for a profile.
func (s *SQLiteStorage) GetLatestDailyPlan(profileID string) (*models.DailyPlan, error) {
	var data string
	err := s.db.QueryRow(`
        SELECT data FROM daily_plans
        WHERE profile_id = ?
        ORDER BY created_at DESC
        LIMIT 1`, profileID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("daily plan for %s: %w", profileID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query daily plan: %w", err)
	}

	var plan models.DailyPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to decode daily plan: %w", err)
	}
	return &plan, nil
}

func decodeRecommendation(data string) (*models.MealRecommendation, error) {
	var r models.MealRecommendation
	if err := json.Unmarshal([]byte(data), &r); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation: %w", err)
	}
	return &r, nil
}

// Fixed-width UTC timestamps so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
