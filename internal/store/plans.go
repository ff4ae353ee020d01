package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrPlanNotFound indicates a requested mission plan is missing.
var ErrPlanNotFound = errors.New("mission plan not found")

// #region plans
// Plan is a named, reusable task sequence.
type Plan struct {
	Name      string
	Sequence  string
	CreatedAt time.Time
}

// AddPlan stores a named task sequence, replacing any previous plan
// with the same name. The sequence must already be validated by the
// caller; the store does not interpret task codes.
func (s *Store) AddPlan(name, sequence string) error {
	_, err := s.db.Exec(
		`INSERT INTO mission_plans (name, sequence, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET sequence = excluded.sequence, created_at = excluded.created_at`,
		name, sequence, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("add plan %s: %w", name, err)
	}
	return nil
}

// GetPlan retrieves a stored plan by name.
func (s *Store) GetPlan(name string) (Plan, error) {
	var p Plan
	var createdStr string
	err := s.db.QueryRow(
		`SELECT name, sequence, created_at FROM mission_plans WHERE name = ?`, name,
	).Scan(&p.Name, &p.Sequence, &createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, fmt.Errorf("%w: %s", ErrPlanNotFound, name)
	}
	if err != nil {
		return Plan{}, fmt.Errorf("get plan %s: %w", name, err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return p, nil
}

// ListPlans returns every stored plan ordered by name.
func (s *Store) ListPlans() ([]Plan, error) {
	rows, err := s.db.Query(`SELECT name, sequence, created_at FROM mission_plans ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		var createdStr string
		if err := rows.Scan(&p.Name, &p.Sequence, &createdStr); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
// #endregion plans
