//Canteen is the meal-ordering portal backend for Karmic Solutions employees. Daily and weekly meal planning against the on-site canteen menu, with SMS reminders.
//Canteen Copyright (C) 2026 Karmic Solutions
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
package selections

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"canteen/internal/plan"
)

// Store is the authoritative selection persistence, keyed by
// (employee_id, date).
type Store struct {
	db *sql.DB
}

// NewStore creates the selection store over the canteen database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, employeeID, date string) (*plan.StoredSelection, error) {
	var remote bool
	var mealsJSON, passCode string
	err := s.db.QueryRowContext(ctx, `
		SELECT remote, meals, pass_code FROM daily_selections
		WHERE employee_id = ? AND date = ?
	`, employeeID, date).Scan(&remote, &mealsJSON, &passCode)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	meals := plan.MealSelection{}
	if mealsJSON != "" {
		if err := json.Unmarshal([]byte(mealsJSON), &meals); err != nil {
			return nil, err
		}
	}
	return &plan.StoredSelection{
		DailySelection: plan.DailySelection{Date: date, Remote: remote, Meals: meals},
		PassCode:       passCode,
	}, nil
}

func (s *Store) SubmitDaily(ctx context.Context, employeeID string, sel plan.DailySelection, passCode string) error {
	return s.upsert(ctx, s.db, employeeID, sel, passCode)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) upsert(ctx context.Context, db execer, employeeID string, sel plan.DailySelection, passCode string) error {
	meals := sel.Meals
	if meals == nil {
		meals = plan.MealSelection{}
	}
	mealsJSON, err := json.Marshal(meals)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO daily_selections (employee_id, date, remote, meals, pass_code, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			remote = excluded.remote,
			meals = excluded.meals,
			pass_code = excluded.pass_code,
			updated_at = CURRENT_TIMESTAMP
	`, employeeID, sel.Date, sel.Remote, string(mealsJSON), passCode)
	return err
}

// SubmitWeekly writes the whole week in one transaction, so a partially
// applied batch never becomes visible.
func (s *Store) SubmitWeekly(ctx context.Context, employeeID string, week plan.WeeklySelection) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, sel := range week {
		if err := s.upsert(ctx, tx, employeeID, sel, ""); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) DeleteDaily(ctx context.Context, employeeID, date string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM daily_selections WHERE employee_id = ? AND date = ?
	`, employeeID, date)
	return err
}

// DeleteWeekly removes every selection in the week starting at weekStart.
func (s *Store) DeleteWeekly(ctx context.Context, employeeID, weekStart string) error {
	start, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return err
	}
	end := plan.DateKey(start.AddDate(0, 0, 6))
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM daily_selections WHERE employee_id = ? AND date BETWEEN ? AND ?
	`, employeeID, weekStart, end)
	return err
}

// Cache is the rehydration hint, a key-value table keyed by the same
// (employee_id, date) tuple as the store.
type Cache struct {
	db *sql.DB
}

// NewCache creates the selection cache over the canteen database
func NewCache(db *sql.DB) *Cache {
	return &Cache{db: db}
}

func (c *Cache) Get(ctx context.Context, employeeID, date string) (*plan.StoredSelection, error) {
	var payload string
	err := c.db.QueryRowContext(ctx, `
		SELECT payload FROM selection_cache WHERE employee_id = ? AND date = ?
	`, employeeID, date).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sel plan.StoredSelection
	if err := json.Unmarshal([]byte(payload), &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

func (c *Cache) Put(ctx context.Context, employeeID, date string, sel plan.StoredSelection) error {
	payload, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx, `
		INSERT INTO selection_cache (employee_id, date, payload, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(employee_id, date) DO UPDATE SET
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`, employeeID, date, string(payload))
	return err
}

func (c *Cache) Delete(ctx context.Context, employeeID, date string) error {
	_, err := c.db.ExecContext(ctx, `
		DELETE FROM selection_cache WHERE employee_id = ? AND date = ?
	`, employeeID, date)
	return err
}

// Ledger records dispatched reminders. Presence of a row means sent.
type Ledger struct {
	db *sql.DB
}

// NewLedger creates the reminder ledger over the canteen database
func NewLedger(db *sql.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) Sent(ctx context.Context, employeeID, date string, hour int) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reminder_ledger
		WHERE employee_id = ? AND date = ? AND hour = ?
	`, employeeID, date, hour).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *Ledger) MarkSent(ctx context.Context, employeeID, date string, hour int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO reminder_ledger (employee_id, date, hour) VALUES (?, ?, ?)
	`, employeeID, date, hour)
	return err
}
