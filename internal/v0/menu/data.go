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
package menu

import (
	"context"
	"database/sql"
	"time"

	"canteen/internal/plan"
)

// Repository reads the menu catalog. The canteen runs a fixed weekly
// rotation: what is served on a date depends only on its weekday.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new menu repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DailyMenu returns the menu for one calendar day (YYYY-MM-DD).
func (r *Repository) DailyMenu(ctx context.Context, day string) (*plan.DayMenu, error) {
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.name, i.description, rot.meal_type
		FROM menu_rotation rot
		JOIN menu_items i ON i.id = rot.item_id
		WHERE rot.weekday = ?
		ORDER BY rot.meal_type, i.id`, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &plan.DayMenu{
		Date:  day,
		Meals: make(map[plan.MealType][]plan.MenuItem, len(mealOrder)),
	}
	// Avoid nil slices in the JSON response
	for _, mt := range mealOrder {
		result.Meals[mt] = []plan.MenuItem{}
	}

	for rows.Next() {
		var item plan.MenuItem
		var mealType string
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &mealType); err != nil {
			return nil, err
		}
		mt := plan.MealType(mealType)
		result.Meals[mt] = append(result.Meals[mt], item)
	}
	return result, rows.Err()
}

// WeeklyMenu returns 7 consecutive day menus starting at start (a Monday).
func (r *Repository) WeeklyMenu(ctx context.Context, start string) ([]plan.DayMenu, error) {
	first, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, err
	}

	menus := make([]plan.DayMenu, 0, 7)
	for i := 0; i < 7; i++ {
		day, err := r.DailyMenu(ctx, plan.DateKey(first.AddDate(0, 0, i)))
		if err != nil {
			return nil, err
		}
		menus = append(menus, *day)
	}
	return menus, nil
}

// CreateItem adds a new item to the catalog
func (r *Repository) CreateItem(ctx context.Context, item Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, description, meal_type) VALUES (?, ?, ?, ?)`,
		item.ID, item.Name, item.Description, item.MealType)
	return err
}

// SetRotation replaces the rotation entries for one weekday in one transaction.
func (r *Repository) SetRotation(ctx context.Context, weekday int, entries []RotationEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM menu_rotation WHERE weekday = ?", weekday); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO menu_rotation (weekday, meal_type, item_id) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, weekday, e.MealType, e.ItemID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
