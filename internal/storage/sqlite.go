// internal/storage/sqlite.go
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"mcp-meal-plan/internal/models"
)

// ErrNotFound is returned when a meal plan does not exist.
var ErrNotFound = errors.New("meal plan not found")

// timeFormat is fixed width so timestamps sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite allows one writer; a single connection keeps transactions simple
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

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS meal_plans (
        id TEXT PRIMARY KEY,
        plan_name TEXT NOT NULL,
        created_at TEXT NOT NULL,
        updated_at TEXT NOT NULL
    );

    CREATE TABLE IF NOT EXISTS plan_meals (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        plan_id TEXT NOT NULL,
        day INTEGER NOT NULL,
        position INTEGER NOT NULL,
        meal_name TEXT NOT NULL,
        category TEXT NOT NULL,
        FOREIGN KEY (plan_id) REFERENCES meal_plans(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS plan_ingredients (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        meal_id INTEGER NOT NULL,
        position INTEGER NOT NULL,
        name TEXT NOT NULL,
        amount TEXT NOT NULL DEFAULT '',
        unit TEXT NOT NULL DEFAULT '',
        FOREIGN KEY (meal_id) REFERENCES plan_meals(id) ON DELETE CASCADE
    );

    CREATE INDEX IF NOT EXISTS idx_meal_plans_created_at ON meal_plans(created_at);
    CREATE INDEX IF NOT EXISTS idx_plan_meals_plan_id ON plan_meals(plan_id);
    CREATE INDEX IF NOT EXISTS idx_plan_ingredients_meal_id ON plan_ingredients(meal_id);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) SaveMealPlan(ctx context.Context, plan *models.MealPlan) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	planQuery := `
        INSERT INTO meal_plans (id, plan_name, created_at, updated_at)
        VALUES (?, ?, ?, ?)
    `
	_, err = tx.ExecContext(ctx, planQuery,
		plan.ID, plan.PlanName,
		plan.CreatedAt.UTC().Format(timeFormat),
		plan.UpdatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to insert meal plan: %w", err)
	}

	mealQuery := `
        INSERT INTO plan_meals (plan_id, day, position, meal_name, category)
        VALUES (?, ?, ?, ?, ?)
    `
	ingredientQuery := `
        INSERT INTO plan_ingredients (meal_id, position, name, amount, unit)
        VALUES (?, ?, ?, ?, ?)
    `
	for _, day := range plan.Days {
		for pos, meal := range day.Meals {
			res, err := tx.ExecContext(ctx, mealQuery,
				plan.ID, day.Day, pos, meal.MealName, string(meal.Category))
			if err != nil {
				return fmt.Errorf("failed to insert meal: %w", err)
			}
			mealID, err := res.LastInsertId()
			if err != nil {
				return fmt.Errorf("failed to read meal id: %w", err)
			}

			for ipos, ing := range meal.Ingredients {
				_, err = tx.ExecContext(ctx, ingredientQuery,
					mealID, ipos, ing.Name, ing.Amount, ing.Unit)
				if err != nil {
					return fmt.Errorf("failed to insert ingredient: %w", err)
				}
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStorage) GetMealPlan(ctx context.Context, id string) (*models.MealPlan, error) {
	query := `
        SELECT id, plan_name, created_at, updated_at
        FROM meal_plans
        WHERE id = ?
    `
	plan, err := scanPlan(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadMealsForPlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to load meals for plan %s: %w", plan.ID, err)
	}
	return plan, nil
}

func (s *SQLiteStorage) ListMealPlans(ctx context.Context, limit int) ([]*models.MealPlan, error) {
	query := `
        SELECT id, plan_name, created_at, updated_at
        FROM meal_plans
        ORDER BY created_at DESC
        LIMIT ?
    `

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query meal plans: %w", err)
	}

	plans := []*models.MealPlan{}
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}
	// release the only connection before loading meals
	rows.Close()

	for _, plan := range plans {
		if err := s.loadMealsForPlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("failed to load meals for plan %s: %w", plan.ID, err)
		}
	}

	return plans, nil
}

func (s *SQLiteStorage) DeleteMealPlan(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        DELETE FROM plan_ingredients
        WHERE meal_id IN (SELECT id FROM plan_meals WHERE plan_id = ?)
    `, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredients: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM plan_meals WHERE plan_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete meals: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read deleted rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (*models.MealPlan, error) {
	plan := &models.MealPlan{}
	var createdAtStr, updatedAtStr string

	if err := row.Scan(&plan.ID, &plan.PlanName, &createdAtStr, &updatedAtStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan meal plan: %w", err)
	}

	var err error
	if plan.CreatedAt, err = time.Parse(timeFormat, createdAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if plan.UpdatedAt, err = time.Parse(timeFormat, updatedAtStr); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return plan, nil
}

type mealRow struct {
	id   int64
	day  int
	meal models.Meal
}

func (s *SQLiteStorage) loadMealsForPlan(ctx context.Context, plan *models.MealPlan) error {
	query := `
        SELECT id, day, meal_name, category
        FROM plan_meals
        WHERE plan_id = ?
        ORDER BY day, position
    `

	rows, err := s.db.QueryContext(ctx, query, plan.ID)
	if err != nil {
		return fmt.Errorf("failed to query meals: %w", err)
	}

	var meals []mealRow
	for rows.Next() {
		var r mealRow
		var category string
		if err := rows.Scan(&r.id, &r.day, &r.meal.MealName, &category); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan meal: %w", err)
		}
		r.meal.Category = models.Category(category)
		meals = append(meals, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to iterate meals: %w", err)
	}
	rows.Close()

	plan.Days = []models.DayPlan{}
	for _, r := range meals {
		ingredients, err := s.loadIngredientsForMeal(ctx, r.id)
		if err != nil {
			return err
		}
		r.meal.Ingredients = ingredients

		n := len(plan.Days)
		if n == 0 || plan.Days[n-1].Day != r.day {
			plan.Days = append(plan.Days, models.DayPlan{Day: r.day})
			n++
		}
		plan.Days[n-1].Meals = append(plan.Days[n-1].Meals, r.meal)
	}
	return nil
}

func (s *SQLiteStorage) loadIngredientsForMeal(ctx context.Context, mealID int64) ([]models.Ingredient, error) {
	query := `
        SELECT name, amount, unit
        FROM plan_ingredients
        WHERE meal_id = ?
        ORDER BY position
    `

	rows, err := s.db.QueryContext(ctx, query, mealID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []models.Ingredient{}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Amount, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}
