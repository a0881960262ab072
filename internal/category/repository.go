// Package category manages image categories and their persistence.
package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Category is a named grouping for gallery images.
type Category struct {
	Name        string  `json:"categoryName"`
	Description *string `json:"categoryDescription,omitempty"`
}

// ErrNotFound is returned when a category does not exist.
var ErrNotFound = errors.New("category not found")

// ErrAlreadyExists is returned when a category name is already taken.
var ErrAlreadyExists = errors.New("category already exists")

// Repository handles all category database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns every category ordered by name ascending. Name and description
// come back from a single query, so callers never see the two out of step.
func (r *Repository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.Query(ctx,
		`SELECT "categoryName", "categoryDescription"
		 FROM categories ORDER BY "categoryName" ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Name, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// Get fetches a single category by its exact name.
func (r *Repository) Get(ctx context.Context, name string) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRow(ctx,
		`SELECT "categoryName", "categoryDescription"
		 FROM categories WHERE "categoryName" = $1`,
		name,
	).Scan(&c.Name, &c.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category %q: %w", name, err)
	}
	return c, nil
}

// Create inserts a new category and returns the created record.
func (r *Repository) Create(ctx context.Context, name string, description *string) (*Category, error) {
	c := &Category{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO categories ("categoryName", "categoryDescription")
		 VALUES ($1, $2)
		 RETURNING "categoryName", "categoryDescription"`,
		name, description,
	).Scan(&c.Name, &c.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

// Rename changes a category's name and rewrites every image row that
// references the old name. The two statements run outside a transaction;
// a crash in between leaves image rows pointing at the old name.
func (r *Repository) Rename(ctx context.Context, oldName, newName string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET "categoryName" = $1 WHERE "categoryName" = $2`,
		newName, oldName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("rename category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := r.db.Exec(ctx,
		`UPDATE images SET "category" = $1 WHERE "category" = $2`,
		newName, oldName,
	); err != nil {
		return fmt.Errorf("rename category in images: %w", err)
	}
	return nil
}

// UpdateDescription replaces the description of the category with the exact name.
func (r *Repository) UpdateDescription(ctx context.Context, name, description string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE categories SET "categoryDescription" = $1 WHERE "categoryName" = $2`,
		description, name,
	)
	if err != nil {
		return fmt.Errorf("update category description: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
