// Package image manages gallery images: storage keys, uploads, and the
// presigned view models the gallery renders.
package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Image is the metadata record for one stored image.
type Image struct {
	ObjectKey string  `json:"object_key"`
	Category  string  `json:"category"`
	Caption   *string `json:"caption,omitempty"`
}

// ErrNotImage is returned when an upload's content type is not an image type.
var ErrNotImage = errors.New("attachment is not an image")

// ErrCategoryNotFound is returned when an upload targets a category that
// does not exist.
var ErrCategoryNotFound = errors.New("category not found")

// Repository handles all image database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert records the metadata row for an uploaded image.
func (r *Repository) Insert(ctx context.Context, img Image) error {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO images ("object_key", "category", "caption")
		 VALUES ($1, $2, $3)`,
		img.ObjectKey, img.Category, img.Caption,
	)
	if err != nil {
		return fmt.Errorf("insert image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("insert image: no rows affected")
	}
	return nil
}

// ListByCategory returns every image in the category, ordered by object key
// ascending. The schema carries no upload timestamp, so the key is the only
// stable sort available.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT "object_key", "category", "caption"
		 FROM images WHERE "category" = $1
		 ORDER BY "object_key" ASC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list images for %q: %w", category, err)
	}
	defer rows.Close()

	var imgs []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ObjectKey, &img.Category, &img.Caption); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		imgs = append(imgs, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list images for %q: %w", category, err)
	}
	return imgs, nil
}
