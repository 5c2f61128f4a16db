package repository

import (
	"context"
	"database/sql"

	"eventhorizon/internal/database"
	"eventhorizon/internal/models"
)

type CategoryRepository struct {
	db *database.DB
}

func NewCategoryRepository(db *database.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		category.Name,
		category.Description,
	).Scan(&category.ID)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	category := &models.Category{}
	query := `SELECT id, name, description FROM categories WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return category, err
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	query := `SELECT id, name, description FROM categories ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (bool, error) {
	query := `UPDATE categories SET name = $1, description = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query,
		category.Name,
		category.Description,
		category.ID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete fails with a foreign-key violation while any event references the
// category (ON DELETE RESTRICT).
func (r *CategoryRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
