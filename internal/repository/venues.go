package repository

import (
	"context"
	"database/sql"

	"eventhorizon/internal/database"
	"eventhorizon/internal/models"
)

type VenueRepository struct {
	db *database.DB
}

func NewVenueRepository(db *database.DB) *VenueRepository {
	return &VenueRepository{db: db}
}

func (r *VenueRepository) Create(ctx context.Context, venue *models.Venue) error {
	query := `
		INSERT INTO venues (name, description, address, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	return r.db.QueryRowContext(ctx, query,
		venue.Name,
		venue.Description,
		venue.Address,
		venue.Capacity,
	).Scan(&venue.ID)
}

func (r *VenueRepository) GetByID(ctx context.Context, id int) (*models.Venue, error) {
	venue := &models.Venue{}
	query := `SELECT id, name, description, address, capacity FROM venues WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&venue.ID,
		&venue.Name,
		&venue.Description,
		&venue.Address,
		&venue.Capacity,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return venue, err
}

func (r *VenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	var venues []models.Venue
	query := `SELECT id, name, description, address, capacity FROM venues ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var venue models.Venue
		err := rows.Scan(
			&venue.ID,
			&venue.Name,
			&venue.Description,
			&venue.Address,
			&venue.Capacity,
		)
		if err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}

func (r *VenueRepository) Update(ctx context.Context, venue *models.Venue) (bool, error) {
	query := `
		UPDATE venues
		SET name = $1, description = $2, address = $3, capacity = $4
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		venue.Name,
		venue.Description,
		venue.Address,
		venue.Capacity,
		venue.ID,
	)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}

// Delete fails with a foreign-key violation while any event references the
// venue (ON DELETE RESTRICT).
func (r *VenueRepository) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	return affected > 0, err
}
