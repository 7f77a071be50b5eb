package account

import (
	"context"
	"database/sql"
)

type Repository interface {
	ListByGateway(ctx context.Context, gateway string) ([]Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, gateway, name string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByGateway(ctx context.Context, gateway string) ([]Record, error) {
	const q = `
	SELECT id, gateway, name, settings, created_at, updated_at
	FROM gateway_accounts
	WHERE lower(gateway) = lower($1)
	ORDER BY id ASC;
	`

	rows, err := r.db.QueryContext(ctx, q, gateway)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var settings []byte
		if err := rows.Scan(
			&rec.ID, &rec.Gateway, &rec.Name, &settings, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rec.Settings = settings
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *repository) Save(ctx context.Context, rec *Record) error {
	const q = `
	INSERT INTO gateway_accounts (gateway, name, settings)
	VALUES ($1, $2, $3)
	ON CONFLICT (gateway, name)
	DO UPDATE SET settings = EXCLUDED.settings, updated_at = now()
	RETURNING id, created_at, updated_at;
	`

	return r.db.QueryRowContext(ctx, q, rec.Gateway, rec.Name, []byte(rec.Settings)).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
}

func (r *repository) Delete(ctx context.Context, gateway, name string) error {
	const q = `
	DELETE FROM gateway_accounts
	WHERE gateway = $1 AND name = $2;
	`

	res, err := r.db.ExecContext(ctx, q, gateway, name)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAccountNotFound
	}
	return nil
}
