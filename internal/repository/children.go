package repository

import (
	"context"
	"time"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

const childColumns = `id, user_id, name, COALESCE(date_of_birth, ''), color_hex, created_at, version`

func scanChild(scan func(dst ...any) error) (*domain.Child, error) {
	child := &domain.Child{}
	dst := []any{
		&child.ID,
		&child.UserID,
		&child.Name,
		&child.DateOfBirth,
		&child.ColorHex,
		&child.CreatedAt,
		&child.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}
	return child, nil
}

func (r *Repository) CreateChild(child *domain.Child) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO children (user_id, name, date_of_birth, color_hex)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, created_at, version
	`

	params := []any{child.UserID, child.Name, child.DateOfBirth, child.ColorHex}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&child.ID, &child.CreatedAt, &child.Version)
}

func (r *Repository) GetChildByID(id int64) (*domain.Child, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + childColumns + ` FROM children WHERE id = $1`

	return scanChild(r.dbpool.QueryRowContext(ctx, query, id).Scan)
}

func (r *Repository) GetChildrenByUserID(userID int64) ([]*domain.Child, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `SELECT ` + childColumns + ` FROM children WHERE user_id = $1 ORDER BY id`

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	children := make([]*domain.Child, 0)
	for rows.Next() {
		child, err := scanChild(rows.Scan)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return children, nil
}

func (r *Repository) UpdateChild(child *domain.Child) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE children
		SET
			name = $1,
			date_of_birth = NULLIF($2, ''),
			color_hex = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	params := []any{child.Name, child.DateOfBirth, child.ColorHex, child.ID, child.Version}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&child.Version)
}

func (r *Repository) DeleteChild(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM children WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
