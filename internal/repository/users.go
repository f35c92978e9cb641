package repository

import (
	"context"
	"time"

	"github.com/kids-activity-tracker/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO users (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	params := []any{user.Username, user.PasswordHash, user.FullName, user.Email, user.Role}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version)
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, username, password_hash, full_name, email, role, is_active, created_at, version
		FROM users
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		dst := []any{
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.FullName,
			&user.Email,
			&user.Role,
			&user.IsActive,
			&user.CreatedAt,
			&user.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) getUserBy(field string, value any) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, username, password_hash, full_name, email, role, is_active, created_at, version
		FROM users
		WHERE ` + field + ` = $1
	`

	user := &domain.User{}
	dst := []any{
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.Email,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
		&user.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, value).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	return r.getUserBy("id", id)
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	return r.getUserBy("username", username)
}

func (r *Repository) UpdateUser(user *domain.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE users
		SET
			password_hash = $1,
			full_name = $2,
			email = $3,
			role = $4,
			is_active = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING version
	`

	params := []any{user.PasswordHash, user.FullName, user.Email, user.Role, user.IsActive, user.ID, user.Version}
	return r.dbpool.QueryRowContext(ctx, query, params...).Scan(&user.Version)
}

func (r *Repository) DeleteUser(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM users WHERE id = $1`

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
