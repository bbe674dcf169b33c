package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tanwl/storefront-be/internal/models"
	"github.com/tanwl/storefront-be/internal/storage"
)

const userColumns = `id, username, email, password_hash, role, created_at, updated_at`

// CreateUser inserts a new user row. Unique violations are reported as the
// field-specific duplicate errors so signup can name the offending field.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns + `;`

	row := s.pool.QueryRow(ctx, query, user.Username, user.Email, user.PasswordHash, user.Role)
	created, err := scanUser(row)
	if err != nil {
		return models.User{}, mapUserConstraint(err)
	}
	return created, nil
}

// UserByID fetches a user by primary key.
func (s *Store) UserByID(ctx context.Context, id int64) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, id))
}

// UserByUsername fetches a user by exact username match.
func (s *Store) UserByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	return scanUser(s.pool.QueryRow(ctx, query, username))
}

// UpdateUser applies a partial profile update, touching updated_at. Returns
// storage.ErrNotFound when the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, id int64, patch storage.UserPatch) (models.User, error) {
	var b setBuilder
	if patch.Username != nil {
		b.set("username", *patch.Username)
	}
	if patch.Email != nil {
		b.set("email", *patch.Email)
	}
	if patch.PasswordHash != nil {
		b.set("password_hash", *patch.PasswordHash)
	}
	if b.empty() {
		return models.User{}, fmt.Errorf("update user %d: empty patch", id)
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s, updated_at = NOW()
		WHERE id = $%d
		RETURNING `+userColumns+`;`, b.clause(), b.next(id))

	updated, err := scanUser(s.pool.QueryRow(ctx, query, b.args...))
	if err != nil {
		return models.User{}, mapUserConstraint(err)
	}
	return updated, nil
}

// ListUsers returns every user, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// mapUserConstraint translates a unique violation on the users table into the
// field-specific sentinel so callers can report which field collided.
func mapUserConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return storage.ErrDuplicateUsername
		case strings.Contains(pgErr.ConstraintName, "email"):
			return storage.ErrDuplicateEmail
		}
	}
	return err
}
