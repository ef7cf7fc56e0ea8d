package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/huddle/internal/community/domain"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, first_name, last_name, email, user_type, is_active, created_at, last_login`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, email, user_type, is_active, created_at, last_login)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, string(u.UserType), u.IsActive,
		u.CreatedAt.UTC(), mapOptionalTime(u.LastLogin))
	return mapConstraint(err)
}

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u         domain.User
		userType  string
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &userType,
		&u.IsActive, &u.CreatedAt, &lastLogin)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.UserType = domain.ParseUserType(userType)
	u.LastLogin = mapNullTimePtr(lastLogin)
	return u, nil
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}
