package repositories

import (
	"database/sql"
	"errors"
	"strings"

	intconfig "wheelie-backend/internal/config"
	intdb "wheelie-backend/internal/db"
	"wheelie-backend/internal/domain"
	"wheelie-backend/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `
	id,
	email,
	COALESCE(full_name,''),
	COALESCE(phone,''),
	COALESCE(password_hash,''),
	COALESCE(role,'user'),
	created_at,
	updated_at`

func (r UserRepository) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	row := r.db().QueryRow("SELECT "+userColumns+" FROM users WHERE id = ? LIMIT 1", id)
	return scanUser(row, "get user")
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "required"}
	}
	row := r.db().QueryRow("SELECT "+userColumns+" FROM users WHERE email = ? LIMIT 1", email)
	return scanUser(row, "get user by email")
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO users (email, full_name, phone, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())
	`,
		strings.TrimSpace(u.Email),
		intdb.NullIfEmpty(strings.TrimSpace(u.FullName)),
		intdb.NullIfEmpty(strings.TrimSpace(u.Phone)),
		u.PasswordHash,
		u.Role,
	)
	if err != nil {
		return 0, wrapMySQLError("create user", "user", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// Update writes profile fields. Role changes ride along only when the
// caller sets one; the service layer guards who may do that.
func (r UserRepository) Update(id int64, fullName, phone, role string) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	sets := []string{"full_name = ?", "phone = ?", "updated_at = NOW()"}
	args := []any{
		intdb.NullIfEmpty(strings.TrimSpace(fullName)),
		intdb.NullIfEmpty(strings.TrimSpace(phone)),
	}
	if role != "" {
		sets = append(sets, "role = ?")
		args = append(args, role)
	}
	args = append(args, id)
	res, err := r.db().Exec(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.StoreError{Op: "update user", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) Delete(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	res, err := r.db().Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return domain.StoreError{Op: "delete user", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}

func (r UserRepository) List() ([]models.User, error) {
	rows, err := r.db().Query("SELECT " + userColumns + " FROM users ORDER BY id DESC")
	if err != nil {
		return nil, domain.StoreError{Op: "list users", Err: err}
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.FullName,
			&u.Phone,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, domain.StoreError{Op: "scan user", Err: err}
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError{Op: "iterate users", Err: err}
	}
	return list, nil
}

func (r UserRepository) CountAll() (int, error) {
	var count int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, domain.StoreError{Op: "count users", Err: err}
	}
	return count, nil
}

func scanUser(row *sql.Row, op string) (models.User, error) {
	var u models.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FullName,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, domain.StoreError{Op: op, Err: err}
	}
	return u, nil
}
