package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/prosetii/club-roster/internal/model"
)

// UserStore is the persistence capability the handlers depend on: get,
// insert, update and delete by id and by unique username. Keeping it an
// interface lets tests substitute the in-memory implementation.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateLastLogin(ctx context.Context, id uint64) error
	UpdateEmail(ctx context.Context, id uint64, email string) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	UpdateAdmin(ctx context.Context, id uint64, upd AdminUpdate) error
	Delete(ctx context.Context, id uint64) error
}

// AdminUpdate carries the optional fields an admin may change on a user.
// Nil pointers mean "leave unchanged".
type AdminUpdate struct {
	Email    *string
	Role     *string
	IsActive *bool
}

// Empty reports whether no field is set.
func (a AdminUpdate) Empty() bool {
	return a.Email == nil && a.Role == nil && a.IsActive == nil
}

// UserRepo implements UserStore against the 'users' table.
type UserRepo struct{ DB *sql.DB }

var _ UserStore = (*UserRepo)(nil)

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, password_hash, email, role, is_active, created_at, last_login"

// Create inserts a user and returns its ID. The PasswordHash field must
// already be hashed; plaintext never reaches this layer.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (uint64, error) {
	var email any
	if u.Email != "" {
		email = u.Email
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, email, role, is_active) VALUES (?,?,?,?,?)",
		u.Username, u.PasswordHash, email, u.Role, u.IsActive)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by exact, case-sensitive username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username)
	return scanUser(row)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
	return scanUser(row)
}

// List returns all users, newest first.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateLastLogin stamps users.last_login with the current time.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login=NOW() WHERE id=?", id)
	return err
}

// UpdateEmail sets the email on a user's own record.
func (r *UserRepo) UpdateEmail(ctx context.Context, id uint64, email string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET email=? WHERE id=?", email, id)
	return affectedOrNotFound(res, err)
}

// UpdatePassword replaces the stored hash. The caller re-verifies the
// current password before getting here.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=? WHERE id=?", passwordHash, id)
	return affectedOrNotFound(res, err)
}

// UpdateAdmin applies the subset of fields present in upd as a single
// statement.
func (r *UserRepo) UpdateAdmin(ctx context.Context, id uint64, upd AdminUpdate) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, *upd.Email)
	}
	if upd.Role != nil {
		sets = append(sets, "role=?")
		args = append(args, *upd.Role)
	}
	if upd.IsActive != nil {
		sets = append(sets, "is_active=?")
		args = append(args, *upd.IsActive)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	return affectedOrNotFound(res, err)
}

// Delete removes a user row.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	return affectedOrNotFound(res, err)
}

// affectedOrNotFound maps a zero-row update to ErrNotFound. The connection
// sets clientFoundRows, so RowsAffected counts matched rows and an update
// that leaves values unchanged still counts its row.
func affectedOrNotFound(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (model.User, error) {
	var (
		u         model.User
		email     sql.NullString
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &u.Role,
		&u.IsActive, &u.CreatedAt, &lastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	if email.Valid {
		u.Email = email.String
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLogin = &t
	}
	return u, nil
}
