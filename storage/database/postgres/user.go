package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/user"
)

type userRepository struct {
	repo
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB, timeout time.Duration) user.Repository {
	return &userRepository{newRepo(db, timeout)}
}

func (r *userRepository) CreateUser(nu user.NewUser) (user.User, error) {
	usr, err := nu.User()
	if err != nil {
		return user.User{}, err
	}

	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		INSERT INTO users (username, password_hash, full_name, email, role, grade, join_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err = r.db.GetContext(ctx, &usr.ID, q,
		usr.Username, usr.PasswordHash, usr.FullName, usr.Email, usr.Role, usr.Grade, usr.JoinDate,
	); err != nil {
		return user.User{}, translate(err, user.ErrNotFound, "inserting user")
	}
	return usr, nil
}

func (r *userRepository) QueryAllUsers() ([]user.User, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	users := make([]user.User, 0)
	if err := r.db.SelectContext(ctx, &users, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, translate(err, user.ErrNotFound, "querying users")
	}
	return users, nil
}

func (r *userRepository) GetUserByID(id int) (user.User, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var usr user.User
	if err := r.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE id = $1`, id); err != nil {
		return user.User{}, translate(err, user.ErrNotFound, "getting user")
	}
	return usr, nil
}

func (r *userRepository) GetUserByUsername(username string) (user.User, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var usr user.User
	if err := r.db.GetContext(ctx, &usr, `SELECT * FROM users WHERE username = $1`, username); err != nil {
		return user.User{}, translate(err, user.ErrNotFound, "getting user by username")
	}
	return usr, nil
}

func (r *userRepository) FilterUsersByRole(role string) ([]user.User, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	users := make([]user.User, 0)
	if err := r.db.SelectContext(ctx, &users, `SELECT * FROM users WHERE role = $1 ORDER BY id`, role); err != nil {
		return nil, translate(err, user.ErrNotFound, "filtering users by role")
	}
	return users, nil
}

func (r *userRepository) UpdateUser(id int, up user.UpdateUser) (user.User, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE users SET
			full_name     = COALESCE($2, full_name),
			email         = COALESCE($3, email),
			grade         = COALESCE($4, grade),
			password_hash = COALESCE($5, password_hash)
		WHERE id = $1
		RETURNING *`
	var usr user.User
	if err := r.db.GetContext(ctx, &usr, q, id, up.FullName, up.Email, up.Grade, up.PasswordHash); err != nil {
		return user.User{}, translate(err, user.ErrNotFound, "updating user")
	}
	return usr, nil
}
