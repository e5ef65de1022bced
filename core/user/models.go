package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	Grade        string    `json:"grade,omitempty" db:"grade"` // students only
	JoinDate     time.Time `json:"joinDate" db:"join_date"`    // UTC; immutable
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser is the insert shape for User: id and joinDate are server-assigned.
type NewUser struct {
	Username string `json:"username" validate:"required,alphanum_"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`
	Grade    string `json:"grade,omitempty"`
}

// User builds the full record with server-assigned defaults resolved;
// the repository assigns the id.
func (nu NewUser) User() (User, error) {
	usr := User{
		Username: nu.Username,
		FullName: nu.FullName,
		Email:    nu.Email,
		Role:     nu.Role,
		Grade:    nu.Grade,
		JoinDate: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return usr, nil
}

// UpdateUser lists the mutable User fields; nil fields are left untouched.
// Username, role and joinDate are immutable once created.
type UpdateUser struct {
	FullName     *string `json:"fullName,omitempty"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Grade        *string `json:"grade,omitempty"`
	PasswordHash []byte  `json:"-"`
}

// Session is a logged-in session persisted for the auth layer.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
