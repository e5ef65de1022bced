package user

import (
	"errors"

	"github.com/elimusoft/elimu/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")

	ErrSessionNotFound = errors.New("session not found")
)

type (
	Repository interface {
		CreateUser(nu NewUser) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id int) (User, error)
		GetUserByUsername(username string) (User, error)
		FilterUsersByRole(role string) ([]User, error)
		// UpdateUser mutates only the fields set on `up`; it returns
		// ErrNotFound (and performs no write) when id does not exist.
		UpdateUser(id int, up UpdateUser) (User, error)
	}

	// SessionStore persists login sessions for the auth layer.
	SessionStore interface {
		SaveSession(s Session) (Session, error)
		GetSession(id string) (Session, error)
		DeleteSession(id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account after checking username uniqueness.
func (svc *Service) Register(nu NewUser) (User, error) {
	nu.Username = core.CleanString(nu.Username, true)
	nu.Email = core.CleanString(nu.Email, true)

	if _, err := svc.repo.GetUserByUsername(nu.Username); err == nil {
		return User{}, core.NewValidationError(
			ErrUsernameExists, core.FieldError{Field: "username", Error: ErrUsernameExists.Error()})
	} else if err != ErrNotFound {
		return User{}, err
	}
	return svc.repo.CreateUser(nu)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true))
}

func (svc *Service) Teachers() ([]User, error) {
	return svc.repo.FilterUsersByRole(RoleTeacher)
}

func (svc *Service) Students() ([]User, error) {
	return svc.repo.FilterUsersByRole(RoleStudent)
}

func (svc *Service) Update(id int, up UpdateUser) (User, error) {
	if up.Email != nil {
		email := core.CleanString(*up.Email, true)
		up.Email = &email
	}
	return svc.repo.UpdateUser(id, up)
}

// ChangePassword hashes and stores a new password for the user.
func (svc *Service) ChangePassword(id int, pwd string) (User, error) {
	var usr User
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.UpdateUser(id, UpdateUser{PasswordHash: usr.PasswordHash})
}

// Authenticate checks the credentials and returns the matching active user.
func (svc *Service) Authenticate(uname, pwd string) (User, error) {
	usr, err := svc.GetByUsername(uname)
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrNotFound // do not leak which part was wrong
	}
	return usr, nil
}
