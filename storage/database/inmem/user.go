package inmemdb

import (
	"time"

	"github.com/google/uuid"

	"github.com/elimusoft/elimu/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.users))
	for _, usr := range repo.db.users {
		users = append(users, *usr)
	}
	return users
}

func (repo *userRepository) CreateUser(nu user.NewUser) (user.User, error) {
	usr, err := nu.User()
	if err != nil {
		return user.User{}, err
	}

	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.userSeq++
	usr.ID = repo.db.userSeq
	repo.db.users[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if usr, ok := repo.db.users[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, usr := range repo.query() {
		if usr.Username == username {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) FilterUsersByRole(role string) ([]user.User, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]user.User, 0)
	for _, usr := range repo.query() {
		if usr.Role == role {
			matched = append(matched, usr)
		}
	}
	return matched, nil
}

func (repo *userRepository) UpdateUser(id int, up user.UpdateUser) (user.User, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origUsr, ok := repo.db.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}

	// only save set fields
	if up.FullName != nil {
		origUsr.FullName = *up.FullName
	}
	if up.Email != nil {
		origUsr.Email = *up.Email
	}
	if up.Grade != nil {
		origUsr.Grade = *up.Grade
	}
	if up.PasswordHash != nil {
		origUsr.PasswordHash = up.PasswordHash
	}

	repo.db.users[id] = origUsr
	return *origUsr, nil
}

type sessionStore struct {
	db *DB
}

var _ user.SessionStore = (*sessionStore)(nil)

func NewSessionStore(db *DB) user.SessionStore {
	return &sessionStore{db: db}
}

func (store *sessionStore) SaveSession(s user.Session) (user.Session, error) {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	store.db.sessions[s.ID] = &s
	return s, nil
}

func (store *sessionStore) GetSession(id string) (user.Session, error) {
	store.db.mu.RLock()
	defer store.db.mu.RUnlock()

	if s, ok := store.db.sessions[id]; ok {
		return *s, nil
	}
	return user.Session{}, user.ErrSessionNotFound
}

func (store *sessionStore) DeleteSession(id string) error {
	store.db.mu.Lock()
	defer store.db.mu.Unlock()
	delete(store.db.sessions, id)
	return nil
}
