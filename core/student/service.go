package student

import "errors"

var (
	ErrNotFound      = errors.New("student not found")
	ErrProfileExists = errors.New("this user already has a student profile")
)

type (
	Repository interface {
		CreateStudent(ns NewStudent) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		GetStudentByUserID(userID int) (Student, error)
		UpdateStudent(id int, up UpdateStudent) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewStudent) (Student, error) {
	// one profile per user
	if _, err := svc.repo.GetStudentByUserID(ns.UserID); err == nil {
		return Student{}, ErrProfileExists
	} else if err != ErrNotFound {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ns)
}

func (svc *Service) QueryAll() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) GetByUserID(userID int) (Student, error) {
	return svc.repo.GetStudentByUserID(userID)
}

func (svc *Service) Update(id int, up UpdateStudent) (Student, error) {
	return svc.repo.UpdateStudent(id, up)
}
