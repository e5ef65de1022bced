package class

import "errors"

var ErrNotFound = errors.New("class not found")

type (
	Repository interface {
		CreateClass(nc NewClass) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id int) (Class, error)
		FilterClassesByTeacher(teacherID int) ([]Class, error)
		UpdateClass(id int, up UpdateClass) (Class, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewClass) (Class, error) {
	return svc.repo.CreateClass(nc)
}

func (svc *Service) QueryAll() ([]Class, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) GetByID(id int) (Class, error) {
	return svc.repo.GetClassByID(id)
}

func (svc *Service) ByTeacher(teacherID int) ([]Class, error) {
	return svc.repo.FilterClassesByTeacher(teacherID)
}

func (svc *Service) Update(id int, up UpdateClass) (Class, error) {
	return svc.repo.UpdateClass(id, up)
}
