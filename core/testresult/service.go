package testresult

import "errors"

var ErrNotFound = errors.New("test result not found")

type (
	Repository interface {
		CreateTestResult(nt NewTestResult) (TestResult, error)
		GetTestResultByID(id int) (TestResult, error)
		FilterTestResultsByStudent(studentID int) ([]TestResult, error)
		FilterTestResultsByClass(classID int) ([]TestResult, error)
		UpdateTestResult(id int, up UpdateTestResult) (TestResult, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nt NewTestResult) (TestResult, error) {
	return svc.repo.CreateTestResult(nt)
}

func (svc *Service) GetByID(id int) (TestResult, error) {
	return svc.repo.GetTestResultByID(id)
}

func (svc *Service) ByStudent(studentID int) ([]TestResult, error) {
	return svc.repo.FilterTestResultsByStudent(studentID)
}

func (svc *Service) ByClass(classID int) ([]TestResult, error) {
	return svc.repo.FilterTestResultsByClass(classID)
}

func (svc *Service) Update(id int, up UpdateTestResult) (TestResult, error) {
	return svc.repo.UpdateTestResult(id, up)
}

// Grade records a score and moves the result to graded in one step.
func (svc *Service) Grade(id, score int) (TestResult, error) {
	status := StatusGraded
	return svc.repo.UpdateTestResult(id, UpdateTestResult{Score: &score, Status: &status})
}
