package inmemdb

import "github.com/elimusoft/elimu/core/testresult"

type testResultRepository struct {
	db *DB
}

var _ testresult.Repository = (*testResultRepository)(nil) // interface compliance check

func NewTestResultRepository(db *DB) testresult.Repository {
	return &testResultRepository{db: db}
}

func (repo *testResultRepository) query() []testresult.TestResult {
	results := make([]testresult.TestResult, 0, len(repo.db.testResults))
	for _, res := range repo.db.testResults {
		results = append(results, *res)
	}
	return results
}

func (repo *testResultRepository) CreateTestResult(nt testresult.NewTestResult) (testresult.TestResult, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	res := nt.TestResult()
	repo.db.testResultSeq++
	res.ID = repo.db.testResultSeq
	repo.db.testResults[res.ID] = &res
	return res, nil
}

func (repo *testResultRepository) GetTestResultByID(id int) (testresult.TestResult, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if res, ok := repo.db.testResults[id]; ok {
		return *res, nil
	}
	return testresult.TestResult{}, testresult.ErrNotFound
}

func (repo *testResultRepository) FilterTestResultsByStudent(studentID int) ([]testresult.TestResult, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]testresult.TestResult, 0)
	for _, res := range repo.query() {
		if res.StudentID == studentID {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

func (repo *testResultRepository) FilterTestResultsByClass(classID int) ([]testresult.TestResult, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]testresult.TestResult, 0)
	for _, res := range repo.query() {
		if res.ClassID == classID {
			matched = append(matched, res)
		}
	}
	return matched, nil
}

func (repo *testResultRepository) UpdateTestResult(id int, up testresult.UpdateTestResult) (testresult.TestResult, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origRes, ok := repo.db.testResults[id]
	if !ok {
		return testresult.TestResult{}, testresult.ErrNotFound
	}

	// only save set fields
	if up.Score != nil {
		origRes.Score = *up.Score
	}
	if up.Status != nil {
		origRes.Status = *up.Status
	}

	repo.db.testResults[id] = origRes
	return *origRes, nil
}
