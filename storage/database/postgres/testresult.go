package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/testresult"
)

type testResultRepository struct {
	repo
}

var _ testresult.Repository = (*testResultRepository)(nil) // interface compliance check

func NewTestResultRepository(db *sqlx.DB, timeout time.Duration) testresult.Repository {
	return &testResultRepository{newRepo(db, timeout)}
}

func (r *testResultRepository) CreateTestResult(nt testresult.NewTestResult) (testresult.TestResult, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	res := nt.TestResult()
	const q = `
		INSERT INTO test_results (name, student_id, class_id, date, score, max_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.GetContext(ctx, &res.ID, q,
		res.Name, res.StudentID, res.ClassID, res.Date, res.Score, res.MaxScore, res.Status,
	); err != nil {
		return testresult.TestResult{}, translate(err, testresult.ErrNotFound, "inserting test result")
	}
	return res, nil
}

func (r *testResultRepository) GetTestResultByID(id int) (testresult.TestResult, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var res testresult.TestResult
	if err := r.db.GetContext(ctx, &res, `SELECT * FROM test_results WHERE id = $1`, id); err != nil {
		return testresult.TestResult{}, translate(err, testresult.ErrNotFound, "getting test result")
	}
	return res, nil
}

func (r *testResultRepository) FilterTestResultsByStudent(studentID int) ([]testresult.TestResult, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	results := make([]testresult.TestResult, 0)
	if err := r.db.SelectContext(ctx, &results,
		`SELECT * FROM test_results WHERE student_id = $1 ORDER BY id`, studentID,
	); err != nil {
		return nil, translate(err, testresult.ErrNotFound, "filtering test results by student")
	}
	return results, nil
}

func (r *testResultRepository) FilterTestResultsByClass(classID int) ([]testresult.TestResult, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	results := make([]testresult.TestResult, 0)
	if err := r.db.SelectContext(ctx, &results,
		`SELECT * FROM test_results WHERE class_id = $1 ORDER BY id`, classID,
	); err != nil {
		return nil, translate(err, testresult.ErrNotFound, "filtering test results by class")
	}
	return results, nil
}

func (r *testResultRepository) UpdateTestResult(id int, up testresult.UpdateTestResult) (testresult.TestResult, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE test_results SET
			score  = COALESCE($2, score),
			status = COALESCE($3, status)
		WHERE id = $1
		RETURNING *`
	var res testresult.TestResult
	if err := r.db.GetContext(ctx, &res, q, id, up.Score, up.Status); err != nil {
		return testresult.TestResult{}, translate(err, testresult.ErrNotFound, "updating test result")
	}
	return res, nil
}
