package testresult

import "time"

// Statuses
const (
	StatusPending = "pending"
	StatusGraded  = "graded"
)

const DefaultMaxScore = 100

type TestResult struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	StudentID int       `json:"studentId" db:"student_id"`
	ClassID   int       `json:"classId" db:"class_id"`
	Date      time.Time `json:"date" db:"date"`
	Score     int       `json:"score" db:"score"`
	MaxScore  int       `json:"maxScore" db:"max_score"`
	Status    string    `json:"status" db:"status"`
}

type NewTestResult struct {
	Name      string    `json:"name" validate:"required"`
	StudentID int       `json:"studentId" validate:"required"`
	ClassID   int       `json:"classId" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Score     int       `json:"score,omitempty"`
	MaxScore  *int      `json:"maxScore,omitempty"`
	Status    string    `json:"status,omitempty" validate:"omitempty,oneof=pending graded"`
}

// TestResult builds the full record; maxScore defaults to 100 and status to
// pending.
func (nt NewTestResult) TestResult() TestResult {
	maxScore := DefaultMaxScore
	if nt.MaxScore != nil {
		maxScore = *nt.MaxScore
	}
	status := nt.Status
	if status == "" {
		status = StatusPending
	}
	return TestResult{
		Name:      nt.Name,
		StudentID: nt.StudentID,
		ClassID:   nt.ClassID,
		Date:      nt.Date,
		Score:     nt.Score,
		MaxScore:  maxScore,
		Status:    status,
	}
}

// UpdateTestResult lists the mutable TestResult fields: grading only touches
// score and status.
type UpdateTestResult struct {
	Score  *int    `json:"score,omitempty"`
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=pending graded"`
}
