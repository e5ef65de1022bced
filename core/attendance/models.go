package attendance

import "time"

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

var AllStatuses = []string{StatusPresent, StatusAbsent, StatusLate}

type Attendance struct {
	ID        int       `json:"id" db:"id"`
	StudentID int       `json:"studentId" db:"student_id"`
	ClassID   int       `json:"classId" db:"class_id"`
	Date      time.Time `json:"date" db:"date"`
	Status    string    `json:"status" db:"status"`
}

type NewAttendance struct {
	StudentID int       `json:"studentId" validate:"required"`
	ClassID   int       `json:"classId" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Status    string    `json:"status,omitempty" validate:"omitempty,oneof=present absent late"`
}

// Attendance builds the full record; omitted status defaults to present.
func (na NewAttendance) Attendance() Attendance {
	status := na.Status
	if status == "" {
		status = StatusPresent
	}
	return Attendance{
		StudentID: na.StudentID,
		ClassID:   na.ClassID,
		Date:      na.Date,
		Status:    status,
	}
}

// UpdateAttendance lists the mutable Attendance fields: only the status may
// change after the record is taken.
type UpdateAttendance struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=present absent late"`
}

// Summary is the per-class, per-day aggregation shown on the dashboard.
type Summary struct {
	ClassID int       `json:"classId"`
	Date    time.Time `json:"date"`
	Present int       `json:"present"`
	Absent  int       `json:"absent"`
	Late    int       `json:"late"`
	Total   int       `json:"total"`
	Rate    int       `json:"rate"` // percentage of present records, rounded
}
