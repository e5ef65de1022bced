package inmemdb

import (
	"time"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) query() []attendance.Attendance {
	records := make([]attendance.Attendance, 0, len(repo.db.attendance))
	for _, rec := range repo.db.attendance {
		records = append(records, *rec)
	}
	return records
}

func (repo *attendanceRepository) CreateAttendance(na attendance.NewAttendance) (attendance.Attendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	rec := na.Attendance()
	repo.db.attendanceSeq++
	rec.ID = repo.db.attendanceSeq
	repo.db.attendance[rec.ID] = &rec
	return rec, nil
}

func (repo *attendanceRepository) GetAttendanceByID(id int) (attendance.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if rec, ok := repo.db.attendance[id]; ok {
		return *rec, nil
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) FilterAttendanceByStudent(studentID int) ([]attendance.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]attendance.Attendance, 0)
	for _, rec := range repo.query() {
		if rec.StudentID == studentID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (repo *attendanceRepository) FilterAttendanceByClass(classID int) ([]attendance.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]attendance.Attendance, 0)
	for _, rec := range repo.query() {
		if rec.ClassID == classID {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (repo *attendanceRepository) FilterAttendanceByDate(date time.Time) ([]attendance.Attendance, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]attendance.Attendance, 0)
	for _, rec := range repo.query() {
		if core.SameDay(rec.Date, date) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (repo *attendanceRepository) UpdateAttendance(id int, up attendance.UpdateAttendance) (attendance.Attendance, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origRec, ok := repo.db.attendance[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}

	// only save set fields
	if up.Status != nil {
		origRec.Status = *up.Status
	}

	repo.db.attendance[id] = origRec
	return *origRec, nil
}
