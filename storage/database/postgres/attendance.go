package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/attendance"
)

type attendanceRepository struct {
	repo
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB, timeout time.Duration) attendance.Repository {
	return &attendanceRepository{newRepo(db, timeout)}
}

func (r *attendanceRepository) CreateAttendance(na attendance.NewAttendance) (attendance.Attendance, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	rec := na.Attendance()
	const q = `
		INSERT INTO attendance (student_id, class_id, date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.GetContext(ctx, &rec.ID, q, rec.StudentID, rec.ClassID, rec.Date, rec.Status); err != nil {
		return attendance.Attendance{}, translate(err, attendance.ErrNotFound, "inserting attendance")
	}
	return rec, nil
}

func (r *attendanceRepository) GetAttendanceByID(id int) (attendance.Attendance, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var rec attendance.Attendance
	if err := r.db.GetContext(ctx, &rec, `SELECT * FROM attendance WHERE id = $1`, id); err != nil {
		return attendance.Attendance{}, translate(err, attendance.ErrNotFound, "getting attendance")
	}
	return rec, nil
}

func (r *attendanceRepository) FilterAttendanceByStudent(studentID int) ([]attendance.Attendance, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	records := make([]attendance.Attendance, 0)
	if err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM attendance WHERE student_id = $1 ORDER BY id`, studentID,
	); err != nil {
		return nil, translate(err, attendance.ErrNotFound, "filtering attendance by student")
	}
	return records, nil
}

func (r *attendanceRepository) FilterAttendanceByClass(classID int) ([]attendance.Attendance, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	records := make([]attendance.Attendance, 0)
	if err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM attendance WHERE class_id = $1 ORDER BY id`, classID,
	); err != nil {
		return nil, translate(err, attendance.ErrNotFound, "filtering attendance by class")
	}
	return records, nil
}

func (r *attendanceRepository) FilterAttendanceByDate(date time.Time) ([]attendance.Attendance, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	// connections run with timezone=utc; ::date matches the calendar day
	records := make([]attendance.Attendance, 0)
	if err := r.db.SelectContext(ctx, &records,
		`SELECT * FROM attendance WHERE date::date = $1::date ORDER BY id`, date.UTC(),
	); err != nil {
		return nil, translate(err, attendance.ErrNotFound, "filtering attendance by date")
	}
	return records, nil
}

func (r *attendanceRepository) UpdateAttendance(id int, up attendance.UpdateAttendance) (attendance.Attendance, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE attendance SET status = COALESCE($2, status)
		WHERE id = $1
		RETURNING *`
	var rec attendance.Attendance
	if err := r.db.GetContext(ctx, &rec, q, id, up.Status); err != nil {
		return attendance.Attendance{}, translate(err, attendance.ErrNotFound, "updating attendance")
	}
	return rec, nil
}
