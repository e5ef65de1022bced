package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/student"
)

type studentRepository struct {
	repo
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB, timeout time.Duration) student.Repository {
	return &studentRepository{newRepo(db, timeout)}
}

func (r *studentRepository) CreateStudent(ns student.NewStudent) (student.Student, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	st := ns.Student()
	const q = `
		INSERT INTO students (user_id, parent_name, phone, address, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.GetContext(ctx, &st.ID, q,
		st.UserID, st.ParentName, st.Phone, st.Address, st.DateOfBirth,
	); err != nil {
		return student.Student{}, translate(err, student.ErrNotFound, "inserting student")
	}
	return st, nil
}

func (r *studentRepository) QueryAllStudents() ([]student.Student, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	students := make([]student.Student, 0)
	if err := r.db.SelectContext(ctx, &students, `SELECT * FROM students ORDER BY id`); err != nil {
		return nil, translate(err, student.ErrNotFound, "querying students")
	}
	return students, nil
}

func (r *studentRepository) GetStudentByID(id int) (student.Student, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var st student.Student
	if err := r.db.GetContext(ctx, &st, `SELECT * FROM students WHERE id = $1`, id); err != nil {
		return student.Student{}, translate(err, student.ErrNotFound, "getting student")
	}
	return st, nil
}

func (r *studentRepository) GetStudentByUserID(userID int) (student.Student, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var st student.Student
	if err := r.db.GetContext(ctx, &st, `SELECT * FROM students WHERE user_id = $1`, userID); err != nil {
		return student.Student{}, translate(err, student.ErrNotFound, "getting student by user")
	}
	return st, nil
}

func (r *studentRepository) UpdateStudent(id int, up student.UpdateStudent) (student.Student, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE students SET
			parent_name   = COALESCE($2, parent_name),
			phone         = COALESCE($3, phone),
			address       = COALESCE($4, address),
			date_of_birth = COALESCE($5, date_of_birth)
		WHERE id = $1
		RETURNING *`
	var st student.Student
	if err := r.db.GetContext(ctx, &st, q, id, up.ParentName, up.Phone, up.Address, up.DateOfBirth); err != nil {
		return student.Student{}, translate(err, student.ErrNotFound, "updating student")
	}
	return st, nil
}
