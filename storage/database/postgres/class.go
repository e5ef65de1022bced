package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/class"
)

type classRepository struct {
	repo
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *sqlx.DB, timeout time.Duration) class.Repository {
	return &classRepository{newRepo(db, timeout)}
}

func (r *classRepository) CreateClass(nc class.NewClass) (class.Class, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	cls := nc.Class()
	const q = `
		INSERT INTO classes (name, grade, teacher_id, schedule)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.GetContext(ctx, &cls.ID, q, cls.Name, cls.Grade, cls.TeacherID, cls.Schedule); err != nil {
		return class.Class{}, translate(err, class.ErrNotFound, "inserting class")
	}
	return cls, nil
}

func (r *classRepository) QueryAllClasses() ([]class.Class, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	classes := make([]class.Class, 0)
	if err := r.db.SelectContext(ctx, &classes, `SELECT * FROM classes ORDER BY id`); err != nil {
		return nil, translate(err, class.ErrNotFound, "querying classes")
	}
	return classes, nil
}

func (r *classRepository) GetClassByID(id int) (class.Class, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var cls class.Class
	if err := r.db.GetContext(ctx, &cls, `SELECT * FROM classes WHERE id = $1`, id); err != nil {
		return class.Class{}, translate(err, class.ErrNotFound, "getting class")
	}
	return cls, nil
}

func (r *classRepository) FilterClassesByTeacher(teacherID int) ([]class.Class, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	classes := make([]class.Class, 0)
	if err := r.db.SelectContext(ctx, &classes,
		`SELECT * FROM classes WHERE teacher_id = $1 ORDER BY id`, teacherID,
	); err != nil {
		return nil, translate(err, class.ErrNotFound, "filtering classes by teacher")
	}
	return classes, nil
}

func (r *classRepository) UpdateClass(id int, up class.UpdateClass) (class.Class, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE classes SET
			name       = COALESCE($2, name),
			grade      = COALESCE($3, grade),
			teacher_id = COALESCE($4, teacher_id),
			schedule   = COALESCE($5, schedule)
		WHERE id = $1
		RETURNING *`
	var cls class.Class
	if err := r.db.GetContext(ctx, &cls, q, id, up.Name, up.Grade, up.TeacherID, up.Schedule); err != nil {
		return class.Class{}, translate(err, class.ErrNotFound, "updating class")
	}
	return cls, nil
}
