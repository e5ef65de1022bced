package inmemdb

import "github.com/elimusoft/elimu/core/class"

type classRepository struct {
	db *DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{db: db}
}

func (repo *classRepository) query() []class.Class {
	classes := make([]class.Class, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		classes = append(classes, *cls)
	}
	return classes
}

func (repo *classRepository) CreateClass(nc class.NewClass) (class.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cls := nc.Class()
	repo.db.classSeq++
	cls.ID = repo.db.classSeq
	repo.db.classes[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryAllClasses() ([]class.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *classRepository) GetClassByID(id int) (class.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if cls, ok := repo.db.classes[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) FilterClassesByTeacher(teacherID int) ([]class.Class, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]class.Class, 0)
	for _, cls := range repo.query() {
		if cls.TeacherID == teacherID {
			matched = append(matched, cls)
		}
	}
	return matched, nil
}

func (repo *classRepository) UpdateClass(id int, up class.UpdateClass) (class.Class, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origCls, ok := repo.db.classes[id]
	if !ok {
		return class.Class{}, class.ErrNotFound
	}

	// only save set fields
	if up.Name != nil {
		origCls.Name = *up.Name
	}
	if up.Grade != nil {
		origCls.Grade = *up.Grade
	}
	if up.TeacherID != nil {
		origCls.TeacherID = *up.TeacherID
	}
	if up.Schedule != nil {
		origCls.Schedule = *up.Schedule
	}

	repo.db.classes[id] = origCls
	return *origCls, nil
}
