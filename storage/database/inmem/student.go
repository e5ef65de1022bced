package inmemdb

import "github.com/elimusoft/elimu/core/student"

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.students))
	for _, st := range repo.db.students {
		students = append(students, *st)
	}
	return students
}

func (repo *studentRepository) CreateStudent(ns student.NewStudent) (student.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	st := ns.Student()
	repo.db.studentSeq++
	st.ID = repo.db.studentSeq
	repo.db.students[st.ID] = &st
	return st, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if st, ok := repo.db.students[id]; ok {
		return *st, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) GetStudentByUserID(userID int) (student.Student, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	for _, st := range repo.query() {
		if st.UserID == userID {
			return st, nil
		}
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(id int, up student.UpdateStudent) (student.Student, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origSt, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}

	// only save set fields
	if up.ParentName != nil {
		origSt.ParentName = *up.ParentName
	}
	if up.Phone != nil {
		origSt.Phone = *up.Phone
	}
	if up.Address != nil {
		origSt.Address = *up.Address
	}
	if up.DateOfBirth != nil {
		origSt.DateOfBirth = up.DateOfBirth
	}

	repo.db.students[id] = origSt
	return *origSt, nil
}
