package class

type Class struct {
	ID        int    `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	Grade     string `json:"grade" db:"grade"`
	TeacherID int    `json:"teacherId" db:"teacher_id"`
	Schedule  string `json:"schedule,omitempty" db:"schedule"`
}

type NewClass struct {
	Name      string `json:"name" validate:"required"`
	Grade     string `json:"grade" validate:"required"`
	TeacherID int    `json:"teacherId" validate:"required"`
	Schedule  string `json:"schedule,omitempty"`
}

func (nc NewClass) Class() Class {
	return Class{
		Name:      nc.Name,
		Grade:     nc.Grade,
		TeacherID: nc.TeacherID,
		Schedule:  nc.Schedule,
	}
}

type UpdateClass struct {
	Name      *string `json:"name,omitempty"`
	Grade     *string `json:"grade,omitempty"`
	TeacherID *int    `json:"teacherId,omitempty"`
	Schedule  *string `json:"schedule,omitempty"`
}
