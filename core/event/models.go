package event

import "time"

type Event struct {
	ID           int       `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description,omitempty" db:"description"`
	Date         time.Time `json:"date" db:"date"`
	Time         string    `json:"time,omitempty" db:"time"`
	TargetGrades []string  `json:"targetGrades,omitempty"` // empty = school-wide
}

// ForGrade reports whether the event concerns the given grade. Events with
// no target grades concern everyone.
func (e Event) ForGrade(grade string) bool {
	if len(e.TargetGrades) == 0 {
		return true
	}
	for _, g := range e.TargetGrades {
		if g == grade {
			return true
		}
	}
	return false
}

type NewEvent struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date" validate:"required"`
	Time         string    `json:"time,omitempty"`
	TargetGrades []string  `json:"targetGrades,omitempty"`
}

func (ne NewEvent) Event() Event {
	return Event{
		Title:        ne.Title,
		Description:  ne.Description,
		Date:         ne.Date,
		Time:         ne.Time,
		TargetGrades: ne.TargetGrades,
	}
}

type UpdateEvent struct {
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
	Time         *string    `json:"time,omitempty"`
	TargetGrades *[]string  `json:"targetGrades,omitempty"`
}
