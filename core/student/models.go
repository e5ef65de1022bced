package student

import "time"

// Student is the profile attached to a User with the student role.
type Student struct {
	ID          int        `json:"id" db:"id"`
	UserID      int        `json:"userId" db:"user_id"`
	ParentName  string     `json:"parentName" db:"parent_name"`
	Phone       string     `json:"phone" db:"phone"`
	Address     string     `json:"address" db:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty" db:"date_of_birth"`
}

type NewStudent struct {
	UserID      int        `json:"userId" validate:"required"`
	ParentName  string     `json:"parentName" validate:"required"`
	Phone       string     `json:"phone" validate:"required"`
	Address     string     `json:"address"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

func (ns NewStudent) Student() Student {
	return Student{
		UserID:      ns.UserID,
		ParentName:  ns.ParentName,
		Phone:       ns.Phone,
		Address:     ns.Address,
		DateOfBirth: ns.DateOfBirth,
	}
}

// UpdateStudent lists the mutable Student fields; userId is immutable.
type UpdateStudent struct {
	ParentName  *string    `json:"parentName,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Address     *string    `json:"address,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}
