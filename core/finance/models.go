package finance

import "time"

// Installment statuses
const (
	InstallmentPaid    = "paid"
	InstallmentPending = "pending"
	InstallmentOverdue = "overdue"
)

// Teacher payment statuses
const (
	PaymentPaid      = "paid"
	PaymentPending   = "pending"
	PaymentCancelled = "cancelled"
)

// Installment is one fee installment owed by a student.
type Installment struct {
	ID          int        `json:"id" db:"id"`
	StudentID   int        `json:"studentId" db:"student_id"`
	Amount      int        `json:"amount" db:"amount"`
	DueDate     time.Time  `json:"dueDate" db:"due_date"`
	PaymentDate *time.Time `json:"paymentDate,omitempty" db:"payment_date"`
	Status      string     `json:"status" db:"status"`
}

type NewInstallment struct {
	StudentID int       `json:"studentId" validate:"required"`
	Amount    int       `json:"amount" validate:"required,gt=0"`
	DueDate   time.Time `json:"dueDate" validate:"required"`
	Status    string    `json:"status,omitempty" validate:"omitempty,oneof=paid pending overdue"`
}

// Installment builds the full record; omitted status defaults to pending.
func (ni NewInstallment) Installment() Installment {
	status := ni.Status
	if status == "" {
		status = InstallmentPending
	}
	return Installment{
		StudentID: ni.StudentID,
		Amount:    ni.Amount,
		DueDate:   ni.DueDate,
		Status:    status,
	}
}

// UpdateInstallment lists the mutable Installment fields: payment recording
// only ever touches status and paymentDate.
type UpdateInstallment struct {
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=paid pending overdue"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}

// TeacherPayment is one pay-period payment owed to a teacher.
type TeacherPayment struct {
	ID          int        `json:"id" db:"id"`
	TeacherID   int        `json:"teacherId" db:"teacher_id"`
	Amount      int        `json:"amount" db:"amount"`
	Month       string     `json:"month" db:"month"`
	Description string     `json:"description,omitempty" db:"description"`
	PaymentDate *time.Time `json:"paymentDate,omitempty" db:"payment_date"`
	Status      string     `json:"status" db:"status"`
}

type NewTeacherPayment struct {
	TeacherID   int    `json:"teacherId" validate:"required"`
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Month       string `json:"month" validate:"required"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=paid pending cancelled"`
}

func (np NewTeacherPayment) TeacherPayment() TeacherPayment {
	status := np.Status
	if status == "" {
		status = PaymentPending
	}
	return TeacherPayment{
		TeacherID:   np.TeacherID,
		Amount:      np.Amount,
		Month:       np.Month,
		Description: np.Description,
		Status:      status,
	}
}

type UpdateTeacherPayment struct {
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=paid pending cancelled"`
	PaymentDate *time.Time `json:"paymentDate,omitempty"`
}
