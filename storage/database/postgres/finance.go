package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/elimusoft/elimu/core/finance"
)

type installmentRepository struct {
	repo
}

var _ finance.InstallmentRepository = (*installmentRepository)(nil) // interface compliance check

func NewInstallmentRepository(db *sqlx.DB, timeout time.Duration) finance.InstallmentRepository {
	return &installmentRepository{newRepo(db, timeout)}
}

func (r *installmentRepository) CreateInstallment(ni finance.NewInstallment) (finance.Installment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	inst := ni.Installment()
	const q = `
		INSERT INTO installments (student_id, amount, due_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.GetContext(ctx, &inst.ID, q, inst.StudentID, inst.Amount, inst.DueDate, inst.Status); err != nil {
		return finance.Installment{}, translate(err, finance.ErrInstallmentNotFound, "inserting installment")
	}
	return inst, nil
}

func (r *installmentRepository) QueryAllInstallments() ([]finance.Installment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	installments := make([]finance.Installment, 0)
	if err := r.db.SelectContext(ctx, &installments, `SELECT * FROM installments ORDER BY id`); err != nil {
		return nil, translate(err, finance.ErrInstallmentNotFound, "querying installments")
	}
	return installments, nil
}

func (r *installmentRepository) GetInstallmentByID(id int) (finance.Installment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var inst finance.Installment
	if err := r.db.GetContext(ctx, &inst, `SELECT * FROM installments WHERE id = $1`, id); err != nil {
		return finance.Installment{}, translate(err, finance.ErrInstallmentNotFound, "getting installment")
	}
	return inst, nil
}

func (r *installmentRepository) FilterInstallmentsByStudent(studentID int) ([]finance.Installment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	installments := make([]finance.Installment, 0)
	if err := r.db.SelectContext(ctx, &installments,
		`SELECT * FROM installments WHERE student_id = $1 ORDER BY id`, studentID,
	); err != nil {
		return nil, translate(err, finance.ErrInstallmentNotFound, "filtering installments by student")
	}
	return installments, nil
}

func (r *installmentRepository) FilterInstallmentsByStatus(status string) ([]finance.Installment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	installments := make([]finance.Installment, 0)
	if err := r.db.SelectContext(ctx, &installments,
		`SELECT * FROM installments WHERE status = $1 ORDER BY id`, status,
	); err != nil {
		return nil, translate(err, finance.ErrInstallmentNotFound, "filtering installments by status")
	}
	return installments, nil
}

func (r *installmentRepository) UpdateInstallment(id int, up finance.UpdateInstallment) (finance.Installment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE installments SET
			status       = COALESCE($2, status),
			payment_date = COALESCE($3, payment_date)
		WHERE id = $1
		RETURNING *`
	var inst finance.Installment
	if err := r.db.GetContext(ctx, &inst, q, id, up.Status, up.PaymentDate); err != nil {
		return finance.Installment{}, translate(err, finance.ErrInstallmentNotFound, "updating installment")
	}
	return inst, nil
}

type teacherPaymentRepository struct {
	repo
}

var _ finance.TeacherPaymentRepository = (*teacherPaymentRepository)(nil) // interface compliance check

func NewTeacherPaymentRepository(db *sqlx.DB, timeout time.Duration) finance.TeacherPaymentRepository {
	return &teacherPaymentRepository{newRepo(db, timeout)}
}

func (r *teacherPaymentRepository) CreateTeacherPayment(np finance.NewTeacherPayment) (finance.TeacherPayment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	pmt := np.TeacherPayment()
	const q = `
		INSERT INTO teacher_payments (teacher_id, amount, month, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.GetContext(ctx, &pmt.ID, q,
		pmt.TeacherID, pmt.Amount, pmt.Month, pmt.Description, pmt.Status,
	); err != nil {
		return finance.TeacherPayment{}, translate(err, finance.ErrPaymentNotFound, "inserting teacher payment")
	}
	return pmt, nil
}

func (r *teacherPaymentRepository) QueryAllTeacherPayments() ([]finance.TeacherPayment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	payments := make([]finance.TeacherPayment, 0)
	if err := r.db.SelectContext(ctx, &payments, `SELECT * FROM teacher_payments ORDER BY id`); err != nil {
		return nil, translate(err, finance.ErrPaymentNotFound, "querying teacher payments")
	}
	return payments, nil
}

func (r *teacherPaymentRepository) GetTeacherPaymentByID(id int) (finance.TeacherPayment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var pmt finance.TeacherPayment
	if err := r.db.GetContext(ctx, &pmt, `SELECT * FROM teacher_payments WHERE id = $1`, id); err != nil {
		return finance.TeacherPayment{}, translate(err, finance.ErrPaymentNotFound, "getting teacher payment")
	}
	return pmt, nil
}

func (r *teacherPaymentRepository) FilterTeacherPaymentsByTeacher(teacherID int) ([]finance.TeacherPayment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	payments := make([]finance.TeacherPayment, 0)
	if err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM teacher_payments WHERE teacher_id = $1 ORDER BY id`, teacherID,
	); err != nil {
		return nil, translate(err, finance.ErrPaymentNotFound, "filtering teacher payments by teacher")
	}
	return payments, nil
}

func (r *teacherPaymentRepository) UpdateTeacherPayment(id int, up finance.UpdateTeacherPayment) (finance.TeacherPayment, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	const q = `
		UPDATE teacher_payments SET
			status       = COALESCE($2, status),
			payment_date = COALESCE($3, payment_date)
		WHERE id = $1
		RETURNING *`
	var pmt finance.TeacherPayment
	if err := r.db.GetContext(ctx, &pmt, q, id, up.Status, up.PaymentDate); err != nil {
		return finance.TeacherPayment{}, translate(err, finance.ErrPaymentNotFound, "updating teacher payment")
	}
	return pmt, nil
}
