package inmemdb

import "github.com/elimusoft/elimu/core/finance"

type installmentRepository struct {
	db *DB
}

var _ finance.InstallmentRepository = (*installmentRepository)(nil) // interface compliance check

func NewInstallmentRepository(db *DB) finance.InstallmentRepository {
	return &installmentRepository{db: db}
}

func (repo *installmentRepository) query() []finance.Installment {
	installments := make([]finance.Installment, 0, len(repo.db.installments))
	for _, inst := range repo.db.installments {
		installments = append(installments, *inst)
	}
	return installments
}

func (repo *installmentRepository) CreateInstallment(ni finance.NewInstallment) (finance.Installment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	inst := ni.Installment()
	repo.db.installmentSeq++
	inst.ID = repo.db.installmentSeq
	repo.db.installments[inst.ID] = &inst
	return inst, nil
}

func (repo *installmentRepository) QueryAllInstallments() ([]finance.Installment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *installmentRepository) GetInstallmentByID(id int) (finance.Installment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if inst, ok := repo.db.installments[id]; ok {
		return *inst, nil
	}
	return finance.Installment{}, finance.ErrInstallmentNotFound
}

func (repo *installmentRepository) FilterInstallmentsByStudent(studentID int) ([]finance.Installment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]finance.Installment, 0)
	for _, inst := range repo.query() {
		if inst.StudentID == studentID {
			matched = append(matched, inst)
		}
	}
	return matched, nil
}

func (repo *installmentRepository) FilterInstallmentsByStatus(status string) ([]finance.Installment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]finance.Installment, 0)
	for _, inst := range repo.query() {
		if inst.Status == status {
			matched = append(matched, inst)
		}
	}
	return matched, nil
}

func (repo *installmentRepository) UpdateInstallment(id int, up finance.UpdateInstallment) (finance.Installment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origInst, ok := repo.db.installments[id]
	if !ok {
		return finance.Installment{}, finance.ErrInstallmentNotFound
	}

	// only save set fields
	if up.Status != nil {
		origInst.Status = *up.Status
	}
	if up.PaymentDate != nil {
		origInst.PaymentDate = up.PaymentDate
	}

	repo.db.installments[id] = origInst
	return *origInst, nil
}

type teacherPaymentRepository struct {
	db *DB
}

var _ finance.TeacherPaymentRepository = (*teacherPaymentRepository)(nil) // interface compliance check

func NewTeacherPaymentRepository(db *DB) finance.TeacherPaymentRepository {
	return &teacherPaymentRepository{db: db}
}

func (repo *teacherPaymentRepository) query() []finance.TeacherPayment {
	payments := make([]finance.TeacherPayment, 0, len(repo.db.teacherPayments))
	for _, pmt := range repo.db.teacherPayments {
		payments = append(payments, *pmt)
	}
	return payments
}

func (repo *teacherPaymentRepository) CreateTeacherPayment(np finance.NewTeacherPayment) (finance.TeacherPayment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	pmt := np.TeacherPayment()
	repo.db.teacherPaymentSeq++
	pmt.ID = repo.db.teacherPaymentSeq
	repo.db.teacherPayments[pmt.ID] = &pmt
	return pmt, nil
}

func (repo *teacherPaymentRepository) QueryAllTeacherPayments() ([]finance.TeacherPayment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *teacherPaymentRepository) GetTeacherPaymentByID(id int) (finance.TeacherPayment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if pmt, ok := repo.db.teacherPayments[id]; ok {
		return *pmt, nil
	}
	return finance.TeacherPayment{}, finance.ErrPaymentNotFound
}

func (repo *teacherPaymentRepository) FilterTeacherPaymentsByTeacher(teacherID int) ([]finance.TeacherPayment, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]finance.TeacherPayment, 0)
	for _, pmt := range repo.query() {
		if pmt.TeacherID == teacherID {
			matched = append(matched, pmt)
		}
	}
	return matched, nil
}

func (repo *teacherPaymentRepository) UpdateTeacherPayment(id int, up finance.UpdateTeacherPayment) (finance.TeacherPayment, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origPmt, ok := repo.db.teacherPayments[id]
	if !ok {
		return finance.TeacherPayment{}, finance.ErrPaymentNotFound
	}

	// only save set fields
	if up.Status != nil {
		origPmt.Status = *up.Status
	}
	if up.PaymentDate != nil {
		origPmt.PaymentDate = up.PaymentDate
	}

	repo.db.teacherPayments[id] = origPmt
	return *origPmt, nil
}
