package finance

import (
	"errors"
	"time"
)

var (
	// errors
	ErrInstallmentNotFound = errors.New("installment not found")
	ErrPaymentNotFound     = errors.New("teacher payment not found")
)

type (
	InstallmentRepository interface {
		CreateInstallment(ni NewInstallment) (Installment, error)
		QueryAllInstallments() ([]Installment, error)
		GetInstallmentByID(id int) (Installment, error)
		FilterInstallmentsByStudent(studentID int) ([]Installment, error)
		FilterInstallmentsByStatus(status string) ([]Installment, error)
		UpdateInstallment(id int, up UpdateInstallment) (Installment, error)
	}

	TeacherPaymentRepository interface {
		CreateTeacherPayment(np NewTeacherPayment) (TeacherPayment, error)
		QueryAllTeacherPayments() ([]TeacherPayment, error)
		GetTeacherPaymentByID(id int) (TeacherPayment, error)
		FilterTeacherPaymentsByTeacher(teacherID int) ([]TeacherPayment, error)
		UpdateTeacherPayment(id int, up UpdateTeacherPayment) (TeacherPayment, error)
	}

	Service struct {
		installments InstallmentRepository
		payments     TeacherPaymentRepository
	}
)

func NewService(installments InstallmentRepository, payments TeacherPaymentRepository) *Service {
	return &Service{installments: installments, payments: payments}
}

// Installments

func (svc *Service) CreateInstallment(ni NewInstallment) (Installment, error) {
	return svc.installments.CreateInstallment(ni)
}

func (svc *Service) QueryAllInstallments() ([]Installment, error) {
	return svc.installments.QueryAllInstallments()
}

func (svc *Service) GetInstallment(id int) (Installment, error) {
	return svc.installments.GetInstallmentByID(id)
}

func (svc *Service) InstallmentsByStudent(studentID int) ([]Installment, error) {
	return svc.installments.FilterInstallmentsByStudent(studentID)
}

func (svc *Service) UpdateInstallment(id int, up UpdateInstallment) (Installment, error) {
	return svc.installments.UpdateInstallment(id, up)
}

// RecordPayment marks an installment paid as of paidAt.
func (svc *Service) RecordPayment(id int, paidAt time.Time) (Installment, error) {
	status := InstallmentPaid
	return svc.installments.UpdateInstallment(id, UpdateInstallment{Status: &status, PaymentDate: &paidAt})
}

// OverdueInstallments returns pending installments whose due date has passed
// as of asOf; installments already flagged overdue are included.
func (svc *Service) OverdueInstallments(asOf time.Time) ([]Installment, error) {
	pending, err := svc.installments.FilterInstallmentsByStatus(InstallmentPending)
	if err != nil {
		return nil, err
	}
	flagged, err := svc.installments.FilterInstallmentsByStatus(InstallmentOverdue)
	if err != nil {
		return nil, err
	}

	overdue := make([]Installment, 0, len(pending)+len(flagged))
	for _, inst := range pending {
		if inst.DueDate.Before(asOf) {
			overdue = append(overdue, inst)
		}
	}
	overdue = append(overdue, flagged...)
	return overdue, nil
}

// MarkOverdue flags all past-due pending installments and reports how many
// records were touched.
func (svc *Service) MarkOverdue(asOf time.Time) (int, error) {
	pending, err := svc.installments.FilterInstallmentsByStatus(InstallmentPending)
	if err != nil {
		return 0, err
	}

	var n int
	status := InstallmentOverdue
	for _, inst := range pending {
		if !inst.DueDate.Before(asOf) {
			continue
		}
		if _, err = svc.installments.UpdateInstallment(inst.ID, UpdateInstallment{Status: &status}); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// Teacher payments

func (svc *Service) CreateTeacherPayment(np NewTeacherPayment) (TeacherPayment, error) {
	return svc.payments.CreateTeacherPayment(np)
}

func (svc *Service) QueryAllTeacherPayments() ([]TeacherPayment, error) {
	return svc.payments.QueryAllTeacherPayments()
}

func (svc *Service) GetTeacherPayment(id int) (TeacherPayment, error) {
	return svc.payments.GetTeacherPaymentByID(id)
}

func (svc *Service) TeacherPaymentsByTeacher(teacherID int) ([]TeacherPayment, error) {
	return svc.payments.FilterTeacherPaymentsByTeacher(teacherID)
}

func (svc *Service) UpdateTeacherPayment(id int, up UpdateTeacherPayment) (TeacherPayment, error) {
	return svc.payments.UpdateTeacherPayment(id, up)
}
