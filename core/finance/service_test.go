package finance_test

import (
	"testing"
	"time"

	"github.com/elimusoft/elimu/core/finance"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

func newService(db *inmemdb.DB) *finance.Service {
	return finance.NewService(inmemdb.NewInstallmentRepository(db), inmemdb.NewTeacherPaymentRepository(db))
}

func TestRecordPayment(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)

	inst, err := svc.CreateInstallment(finance.NewInstallment{
		StudentID: 1,
		Amount:    20000,
		DueDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateInstallment failed: %v", err)
	}

	paidAt := time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC)
	paid, err := svc.RecordPayment(inst.ID, paidAt)
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if paid.Status != finance.InstallmentPaid {
		t.Errorf("status = %q; want %q", paid.Status, finance.InstallmentPaid)
	}
	if paid.PaymentDate == nil || !paid.PaymentDate.Equal(paidAt) {
		t.Errorf("paymentDate = %v; want %v", paid.PaymentDate, paidAt)
	}
	if paid.Amount != inst.Amount {
		t.Errorf("amount changed: %d -> %d", inst.Amount, paid.Amount)
	}
}

func TestOverdueInstallments(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)

	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mustCreate := func(due time.Time, status string) finance.Installment {
		t.Helper()
		inst, err := svc.CreateInstallment(finance.NewInstallment{StudentID: 1, Amount: 10000, DueDate: due, Status: status})
		if err != nil {
			t.Fatalf("CreateInstallment failed: %v", err)
		}
		return inst
	}

	pastDue := mustCreate(asOf.AddDate(0, 0, -10), "")
	mustCreate(asOf.AddDate(0, 0, 10), "") // not due yet
	mustCreate(asOf, "")                   // due exactly asOf: not yet past
	flagged := mustCreate(asOf.AddDate(0, -1, 0), finance.InstallmentOverdue)
	paid := mustCreate(asOf.AddDate(0, 0, -5), finance.InstallmentPaid)

	overdue, err := svc.OverdueInstallments(asOf)
	if err != nil {
		t.Fatalf("OverdueInstallments failed: %v", err)
	}
	if len(overdue) != 2 {
		t.Fatalf("len(overdue) = %d; want 2 (past-due pending + already flagged)", len(overdue))
	}
	ids := map[int]bool{overdue[0].ID: true, overdue[1].ID: true}
	if !ids[pastDue.ID] || !ids[flagged.ID] {
		t.Errorf("overdue ids = %v; want %d and %d", ids, pastDue.ID, flagged.ID)
	}
	if ids[paid.ID] {
		t.Error("paid installment reported overdue")
	}
}

func TestMarkOverdue(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)

	asOf := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	late, err := svc.CreateInstallment(finance.NewInstallment{StudentID: 1, Amount: 10000, DueDate: asOf.AddDate(0, 0, -1)})
	if err != nil {
		t.Fatalf("CreateInstallment failed: %v", err)
	}
	if _, err = svc.CreateInstallment(finance.NewInstallment{StudentID: 2, Amount: 10000, DueDate: asOf.AddDate(0, 0, 1)}); err != nil {
		t.Fatalf("CreateInstallment failed: %v", err)
	}

	n, err := svc.MarkOverdue(asOf)
	if err != nil {
		t.Fatalf("MarkOverdue failed: %v", err)
	}
	if n != 1 {
		t.Errorf("marked = %d; want 1", n)
	}

	got, err := svc.GetInstallment(late.ID)
	if err != nil {
		t.Fatalf("GetInstallment failed: %v", err)
	}
	if got.Status != finance.InstallmentOverdue {
		t.Errorf("status = %q; want %q", got.Status, finance.InstallmentOverdue)
	}

	// a second pass finds nothing pending
	n, err = svc.MarkOverdue(asOf)
	if err != nil {
		t.Fatalf("MarkOverdue failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second pass marked = %d; want 0", n)
	}
}

func TestTeacherPaymentDefaults(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)

	payment, err := svc.CreateTeacherPayment(finance.NewTeacherPayment{TeacherID: 1, Amount: 45000, Month: "2026-02"})
	if err != nil {
		t.Fatalf("CreateTeacherPayment failed: %v", err)
	}
	if payment.Status != finance.PaymentPending {
		t.Errorf("status = %q; want default %q", payment.Status, finance.PaymentPending)
	}
	if payment.PaymentDate != nil {
		t.Errorf("paymentDate = %v; want nil", payment.PaymentDate)
	}
}
