package library_test

import (
	"testing"
	"time"

	"github.com/elimusoft/elimu/core/library"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

func newService(db *inmemdb.DB) *library.Service {
	return library.NewService(inmemdb.NewNoteRepository(db), inmemdb.NewLoanRepository(db))
}

func createNote(t *testing.T, svc *library.Service, total int) library.PublicationNote {
	t.Helper()
	note, err := svc.CreateNote(library.NewPublicationNote{Subject: "Physics", Grade: "11", TotalStock: total})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	return note
}

func TestIssueAndReturn(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)
	note := createNote(t, svc, 3)

	loan, err := svc.Issue(library.NewStudentNote{StudentID: 1, NoteID: note.ID})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if loan.IsReturned {
		t.Error("fresh loan is marked returned")
	}
	if loan.Condition != library.CondGood {
		t.Errorf("condition = %q; want default %q", loan.Condition, library.CondGood)
	}

	note, err = svc.GetNote(note.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if note.AvailableStock != 2 {
		t.Errorf("availableStock = %d; want 2", note.AvailableStock)
	}

	returnedAt := time.Now().UTC()
	loan, err = svc.Return(loan.ID, library.CondFair, "cover torn", returnedAt)
	if err != nil {
		t.Fatalf("Return failed: %v", err)
	}
	if !loan.IsReturned {
		t.Error("loan not marked returned")
	}
	if loan.Condition != library.CondFair {
		t.Errorf("condition = %q; want %q", loan.Condition, library.CondFair)
	}
	if loan.ReturnDate == nil || !loan.ReturnDate.Equal(returnedAt) {
		t.Errorf("returnDate = %v; want %v", loan.ReturnDate, returnedAt)
	}

	note, _ = svc.GetNote(note.ID)
	if note.AvailableStock != 3 {
		t.Errorf("availableStock after return = %d; want 3", note.AvailableStock)
	}
}

func TestIssueOutOfStock(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)
	note := createNote(t, svc, 1)

	if _, err := svc.Issue(library.NewStudentNote{StudentID: 1, NoteID: note.ID}); err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := svc.Issue(library.NewStudentNote{StudentID: 2, NoteID: note.ID}); err != library.ErrOutOfStock {
		t.Errorf("Issue with no copies err = %v; want ErrOutOfStock", err)
	}
}

func TestIssueMissingNote(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)

	if _, err := svc.Issue(library.NewStudentNote{StudentID: 1, NoteID: 99}); err != library.ErrNoteNotFound {
		t.Errorf("Issue against missing note err = %v; want ErrNoteNotFound", err)
	}
}

func TestRestock(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)
	note := createNote(t, svc, 2)

	at := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	note, err := svc.Restock(note.ID, 5, at)
	if err != nil {
		t.Fatalf("Restock failed: %v", err)
	}
	if note.TotalStock != 7 || note.AvailableStock != 7 {
		t.Errorf("stock = %d/%d; want 7/7", note.AvailableStock, note.TotalStock)
	}
	if !note.LastRestocked.Equal(at) {
		t.Errorf("lastRestocked = %v; want %v", note.LastRestocked, at)
	}
}

func TestOutstandingLoans(t *testing.T) {
	db := inmemdb.Open()
	svc := newService(db)
	note := createNote(t, svc, 5)

	l1, err := svc.Issue(library.NewStudentNote{StudentID: 1, NoteID: note.ID})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	l2, err := svc.Issue(library.NewStudentNote{StudentID: 2, NoteID: note.ID})
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err = svc.Return(l1.ID, library.CondGood, "", time.Now().UTC()); err != nil {
		t.Fatalf("Return failed: %v", err)
	}

	outstanding, err := svc.OutstandingLoans()
	if err != nil {
		t.Fatalf("OutstandingLoans failed: %v", err)
	}
	if len(outstanding) != 1 || outstanding[0].ID != l2.ID {
		t.Errorf("outstanding = %+v; want only loan %d", outstanding, l2.ID)
	}
}
