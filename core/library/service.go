package library

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNoteNotFound = errors.New("publication note not found")
	ErrLoanNotFound = errors.New("loan record not found")
	ErrOutOfStock   = errors.New("no copies available")
)

type (
	NoteRepository interface {
		CreatePublicationNote(nn NewPublicationNote) (PublicationNote, error)
		QueryAllPublicationNotes() ([]PublicationNote, error)
		GetPublicationNoteByID(id int) (PublicationNote, error)
		// LowStockPublicationNotes returns the notes whose available stock
		// has reached their low-stock threshold (inclusive).
		LowStockPublicationNotes() ([]PublicationNote, error)
		UpdatePublicationNote(id int, up UpdatePublicationNote) (PublicationNote, error)
	}

	// LoanRepository owns the loan records. Creating an unreturned loan
	// decrements the referenced note's available stock by one (floored at
	// zero); flipping isReturned false->true increments it by one (capped at
	// the total stock). No other transition touches stock.
	LoanRepository interface {
		CreateStudentNote(nl NewStudentNote) (StudentNote, error)
		QueryAllStudentNotes() ([]StudentNote, error)
		GetStudentNoteByID(id int) (StudentNote, error)
		FilterStudentNotesByStudent(studentID int) ([]StudentNote, error)
		FilterStudentNotesByNote(noteID int) ([]StudentNote, error)
		UpdateStudentNote(id int, up UpdateStudentNote) (StudentNote, error)
	}

	Service struct {
		notes NoteRepository
		loans LoanRepository
	}
)

func NewService(notes NoteRepository, loans LoanRepository) *Service {
	return &Service{notes: notes, loans: loans}
}

// Notes

func (svc *Service) CreateNote(nn NewPublicationNote) (PublicationNote, error) {
	return svc.notes.CreatePublicationNote(nn)
}

func (svc *Service) QueryAllNotes() ([]PublicationNote, error) {
	return svc.notes.QueryAllPublicationNotes()
}

func (svc *Service) GetNote(id int) (PublicationNote, error) {
	return svc.notes.GetPublicationNoteByID(id)
}

func (svc *Service) LowStock() ([]PublicationNote, error) {
	return svc.notes.LowStockPublicationNotes()
}

func (svc *Service) UpdateNote(id int, up UpdatePublicationNote) (PublicationNote, error) {
	return svc.notes.UpdatePublicationNote(id, up)
}

// Restock raises the total and available stock by n copies and stamps
// lastRestocked.
func (svc *Service) Restock(id, n int, at time.Time) (PublicationNote, error) {
	note, err := svc.notes.GetPublicationNoteByID(id)
	if err != nil {
		return PublicationNote{}, err
	}
	total := note.TotalStock + n
	available := note.AvailableStock + n
	return svc.notes.UpdatePublicationNote(id, UpdatePublicationNote{
		TotalStock:     &total,
		AvailableStock: &available,
		LastRestocked:  &at,
	})
}

// Loans

// Issue lends a copy to a student. The referenced note must exist and have a
// copy available; the stock decrement itself happens in storage alongside the
// loan creation.
func (svc *Service) Issue(nl NewStudentNote) (StudentNote, error) {
	note, err := svc.notes.GetPublicationNoteByID(nl.NoteID)
	if err != nil {
		return StudentNote{}, err
	}
	if note.AvailableStock <= 0 {
		return StudentNote{}, ErrOutOfStock
	}
	return svc.loans.CreateStudentNote(nl)
}

// Return marks a loan as returned, recording the copy's condition. Returning
// an already-returned loan is a no-op on stock.
func (svc *Service) Return(id int, condition, notes string, returnedAt time.Time) (StudentNote, error) {
	returned := true
	up := UpdateStudentNote{IsReturned: &returned, ReturnDate: &returnedAt}
	if condition != "" {
		up.Condition = &condition
	}
	if notes != "" {
		up.Notes = &notes
	}
	return svc.loans.UpdateStudentNote(id, up)
}

func (svc *Service) QueryAllLoans() ([]StudentNote, error) {
	return svc.loans.QueryAllStudentNotes()
}

func (svc *Service) GetLoan(id int) (StudentNote, error) {
	return svc.loans.GetStudentNoteByID(id)
}

func (svc *Service) LoansByStudent(studentID int) ([]StudentNote, error) {
	return svc.loans.FilterStudentNotesByStudent(studentID)
}

func (svc *Service) LoansByNote(noteID int) ([]StudentNote, error) {
	return svc.loans.FilterStudentNotesByNote(noteID)
}

// OutstandingLoans returns the loans not yet returned.
func (svc *Service) OutstandingLoans() ([]StudentNote, error) {
	loans, err := svc.loans.QueryAllStudentNotes()
	if err != nil {
		return nil, err
	}

	out := make([]StudentNote, 0, len(loans))
	for _, loan := range loans {
		if !loan.IsReturned {
			out = append(out, loan)
		}
	}
	return out, nil
}
