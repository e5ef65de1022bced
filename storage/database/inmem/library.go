package inmemdb

import "github.com/elimusoft/elimu/core/library"

type noteRepository struct {
	db *DB
}

var _ library.NoteRepository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *DB) library.NoteRepository {
	return &noteRepository{db: db}
}

func (repo *noteRepository) query() []library.PublicationNote {
	notes := make([]library.PublicationNote, 0, len(repo.db.notes))
	for _, note := range repo.db.notes {
		notes = append(notes, *note)
	}
	return notes
}

func (repo *noteRepository) CreatePublicationNote(nn library.NewPublicationNote) (library.PublicationNote, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	note := nn.PublicationNote()
	repo.db.noteSeq++
	note.ID = repo.db.noteSeq
	repo.db.notes[note.ID] = &note
	return note, nil
}

func (repo *noteRepository) QueryAllPublicationNotes() ([]library.PublicationNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *noteRepository) GetPublicationNoteByID(id int) (library.PublicationNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if note, ok := repo.db.notes[id]; ok {
		return *note, nil
	}
	return library.PublicationNote{}, library.ErrNoteNotFound
}

func (repo *noteRepository) LowStockPublicationNotes() ([]library.PublicationNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]library.PublicationNote, 0)
	for _, note := range repo.query() {
		if note.LowOnStock() {
			matched = append(matched, note)
		}
	}
	return matched, nil
}

func (repo *noteRepository) UpdatePublicationNote(id int, up library.UpdatePublicationNote) (library.PublicationNote, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origNote, ok := repo.db.notes[id]
	if !ok {
		return library.PublicationNote{}, library.ErrNoteNotFound
	}

	// only save set fields
	if up.TotalStock != nil {
		origNote.TotalStock = *up.TotalStock
	}
	if up.AvailableStock != nil {
		origNote.AvailableStock = *up.AvailableStock
	}
	if up.LowStockThreshold != nil {
		origNote.LowStockThreshold = *up.LowStockThreshold
	}
	if up.LastRestocked != nil {
		origNote.LastRestocked = *up.LastRestocked
	}
	if up.Description != nil {
		origNote.Description = *up.Description
	}
	origNote.ClampStock()

	repo.db.notes[id] = origNote
	return *origNote, nil
}

type loanRepository struct {
	db *DB
}

var _ library.LoanRepository = (*loanRepository)(nil) // interface compliance check

func NewLoanRepository(db *DB) library.LoanRepository {
	return &loanRepository{db: db}
}

func (repo *loanRepository) query() []library.StudentNote {
	loans := make([]library.StudentNote, 0, len(repo.db.loans))
	for _, loan := range repo.db.loans {
		loans = append(loans, *loan)
	}
	return loans
}

// CreateStudentNote stores the loan and decrements the referenced note's
// available stock, floored at zero. A missing note skips the stock step; the
// loan record itself still goes through.
func (repo *loanRepository) CreateStudentNote(nl library.NewStudentNote) (library.StudentNote, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	loan := nl.StudentNote()
	repo.db.loanSeq++
	loan.ID = repo.db.loanSeq
	repo.db.loans[loan.ID] = &loan

	if note, ok := repo.db.notes[loan.NoteID]; ok {
		note.AvailableStock--
		note.ClampStock()
	}
	return loan, nil
}

func (repo *loanRepository) QueryAllStudentNotes() ([]library.StudentNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *loanRepository) GetStudentNoteByID(id int) (library.StudentNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if loan, ok := repo.db.loans[id]; ok {
		return *loan, nil
	}
	return library.StudentNote{}, library.ErrLoanNotFound
}

func (repo *loanRepository) FilterStudentNotesByStudent(studentID int) ([]library.StudentNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]library.StudentNote, 0)
	for _, loan := range repo.query() {
		if loan.StudentID == studentID {
			matched = append(matched, loan)
		}
	}
	return matched, nil
}

func (repo *loanRepository) FilterStudentNotesByNote(noteID int) ([]library.StudentNote, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	matched := make([]library.StudentNote, 0)
	for _, loan := range repo.query() {
		if loan.NoteID == noteID {
			matched = append(matched, loan)
		}
	}
	return matched, nil
}

// UpdateStudentNote merges the set fields. Only the isReturned false->true
// transition puts a copy back on the shelf: availableStock goes up by one,
// capped at totalStock. Updating an already-returned loan never touches
// stock.
func (repo *loanRepository) UpdateStudentNote(id int, up library.UpdateStudentNote) (library.StudentNote, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origLoan, ok := repo.db.loans[id]
	if !ok {
		return library.StudentNote{}, library.ErrLoanNotFound
	}

	wasReturned := origLoan.IsReturned

	// only save set fields
	if up.IsReturned != nil {
		origLoan.IsReturned = *up.IsReturned
	}
	if up.ReturnDate != nil {
		origLoan.ReturnDate = up.ReturnDate
	}
	if up.Condition != nil {
		origLoan.Condition = *up.Condition
	}
	if up.Notes != nil {
		origLoan.Notes = *up.Notes
	}

	if !wasReturned && origLoan.IsReturned {
		if note, ok := repo.db.notes[origLoan.NoteID]; ok {
			note.AvailableStock++
			note.ClampStock()
		}
	}

	repo.db.loans[id] = origLoan
	return *origLoan, nil
}
