package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core/library"
)

type noteRepository struct {
	repo
}

var _ library.NoteRepository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *sqlx.DB, timeout time.Duration) library.NoteRepository {
	return &noteRepository{newRepo(db, timeout)}
}

func (r *noteRepository) CreatePublicationNote(nn library.NewPublicationNote) (library.PublicationNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	note := nn.PublicationNote()
	const q = `
		INSERT INTO publication_notes
			(subject, grade, total_stock, available_stock, low_stock_threshold, last_restocked, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := r.db.GetContext(ctx, &note.ID, q,
		note.Subject, note.Grade, note.TotalStock, note.AvailableStock,
		note.LowStockThreshold, note.LastRestocked, note.Description,
	); err != nil {
		return library.PublicationNote{}, translate(err, library.ErrNoteNotFound, "inserting publication note")
	}
	return note, nil
}

func (r *noteRepository) QueryAllPublicationNotes() ([]library.PublicationNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	notes := make([]library.PublicationNote, 0)
	if err := r.db.SelectContext(ctx, &notes, `SELECT * FROM publication_notes ORDER BY id`); err != nil {
		return nil, translate(err, library.ErrNoteNotFound, "querying publication notes")
	}
	return notes, nil
}

func (r *noteRepository) GetPublicationNoteByID(id int) (library.PublicationNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var note library.PublicationNote
	if err := r.db.GetContext(ctx, &note, `SELECT * FROM publication_notes WHERE id = $1`, id); err != nil {
		return library.PublicationNote{}, translate(err, library.ErrNoteNotFound, "getting publication note")
	}
	return note, nil
}

func (r *noteRepository) LowStockPublicationNotes() ([]library.PublicationNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	notes := make([]library.PublicationNote, 0)
	if err := r.db.SelectContext(ctx, &notes,
		`SELECT * FROM publication_notes WHERE available_stock <= low_stock_threshold ORDER BY id`,
	); err != nil {
		return nil, translate(err, library.ErrNoteNotFound, "querying low-stock publication notes")
	}
	return notes, nil
}

func (r *noteRepository) UpdatePublicationNote(id int, up library.UpdatePublicationNote) (library.PublicationNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	// clamp available_stock into [0, total_stock] after the merge
	const q = `
		UPDATE publication_notes SET
			total_stock         = COALESCE($2, total_stock),
			available_stock     = LEAST(GREATEST(COALESCE($3, available_stock), 0), COALESCE($2, total_stock)),
			low_stock_threshold = COALESCE($4, low_stock_threshold),
			last_restocked      = COALESCE($5, last_restocked),
			description         = COALESCE($6, description)
		WHERE id = $1
		RETURNING *`
	var note library.PublicationNote
	if err := r.db.GetContext(ctx, &note, q,
		id, up.TotalStock, up.AvailableStock, up.LowStockThreshold, up.LastRestocked, up.Description,
	); err != nil {
		return library.PublicationNote{}, translate(err, library.ErrNoteNotFound, "updating publication note")
	}
	return note, nil
}

type loanRepository struct {
	repo
}

var _ library.LoanRepository = (*loanRepository)(nil) // interface compliance check

func NewLoanRepository(db *sqlx.DB, timeout time.Duration) library.LoanRepository {
	return &loanRepository{newRepo(db, timeout)}
}

// CreateStudentNote inserts the loan and takes one copy off the shelf in the
// same transaction. A missing note skips the stock step without failing the
// loan.
func (r *loanRepository) CreateStudentNote(nl library.NewStudentNote) (library.StudentNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return library.StudentNote{}, errors.Wrap(err, "beginning loan tx")
	}
	defer func() { _ = tx.Rollback() }()

	loan := nl.StudentNote()
	const insQ = `
		INSERT INTO student_notes (student_id, note_id, date_issued, is_returned, condition, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err = tx.GetContext(ctx, &loan.ID, insQ,
		loan.StudentID, loan.NoteID, loan.DateIssued, loan.IsReturned, loan.Condition, loan.Notes,
	); err != nil {
		return library.StudentNote{}, translate(err, library.ErrLoanNotFound, "inserting loan")
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE publication_notes SET available_stock = GREATEST(available_stock - 1, 0) WHERE id = $1`,
		loan.NoteID,
	); err != nil {
		return library.StudentNote{}, errors.Wrap(err, "decrementing stock")
	}

	if err = tx.Commit(); err != nil {
		return library.StudentNote{}, errors.Wrap(err, "committing loan tx")
	}
	return loan, nil
}

func (r *loanRepository) QueryAllStudentNotes() ([]library.StudentNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	loans := make([]library.StudentNote, 0)
	if err := r.db.SelectContext(ctx, &loans, `SELECT * FROM student_notes ORDER BY id`); err != nil {
		return nil, translate(err, library.ErrLoanNotFound, "querying loans")
	}
	return loans, nil
}

func (r *loanRepository) GetStudentNoteByID(id int) (library.StudentNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var loan library.StudentNote
	if err := r.db.GetContext(ctx, &loan, `SELECT * FROM student_notes WHERE id = $1`, id); err != nil {
		return library.StudentNote{}, translate(err, library.ErrLoanNotFound, "getting loan")
	}
	return loan, nil
}

func (r *loanRepository) FilterStudentNotesByStudent(studentID int) ([]library.StudentNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	loans := make([]library.StudentNote, 0)
	if err := r.db.SelectContext(ctx, &loans,
		`SELECT * FROM student_notes WHERE student_id = $1 ORDER BY id`, studentID,
	); err != nil {
		return nil, translate(err, library.ErrLoanNotFound, "filtering loans by student")
	}
	return loans, nil
}

func (r *loanRepository) FilterStudentNotesByNote(noteID int) ([]library.StudentNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	loans := make([]library.StudentNote, 0)
	if err := r.db.SelectContext(ctx, &loans,
		`SELECT * FROM student_notes WHERE note_id = $1 ORDER BY id`, noteID,
	); err != nil {
		return nil, translate(err, library.ErrLoanNotFound, "filtering loans by note")
	}
	return loans, nil
}

// UpdateStudentNote merges the set fields; the isReturned false->true
// transition puts the copy back on the shelf (capped at total stock) in the
// same transaction.
func (r *loanRepository) UpdateStudentNote(id int, up library.UpdateStudentNote) (library.StudentNote, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return library.StudentNote{}, errors.Wrap(err, "beginning return tx")
	}
	defer func() { _ = tx.Rollback() }()

	var wasReturned bool
	if err = tx.GetContext(ctx, &wasReturned,
		`SELECT is_returned FROM student_notes WHERE id = $1 FOR UPDATE`, id,
	); err != nil {
		return library.StudentNote{}, translate(err, library.ErrLoanNotFound, "locking loan")
	}

	const q = `
		UPDATE student_notes SET
			is_returned = COALESCE($2, is_returned),
			return_date = COALESCE($3, return_date),
			condition   = COALESCE($4, condition),
			notes       = COALESCE($5, notes)
		WHERE id = $1
		RETURNING *`
	var loan library.StudentNote
	if err = tx.GetContext(ctx, &loan, q, id, up.IsReturned, up.ReturnDate, up.Condition, up.Notes); err != nil {
		return library.StudentNote{}, translate(err, library.ErrLoanNotFound, "updating loan")
	}

	if !wasReturned && loan.IsReturned {
		if _, err = tx.ExecContext(ctx,
			`UPDATE publication_notes SET available_stock = LEAST(available_stock + 1, total_stock) WHERE id = $1`,
			loan.NoteID,
		); err != nil {
			return library.StudentNote{}, errors.Wrap(err, "incrementing stock")
		}
	}

	if err = tx.Commit(); err != nil {
		return library.StudentNote{}, errors.Wrap(err, "committing return tx")
	}
	return loan, nil
}
