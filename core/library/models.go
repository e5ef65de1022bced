package library

import "time"

// Loan conditions
const (
	CondExcellent = "excellent"
	CondGood      = "good"
	CondFair      = "fair"
	CondPoor      = "poor"
)

const DefaultLowStockThreshold = 5

// PublicationNote is a printed study-material title held in stock.
type PublicationNote struct {
	ID                int       `json:"id" db:"id"`
	Subject           string    `json:"subject" db:"subject"`
	Grade             string    `json:"grade" db:"grade"`
	TotalStock        int       `json:"totalStock" db:"total_stock"`
	AvailableStock    int       `json:"availableStock" db:"available_stock"`
	LowStockThreshold int       `json:"lowStockThreshold" db:"low_stock_threshold"`
	LastRestocked     time.Time `json:"lastRestocked" db:"last_restocked"`
	Description       string    `json:"description,omitempty" db:"description"`
}

// LowOnStock reports whether available stock has reached the low-stock
// threshold (inclusive).
func (n PublicationNote) LowOnStock() bool {
	return n.AvailableStock <= n.LowStockThreshold
}

// ClampStock forces availableStock into [0, totalStock].
func (n *PublicationNote) ClampStock() {
	if n.AvailableStock < 0 {
		n.AvailableStock = 0
	}
	if n.AvailableStock > n.TotalStock {
		n.AvailableStock = n.TotalStock
	}
}

type NewPublicationNote struct {
	Subject           string `json:"subject" validate:"required"`
	Grade             string `json:"grade" validate:"required"`
	TotalStock        int    `json:"totalStock" validate:"gte=0"`
	AvailableStock    *int   `json:"availableStock,omitempty"`
	LowStockThreshold *int   `json:"lowStockThreshold,omitempty"`
	Description       string `json:"description,omitempty"`
}

// PublicationNote builds the full record: omitted availableStock defaults to
// the total stock, omitted threshold to DefaultLowStockThreshold, and
// lastRestocked to now. Stock is clamped on the way in.
func (nn NewPublicationNote) PublicationNote() PublicationNote {
	available := nn.TotalStock
	if nn.AvailableStock != nil {
		available = *nn.AvailableStock
	}
	threshold := DefaultLowStockThreshold
	if nn.LowStockThreshold != nil {
		threshold = *nn.LowStockThreshold
	}
	note := PublicationNote{
		Subject:           nn.Subject,
		Grade:             nn.Grade,
		TotalStock:        nn.TotalStock,
		AvailableStock:    available,
		LowStockThreshold: threshold,
		LastRestocked:     time.Now().UTC(),
		Description:       nn.Description,
	}
	note.ClampStock()
	return note
}

// UpdatePublicationNote lists the mutable PublicationNote fields (restocks
// and threshold adjustments).
type UpdatePublicationNote struct {
	TotalStock        *int       `json:"totalStock,omitempty"`
	AvailableStock    *int       `json:"availableStock,omitempty"`
	LowStockThreshold *int       `json:"lowStockThreshold,omitempty"`
	LastRestocked     *time.Time `json:"lastRestocked,omitempty"`
	Description       *string    `json:"description,omitempty"`
}

// StudentNote is the loan record of one PublicationNote copy to one student.
type StudentNote struct {
	ID         int        `json:"id" db:"id"`
	StudentID  int        `json:"studentId" db:"student_id"`
	NoteID     int        `json:"noteId" db:"note_id"`
	DateIssued time.Time  `json:"dateIssued" db:"date_issued"`
	IsReturned bool       `json:"isReturned" db:"is_returned"`
	ReturnDate *time.Time `json:"returnDate,omitempty" db:"return_date"`
	Condition  string     `json:"condition" db:"condition"`
	Notes      string     `json:"notes,omitempty" db:"notes"`
}

type NewStudentNote struct {
	StudentID  int        `json:"studentId" validate:"required"`
	NoteID     int        `json:"noteId" validate:"required"`
	DateIssued *time.Time `json:"dateIssued,omitempty"`
	Condition  string     `json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair poor"`
	Notes      string     `json:"notes,omitempty"`
}

// StudentNote builds the full record: omitted dateIssued defaults to now and
// condition to good. Loans always start out unreturned.
func (nl NewStudentNote) StudentNote() StudentNote {
	issued := time.Now().UTC()
	if nl.DateIssued != nil {
		issued = *nl.DateIssued
	}
	condition := nl.Condition
	if condition == "" {
		condition = CondGood
	}
	return StudentNote{
		StudentID:  nl.StudentID,
		NoteID:     nl.NoteID,
		DateIssued: issued,
		Condition:  condition,
		Notes:      nl.Notes,
	}
}

// UpdateStudentNote lists the mutable StudentNote fields (returns and
// condition notes).
type UpdateStudentNote struct {
	IsReturned *bool      `json:"isReturned,omitempty"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Condition  *string    `json:"condition,omitempty" validate:"omitempty,oneof=excellent good fair poor"`
	Notes      *string    `json:"notes,omitempty"`
}
