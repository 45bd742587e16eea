package models

import "time"

// DefaultLowStockThreshold applies when a note is created without a threshold.
const DefaultLowStockThreshold = 5

// PublicationNote is a printed study material kept in stock for lending.
type PublicationNote struct {
	ID                int64     `json:"id"`
	Title             string    `json:"title"`
	Subject           string    `json:"subject"`
	Grade             string    `json:"grade"`
	TotalStock        int       `json:"totalStock"`
	AvailableStock    int       `json:"availableStock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LastRestocked     time.Time `json:"lastRestocked"`
	Description       *string   `json:"description"`
}

// IsLowStock reports whether available copies reached the threshold.
func (n PublicationNote) IsLowStock() bool {
	return n.AvailableStock <= n.LowStockThreshold
}

// NoteCondition describes a returned copy.
type NoteCondition string

const (
	NoteConditionExcellent NoteCondition = "excellent"
	NoteConditionGood      NoteCondition = "good"
	NoteConditionFair      NoteCondition = "fair"
	NoteConditionPoor      NoteCondition = "poor"
)

// Valid returns true when the condition is a supported value.
func (c NoteCondition) Valid() bool {
	switch c {
	case NoteConditionExcellent, NoteConditionGood, NoteConditionFair, NoteConditionPoor:
		return true
	default:
		return false
	}
}

// StudentNote records one copy of a publication lent to one student.
type StudentNote struct {
	ID                int64          `json:"id"`
	StudentID         int64          `json:"studentId"`
	PublicationNoteID int64          `json:"noteId"`
	DateIssued        Date           `json:"dateIssued"`
	IsReturned        bool           `json:"isReturned"`
	ReturnDate        *Date          `json:"returnDate"`
	Condition         *NoteCondition `json:"condition"`
	Notes             *string        `json:"notes"`
}

// StudentNoteStatusUpdate carries the mutable lending fields. Nil fields are left unchanged.
type StudentNoteStatusUpdate struct {
	IsReturned bool
	ReturnDate *Date
	Condition  *NoteCondition
	Notes      *string
}
