package dto

import "github.com/noah-isme/bimbel-api/internal/models"

// CreatePublicationRequest adds a stocked study material. AvailableStock defaults to TotalStock.
type CreatePublicationRequest struct {
	Title             string  `json:"title" validate:"required"`
	Subject           string  `json:"subject" validate:"required"`
	Grade             string  `json:"grade" validate:"required"`
	TotalStock        int     `json:"totalStock" validate:"gte=0"`
	AvailableStock    *int    `json:"availableStock" validate:"omitempty,gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
	Description       *string `json:"description"`
}

// RestockRequest overwrites both stock counters.
type RestockRequest struct {
	TotalStock     int `json:"totalStock" validate:"gte=0"`
	AvailableStock int `json:"availableStock" validate:"gte=0"`
}

// IssueNoteRequest lends one copy of a publication to a student.
type IssueNoteRequest struct {
	StudentID  int64        `json:"studentId" validate:"required,gt=0"`
	NoteID     int64        `json:"noteId" validate:"required,gt=0"`
	DateIssued *models.Date `json:"dateIssued"`
	Notes      *string      `json:"notes"`
}

// ReturnNoteRequest closes a lending. ReturnDate defaults to today.
type ReturnNoteRequest struct {
	ReturnDate *models.Date          `json:"returnDate"`
	Condition  *models.NoteCondition `json:"condition" validate:"omitempty,oneof=excellent good fair poor"`
	Notes      *string               `json:"notes"`
}

// PublicationFilter narrows publication listings.
type PublicationFilter struct {
	Grade    string
	LowStock bool
}

// LendingFilter narrows lending listings. StudentID wins over NoteID.
type LendingFilter struct {
	StudentID int64
	NoteID    int64
}
