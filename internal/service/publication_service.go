package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bimbel-api/internal/dto"
	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

type publicationRepository interface {
	CreatePublicationNote(ctx context.Context, note models.PublicationNote) (*models.PublicationNote, error)
	GetPublicationNote(ctx context.Context, id int64) (*models.PublicationNote, error)
	ListPublicationNotes(ctx context.Context) ([]models.PublicationNote, error)
	ListPublicationNotesByGrade(ctx context.Context, grade string) ([]models.PublicationNote, error)
	ListLowStockPublicationNotes(ctx context.Context) ([]models.PublicationNote, error)
	UpdateStock(ctx context.Context, id int64, totalStock, availableStock int) (*models.PublicationNote, error)

	CreateStudentNote(ctx context.Context, note models.StudentNote) (*models.StudentNote, error)
	GetStudentNote(ctx context.Context, id int64) (*models.StudentNote, error)
	ListStudentNotes(ctx context.Context) ([]models.StudentNote, error)
	ListStudentNotesByStudent(ctx context.Context, studentID int64) ([]models.StudentNote, error)
	ListStudentNotesByPublication(ctx context.Context, noteID int64) ([]models.StudentNote, error)
	UpdateStudentNoteStatus(ctx context.Context, id int64, update models.StudentNoteStatusUpdate) (*models.StudentNote, error)

	studentLookup
}

// PublicationService manages study material stock and lending.
type PublicationService struct {
	repo      publicationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPublicationService constructs the publication service.
func NewPublicationService(repo publicationRepository, validate *validator.Validate, logger *zap.Logger) *PublicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicationService{repo: repo, validator: newValidator(validate), logger: logger}
}

// Create adds a publication.
func (s *PublicationService) Create(ctx context.Context, req dto.CreatePublicationRequest) (*models.PublicationNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid publication payload")
	}

	available := req.TotalStock
	if req.AvailableStock != nil {
		available = *req.AvailableStock
	}
	if available > req.TotalStock {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availableStock cannot exceed totalStock")
	}

	return s.repo.CreatePublicationNote(ctx, models.PublicationNote{
		Title:             req.Title,
		Subject:           req.Subject,
		Grade:             req.Grade,
		TotalStock:        req.TotalStock,
		AvailableStock:    available,
		LowStockThreshold: req.LowStockThreshold,
		Description:       req.Description,
	})
}

// Get returns a publication by ID.
func (s *PublicationService) Get(ctx context.Context, id int64) (*models.PublicationNote, error) {
	note, err := s.repo.GetPublicationNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFound("publication not found")
	}
	return note, nil
}

// List returns publications matching filter.
func (s *PublicationService) List(ctx context.Context, filter dto.PublicationFilter) ([]models.PublicationNote, error) {
	switch {
	case filter.LowStock:
		return s.repo.ListLowStockPublicationNotes(ctx)
	case filter.Grade != "":
		return s.repo.ListPublicationNotesByGrade(ctx, filter.Grade)
	default:
		return s.repo.ListPublicationNotes(ctx)
	}
}

// Restock sets both counters and stamps the restock time.
func (s *PublicationService) Restock(ctx context.Context, id int64, req dto.RestockRequest) (*models.PublicationNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid restock payload")
	}
	if req.AvailableStock > req.TotalStock {
		return nil, appErrors.Clone(appErrors.ErrValidation, "availableStock cannot exceed totalStock")
	}

	note, err := s.repo.UpdateStock(ctx, id, req.TotalStock, req.AvailableStock)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFound("publication not found")
	}
	s.logger.Info("publication restocked", zap.Int64("note_id", id), zap.Int("available_stock", note.AvailableStock))
	return note, nil
}

// Issue lends one copy. It fails with OUT_OF_STOCK when no copy is available; a concurrent
// issue that drains the last copy first is clamped at zero by the store.
func (s *PublicationService) Issue(ctx context.Context, req dto.IssueNoteRequest) (*models.StudentNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid lending payload")
	}
	if err := requireStudent(ctx, s.repo, req.StudentID); err != nil {
		return nil, err
	}

	note, err := s.repo.GetPublicationNote(ctx, req.NoteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, notFound("publication not found")
	}
	if note.AvailableStock <= 0 {
		return nil, appErrors.Clone(appErrors.ErrOutOfStock, note.Title+" is out of stock")
	}

	lending := models.StudentNote{
		StudentID:         req.StudentID,
		PublicationNoteID: req.NoteID,
		Notes:             req.Notes,
	}
	if req.DateIssued != nil {
		lending.DateIssued = *req.DateIssued
	}

	issued, err := s.repo.CreateStudentNote(ctx, lending)
	if err != nil {
		return nil, err
	}
	if note.AvailableStock-1 <= note.LowStockThreshold {
		s.logger.Info("publication low on stock", zap.Int64("note_id", note.ID), zap.Int("available_stock", note.AvailableStock-1))
	}
	return issued, nil
}

// Return marks a lending returned. Stock is not put back; restocking is explicit.
func (s *PublicationService) Return(ctx context.Context, id int64, req dto.ReturnNoteRequest) (*models.StudentNote, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid return payload")
	}

	returnDate := models.Today()
	if req.ReturnDate != nil && !req.ReturnDate.IsZero() {
		returnDate = *req.ReturnDate
	}

	lending, err := s.repo.UpdateStudentNoteStatus(ctx, id, models.StudentNoteStatusUpdate{
		IsReturned: true,
		ReturnDate: &returnDate,
		Condition:  req.Condition,
		Notes:      req.Notes,
	})
	if err != nil {
		return nil, err
	}
	if lending == nil {
		return nil, notFound("lending not found")
	}
	return lending, nil
}

// GetLending returns a lending record by ID.
func (s *PublicationService) GetLending(ctx context.Context, id int64) (*models.StudentNote, error) {
	lending, err := s.repo.GetStudentNote(ctx, id)
	if err != nil {
		return nil, err
	}
	if lending == nil {
		return nil, notFound("lending not found")
	}
	return lending, nil
}

// ListLendings returns lending records matching filter.
func (s *PublicationService) ListLendings(ctx context.Context, filter dto.LendingFilter) ([]models.StudentNote, error) {
	switch {
	case filter.StudentID > 0:
		return s.repo.ListStudentNotesByStudent(ctx, filter.StudentID)
	case filter.NoteID > 0:
		return s.repo.ListStudentNotesByPublication(ctx, filter.NoteID)
	default:
		return s.repo.ListStudentNotes(ctx)
	}
}
