package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

// Events

func (s *Store) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	var row mapper.EventRow
	if err := s.insert(ctx, "create_event", tableEvents, mapper.EventFields, mapper.EventToRow(event), &row); err != nil {
		return nil, err
	}
	created := mapper.EventFromRow(row)
	return &created, nil
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	var row mapper.EventRow
	ok, err := s.getOne(ctx, "get_event", &row, selectQuery(tableEvents, mapper.EventFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.EventFromRow), nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.listEvents(ctx, "list_events", "")
}

func (s *Store) ListUpcomingEvents(ctx context.Context, from models.Date) ([]models.Event, error) {
	return s.listEvents(ctx, "list_upcoming_events", "date >= $1", from.Time)
}

func (s *Store) listEvents(ctx context.Context, op, where string, args ...interface{}) ([]models.Event, error) {
	var rows []mapper.EventRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableEvents, mapper.EventFields, where)+" ORDER BY date, id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.EventFromRow), nil
}

// Publication notes

func (s *Store) CreatePublicationNote(ctx context.Context, note models.PublicationNote) (*models.PublicationNote, error) {
	var row mapper.PublicationNoteRow
	if err := s.insert(ctx, "create_publication_note", tablePublications, mapper.PublicationNoteFields, mapper.PublicationNoteToRow(repository.PublicationNoteDefaults(note)), &row); err != nil {
		return nil, err
	}
	created := mapper.PublicationNoteFromRow(row)
	return &created, nil
}

func (s *Store) GetPublicationNote(ctx context.Context, id int64) (*models.PublicationNote, error) {
	var row mapper.PublicationNoteRow
	ok, err := s.getOne(ctx, "get_publication_note", &row, selectQuery(tablePublications, mapper.PublicationNoteFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.PublicationNoteFromRow), nil
}

func (s *Store) ListPublicationNotes(ctx context.Context) ([]models.PublicationNote, error) {
	return s.listPublicationNotes(ctx, "list_publication_notes", "")
}

func (s *Store) ListPublicationNotesByGrade(ctx context.Context, grade string) ([]models.PublicationNote, error) {
	return s.listPublicationNotes(ctx, "list_publication_notes_by_grade", "grade = $1", grade)
}

func (s *Store) ListLowStockPublicationNotes(ctx context.Context) ([]models.PublicationNote, error) {
	return s.listPublicationNotes(ctx, "list_low_stock_publication_notes", "available_stock <= low_stock_threshold")
}

func (s *Store) listPublicationNotes(ctx context.Context, op, where string, args ...interface{}) ([]models.PublicationNote, error) {
	var rows []mapper.PublicationNoteRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tablePublications, mapper.PublicationNoteFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.PublicationNoteFromRow), nil
}

func (s *Store) UpdateStock(ctx context.Context, id int64, totalStock, availableStock int) (*models.PublicationNote, error) {
	var row mapper.PublicationNoteRow
	partial := map[string]interface{}{
		"totalStock":     totalStock,
		"availableStock": availableStock,
		"lastRestocked":  repository.Now(),
	}
	ok, err := s.update(ctx, "update_stock", tablePublications, mapper.PublicationNoteFields, id, partial, &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.PublicationNoteFromRow), nil
}

// Student notes

// issueQuery inserts the lending row and, for an unreturned copy, takes one copy out of stock
// in the same statement. The decrement is skipped once stock reaches zero.
func issueQuery() string {
	return fmt.Sprintf(`WITH issued AS (%s),
stock AS (
    UPDATE %s SET available_stock = available_stock - 1
    WHERE id = (SELECT note_id FROM issued) AND NOT (SELECT is_returned FROM issued) AND available_stock > 0
)
SELECT %s FROM issued`, insertQuery(tableStudentNotes, mapper.StudentNoteFields), tablePublications, columnList(mapper.StudentNoteFields))
}

func (s *Store) CreateStudentNote(ctx context.Context, note models.StudentNote) (*models.StudentNote, error) {
	query, args, err := sqlx.Named(issueQuery(), mapper.StudentNoteToRow(repository.StudentNoteDefaults(note)))
	if err != nil {
		return nil, repository.Persistence("create_student_note", err)
	}
	var row mapper.StudentNoteRow
	if _, err := s.getOne(ctx, "create_student_note", &row, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	created := mapper.StudentNoteFromRow(row)
	return &created, nil
}

func (s *Store) GetStudentNote(ctx context.Context, id int64) (*models.StudentNote, error) {
	var row mapper.StudentNoteRow
	ok, err := s.getOne(ctx, "get_student_note", &row, selectQuery(tableStudentNotes, mapper.StudentNoteFields, "id = $1"), id)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.StudentNoteFromRow), nil
}

func (s *Store) ListStudentNotes(ctx context.Context) ([]models.StudentNote, error) {
	return s.listStudentNotes(ctx, "list_student_notes", "")
}

func (s *Store) ListStudentNotesByStudent(ctx context.Context, studentID int64) ([]models.StudentNote, error) {
	return s.listStudentNotes(ctx, "list_student_notes_by_student", "student_id = $1", studentID)
}

func (s *Store) ListStudentNotesByPublication(ctx context.Context, noteID int64) ([]models.StudentNote, error) {
	return s.listStudentNotes(ctx, "list_student_notes_by_publication", "note_id = $1", noteID)
}

func (s *Store) listStudentNotes(ctx context.Context, op, where string, args ...interface{}) ([]models.StudentNote, error) {
	var rows []mapper.StudentNoteRow
	if err := s.selectAll(ctx, op, &rows, selectQuery(tableStudentNotes, mapper.StudentNoteFields, where)+" ORDER BY id", args...); err != nil {
		return nil, err
	}
	return toModels(rows, mapper.StudentNoteFromRow), nil
}

func (s *Store) UpdateStudentNoteStatus(ctx context.Context, id int64, update models.StudentNoteStatusUpdate) (*models.StudentNote, error) {
	partial := map[string]interface{}{"isReturned": update.IsReturned}
	if update.ReturnDate != nil {
		partial["returnDate"] = update.ReturnDate
	}
	if update.Condition != nil {
		partial["condition"] = string(*update.Condition)
	}
	if update.Notes != nil {
		partial["notes"] = *update.Notes
	}

	var row mapper.StudentNoteRow
	ok, err := s.update(ctx, "update_student_note_status", tableStudentNotes, mapper.StudentNoteFields, id, partial, &row)
	if err != nil {
		return nil, err
	}
	return found(ok, row, mapper.StudentNoteFromRow), nil
}
