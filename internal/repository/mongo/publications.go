package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
)

var byDateThenID = bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}}

// Events

func (s *Store) CreateEvent(ctx context.Context, event models.Event) (*models.Event, error) {
	row := mapper.EventToRow(event)
	if err := s.insert(ctx, "create_event", collEvents, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.EventFromRow(row)
	return &created, nil
}

func (s *Store) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	row, err := findOne[mapper.EventRow](ctx, s, "get_event", collEvents, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.EventFromRow), nil
}

func (s *Store) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.listEvents(ctx, "list_events", nil)
}

func (s *Store) ListUpcomingEvents(ctx context.Context, from models.Date) ([]models.Event, error) {
	return s.listEvents(ctx, "list_upcoming_events", bson.M{"date": bson.M{"$gte": from.Time}})
}

func (s *Store) listEvents(ctx context.Context, op string, filter bson.M) ([]models.Event, error) {
	rows, err := findAll[mapper.EventRow](ctx, s, op, collEvents, filter, byDateThenID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.EventFromRow), nil
}

// Publication notes

func (s *Store) CreatePublicationNote(ctx context.Context, note models.PublicationNote) (*models.PublicationNote, error) {
	row := mapper.PublicationNoteToRow(repository.PublicationNoteDefaults(note))
	if err := s.insert(ctx, "create_publication_note", collPublications, func(id int64) { row.ID = id }, &row); err != nil {
		return nil, err
	}
	created := mapper.PublicationNoteFromRow(row)
	return &created, nil
}

func (s *Store) GetPublicationNote(ctx context.Context, id int64) (*models.PublicationNote, error) {
	row, err := findOne[mapper.PublicationNoteRow](ctx, s, "get_publication_note", collPublications, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.PublicationNoteFromRow), nil
}

func (s *Store) ListPublicationNotes(ctx context.Context) ([]models.PublicationNote, error) {
	return s.listPublicationNotes(ctx, "list_publication_notes", nil)
}

func (s *Store) ListPublicationNotesByGrade(ctx context.Context, grade string) ([]models.PublicationNote, error) {
	return s.listPublicationNotes(ctx, "list_publication_notes_by_grade", bson.M{"grade": grade})
}

func (s *Store) ListLowStockPublicationNotes(ctx context.Context) ([]models.PublicationNote, error) {
	filter := bson.M{"$expr": bson.M{"$lte": bson.A{"$available_stock", "$low_stock_threshold"}}}
	return s.listPublicationNotes(ctx, "list_low_stock_publication_notes", filter)
}

func (s *Store) listPublicationNotes(ctx context.Context, op string, filter bson.M) ([]models.PublicationNote, error) {
	rows, err := findAll[mapper.PublicationNoteRow](ctx, s, op, collPublications, filter, byID)
	if err != nil {
		return nil, err
	}
	return toModels(rows, mapper.PublicationNoteFromRow), nil
}

func (s *Store) UpdateStock(ctx context.Context, id int64, totalStock, availableStock int) (*models.PublicationNote, error) {
	partial := map[string]interface{}{
		"totalStock":     totalStock,
		"availableStock": availableStock,
		"lastRestocked":  repository.Now(),
	}
	row, err := updateOne[mapper.PublicationNoteRow](ctx, s, "update_stock", collPublications, mapper.PublicationNoteFields, id, partial)
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.PublicationNoteFromRow), nil
}

// Student notes

// CreateStudentNote takes a copy out of stock with a single conditional update, so the counter
// cannot go below zero under concurrent issues, and then stores the lending record. A failed
// insert hands the copy back before returning.
func (s *Store) CreateStudentNote(ctx context.Context, note models.StudentNote) (*models.StudentNote, error) {
	row := mapper.StudentNoteToRow(repository.StudentNoteDefaults(note))

	taken := false
	if !row.IsReturned {
		res, err := s.adjustStock(ctx, "decrement_stock", row.NoteID, -1)
		if err != nil {
			return nil, err
		}
		taken = res.ModifiedCount == 1
	}

	if err := s.insert(ctx, "create_student_note", collStudentNotes, func(id int64) { row.ID = id }, &row); err != nil {
		if taken {
			// The original error wins; a failed restore is only observable in the stock count.
			_, _ = s.adjustStock(context.WithoutCancel(ctx), "restore_stock", row.NoteID, 1)
		}
		return nil, err
	}

	created := mapper.StudentNoteFromRow(row)
	return &created, nil
}

// adjustStock moves available_stock by delta. Decrements only match notes with stock left.
func (s *Store) adjustStock(ctx context.Context, op string, noteID int64, delta int) (*mongo.UpdateResult, error) {
	defer s.observe(op, time.Now())
	filter := bson.M{"_id": noteID}
	if delta < 0 {
		filter["available_stock"] = bson.M{"$gt": 0}
	}
	res, err := s.db.Collection(collPublications).UpdateOne(ctx, filter, bson.M{"$inc": bson.M{"available_stock": delta}})
	if err != nil {
		return nil, translate(op, err)
	}
	return res, nil
}

func (s *Store) GetStudentNote(ctx context.Context, id int64) (*models.StudentNote, error) {
	row, err := findOne[mapper.StudentNoteRow](ctx, s, "get_student_note", collStudentNotes, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.StudentNoteFromRow), nil
}

func (s *Store) ListStudentNotes(ctx context.Context) ([]models.StudentNote, error) {
	return s.listStudentNotes(ctx, "list_student_notes", nil)
}

func (s *Store) ListStudentNotesByStudent(ctx context.Context, studentID int64) ([]models.StudentNote, error) {
	return s.listStudentNotes(ctx, "list_student_notes_by_student", bson.M{"student_id": studentID})
}

func (s *Store) ListStudentNotesByPublication(ctx context.Context, noteID int64) ([]models.StudentNote, error) {
	return s.listStudentNotes(ctx, "list_student_notes_by_publication", bson.M{"note_id": noteID})
}

func (s *Store) listStudentNotes(ctx context.Context, op string, filter bson.M) ([]models.StudentNote, error) {
	rows, err := findAll[mapper.StudentNoteRow](ctx, s, op, collStudentNotes, filter, byID)
	if err != nil {
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
	row, err := updateOne[mapper.StudentNoteRow](ctx, s, "update_student_note_status", collStudentNotes, mapper.StudentNoteFields, id, partial)
	if err != nil {
		return nil, err
	}
	return toModel(row, mapper.StudentNoteFromRow), nil
}
