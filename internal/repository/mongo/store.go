// Package mongo is the document-store adapter. Every entity lives in its own collection and
// keeps its integer id as the document _id, allocated from the counters collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/bimbel-api/internal/mapper"
	"github.com/noah-isme/bimbel-api/internal/repository"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

const (
	collCounters        = "counters"
	collUsers           = "users"
	collStudents        = "students"
	collClasses         = "classes"
	collAttendance      = "attendance"
	collTestResults     = "test_results"
	collInstallments    = "installments"
	collTeacherPayments = "teacher_payments"
	collEvents          = "events"
	collPublications    = "publication_notes"
	collStudentNotes    = "student_notes"
)

var byID = bson.D{{Key: "_id", Value: 1}}

// QueryObserver receives the duration of every backend call, labelled by operation.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// Store implements repository.Store on MongoDB.
type Store struct {
	db       *mongo.Database
	observer QueryObserver
}

var _ repository.Store = (*Store)(nil)

// Option customises a Store.
type Option func(*Store)

// WithObserver reports call timings to o.
func WithObserver(o QueryObserver) Option {
	return func(s *Store) { s.observer = o }
}

// New wraps a database handle.
func New(db *mongo.Database, opts ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndexes creates the unique indexes the port relies on for conflict detection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string]mongo.IndexModel{
		collUsers:    {Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		collStudents: {Keys: bson.D{{Key: "user_id", Value: 1}}, Options: unique},
	}
	for coll, model := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) observe(op string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveDBQuery("mongo."+op, time.Since(start))
	}
}

func translate(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, op+": duplicate key")
	}
	return repository.Persistence(op, err)
}

// nextID atomically increments the per-collection counter and returns the new value.
func (s *Store) nextID(ctx context.Context, coll string) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": coll},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// insert allocates an id, hands it to assign and stores doc.
func (s *Store) insert(ctx context.Context, op, coll string, assign func(int64), doc interface{}) error {
	defer s.observe(op, time.Now())
	id, err := s.nextID(ctx, coll)
	if err != nil {
		return translate(op, err)
	}
	assign(id)
	if _, err := s.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		return translate(op, err)
	}
	return nil
}

func findOne[R any](ctx context.Context, s *Store, op, coll string, filter bson.M) (*R, error) {
	defer s.observe(op, time.Now())
	var row R
	if err := s.db.Collection(coll).FindOne(ctx, filter).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, translate(op, err)
	}
	return &row, nil
}

func findAll[R any](ctx context.Context, s *Store, op, coll string, filter bson.M, sort bson.D) ([]R, error) {
	defer s.observe(op, time.Now())
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.db.Collection(coll).Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, translate(op, err)
	}
	rows := make([]R, 0)
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, translate(op, err)
	}
	return rows, nil
}

// updateOne applies a domain-keyed partial and returns the updated document.
func updateOne[R any](ctx context.Context, s *Store, op, coll string, fields mapper.FieldSet, id int64, partial map[string]interface{}) (*R, error) {
	defer s.observe(op, time.Now())
	set := bson.M(mapper.ToNative(fields, partial))
	var row R
	err := s.db.Collection(coll).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, translate(op, err)
	}
	return &row, nil
}

func toModels[R, M any](rows []R, fn func(R) M) []M {
	out := make([]M, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return out
}

func toModel[R, M any](row *R, fn func(R) M) *M {
	if row == nil {
		return nil
	}
	m := fn(*row)
	return &m
}
