package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/bimbel-api/internal/models"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
)

func TestStoreWithMockDeployment(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get user absent", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bimbel.users", mtest.FirstBatch))

		user, err := New(mt.DB).GetUser(context.Background(), 42)
		require.NoError(mt, err)
		assert.Nil(mt, user)
	})

	mt.Run("get user decodes native document", func(mt *mtest.T) {
		joined := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bimbel.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int64(2)},
			{Key: "username", Value: "t1"},
			{Key: "password", Value: "hash"},
			{Key: "full_name", Value: "Teacher One"},
			{Key: "email", Value: "t1@example.com"},
			{Key: "role", Value: "teacher"},
			{Key: "grade", Value: nil},
			{Key: "join_date", Value: joined},
		}))

		user, err := New(mt.DB).GetUserByUsername(context.Background(), "t1")
		require.NoError(mt, err)
		require.NotNil(mt, user)
		assert.Equal(mt, int64(2), user.ID)
		assert.Equal(mt, "Teacher One", user.FullName)
		assert.Equal(mt, models.RoleTeacher, user.Role)
		assert.Nil(mt, user.Grade)
		assert.True(mt, joined.Equal(user.JoinDate))
	})

	mt.Run("list classes empty", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "bimbel.classes", mtest.FirstBatch))

		classes, err := New(mt.DB).ListClassesByGrade(context.Background(), "12")
		require.NoError(mt, err)
		assert.NotNil(mt, classes)
		assert.Empty(mt, classes)
	})

	mt.Run("create class allocates counter id", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "classes"}, {Key: "seq", Value: int64(7)}}}),
			mtest.CreateSuccessResponse(),
		)

		class, err := New(mt.DB).CreateClass(context.Background(), models.Class{Name: "Math", Grade: "10", TeacherID: 1})
		require.NoError(mt, err)
		assert.Equal(mt, int64(7), class.ID)
	})

	mt.Run("duplicate username is conflict", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "users"}, {Key: "seq", Value: int64(3)}}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
		)

		_, err := New(mt.DB).CreateUser(context.Background(), models.User{Username: "t1", Role: models.RoleTeacher})
		require.Error(mt, err)
		assert.ErrorIs(mt, err, appErrors.ErrConflict)
	})

	mt.Run("issue takes stock before storing the lending", func(mt *mtest.T) {
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}},
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "student_notes"}, {Key: "seq", Value: int64(4)}}}),
			mtest.CreateSuccessResponse(),
		)

		lending, err := New(mt.DB).CreateStudentNote(context.Background(), models.StudentNote{StudentID: 1, PublicationNoteID: 9})
		require.NoError(mt, err)
		assert.Equal(mt, int64(4), lending.ID)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 3)
		assert.Equal(mt, "update", events[0].CommandName)
		assert.Equal(mt, "insert", events[2].CommandName)
	})

	mt.Run("failed lending insert restores stock", func(mt *mtest.T) {
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}},
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "student_notes"}, {Key: "seq", Value: int64(5)}}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "write failed"}),
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}},
		)

		lending, err := New(mt.DB).CreateStudentNote(context.Background(), models.StudentNote{StudentID: 1, PublicationNoteID: 9})
		require.Error(mt, err)
		assert.Nil(mt, lending)
		assert.ErrorIs(mt, err, appErrors.ErrPersistence)

		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 4)
		taken := events[0].Command.Lookup("updates", "0", "u", "$inc", "available_stock").AsInt64()
		restored := events[3].Command.Lookup("updates", "0", "u", "$inc", "available_stock").AsInt64()
		assert.Equal(mt, "update", events[3].CommandName)
		assert.Equal(mt, int64(-1), taken)
		assert.Equal(mt, int64(1), restored)
	})

	mt.Run("failed lending insert without stock leaves counter alone", func(mt *mtest.T) {
		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}, {Key: "nModified", Value: 0}},
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "student_notes"}, {Key: "seq", Value: int64(6)}}}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 2, Message: "write failed"}),
		)

		_, err := New(mt.DB).CreateStudentNote(context.Background(), models.StudentNote{StudentID: 1, PublicationNoteID: 9})
		require.Error(mt, err)
		assert.Len(mt, mt.GetAllStartedEvents(), 3)
	})

	mt.Run("command failure is persistence error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		_, err := New(mt.DB).ListEvents(context.Background())
		require.Error(mt, err)
		assert.ErrorIs(mt, err, appErrors.ErrPersistence)
		assert.Contains(mt, appErrors.FromError(err).Details, "not authorized")
	})
}
