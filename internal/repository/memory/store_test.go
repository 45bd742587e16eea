package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/repositorytest"
)

func TestStoreContract(t *testing.T) {
	repositorytest.Run(t, func(t *testing.T) repository.Store { return New() })
}

func TestConcurrentIssuesNeverOversell(t *testing.T) {
	ctx := context.Background()
	store := New()
	note, err := store.CreatePublicationNote(ctx, models.PublicationNote{Title: "Algebra", Subject: "Math", Grade: "10", TotalStock: 10, AvailableStock: 10})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func(student int64) {
			defer wg.Done()
			_, err := store.CreateStudentNote(ctx, models.StudentNote{StudentID: student, PublicationNoteID: note.ID})
			assert.NoError(t, err)
		}(int64(i + 1))
	}
	wg.Wait()

	got, err := store.GetPublicationNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.AvailableStock)

	lendings, err := store.ListStudentNotesByPublication(ctx, note.ID)
	require.NoError(t, err)
	assert.Len(t, lendings, 25)
}

func TestReturnedValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	store := New()
	created, err := store.CreateClass(ctx, models.Class{Name: "Math", Grade: "10", TeacherID: 1})
	require.NoError(t, err)

	created.Name = "mutated"
	got, err := store.GetClass(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Math", got.Name)
}

func TestIDsAreMonotonicPerEntity(t *testing.T) {
	ctx := context.Background()
	store := New()
	c1, _ := store.CreateClass(ctx, models.Class{Name: "A", Grade: "10", TeacherID: 1})
	e1, _ := store.CreateEvent(ctx, models.Event{Title: "E", Date: models.Today()})
	c2, _ := store.CreateClass(ctx, models.Class{Name: "B", Grade: "10", TeacherID: 1})

	assert.Equal(t, int64(1), c1.ID)
	assert.Equal(t, int64(2), c2.ID)
	assert.Equal(t, int64(1), e1.ID)
}
