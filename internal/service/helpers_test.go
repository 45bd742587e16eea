package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/memory"
)

// seededStore returns a memory store holding the demo dataset: admin=1, t1=2, s1=3, s2=4,
// student profiles 1 (s1) and 2 (s2), Matematika 10=1 and Fisika 11=2, Modul Aljabar=1 and
// Modul Optik=2.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, repository.SeedFixtures(context.Background(), store, func(plain string) (string, error) {
		return "plain:" + plain, nil
	}))
	return store
}

// profileStore returns an otherwise empty memory store with student profiles 1, 2 and 3.
func profileStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	for _, userID := range []int64{3, 4, 5} {
		_, err := store.CreateStudent(context.Background(), models.Student{UserID: userID})
		require.NoError(t, err)
	}
	return store
}
