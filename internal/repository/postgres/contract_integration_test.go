//go:build integration

package postgres

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bimbel-api/internal/repository"
	"github.com/noah-isme/bimbel-api/internal/repository/repositorytest"
	"github.com/noah-isme/bimbel-api/pkg/database"
)

func TestStoreContract(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := sqlx.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db.DB, nil))

	repositorytest.Run(t, func(t *testing.T) repository.Store {
		_, err := db.Exec(`TRUNCATE users, students, classes, attendance, test_results, installments,
			teacher_payments, events, publication_notes, student_notes RESTART IDENTITY CASCADE`)
		require.NoError(t, err)
		return New(db)
	})
}
