package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaksmart/speaksmart-api/internal/models"
)

func TestSelectionRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_email", "class_id", "created_at"}).
		AddRow("sel-1", "student@example.com", "c1", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM selections WHERE student_email = $1 ORDER BY created_at DESC")).
		WithArgs("student@example.com").
		WillReturnRows(rows)

	selections, err := repo.ListByStudent(context.Background(), "student@example.com")
	require.NoError(t, err)
	require.Len(t, selections, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryDeleteReportsMatch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM selections WHERE id = $1")).
		WithArgs("sel-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM selections WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "sel-1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryDeleteByStudentAndClass(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM selections WHERE student_email = $1 AND class_id = $2")).
		WithArgs("student@example.com", "c1").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.DeleteByStudentAndClass(context.Background(), "student@example.com", "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectionRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSelectionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO selections")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	selection := &models.Selection{StudentEmail: "student@example.com", ClassID: "c1"}
	err := repo.Create(context.Background(), selection)
	require.NoError(t, err)
	assert.NotEmpty(t, selection.ID)
	assert.False(t, selection.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
