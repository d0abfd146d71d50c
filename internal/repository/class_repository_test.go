package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaksmart/speaksmart-api/internal/models"
)

var classTestColumns = []string{"id", "name", "image_url", "instructor_name", "instructor_email", "price", "available_seats", "status", "checked", "enrolled_count", "created_at", "updated_at"}

func TestClassRepositoryCreateForcesInitialState(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO classes")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	class := &models.Class{
		Name:            "Spanish",
		InstructorName:  "Ana",
		InstructorEmail: "ana@example.com",
		Price:           90,
		Status:          models.ClassStatusApproved,
		Checked:         true,
		EnrolledCount:   99,
	}
	err := repo.Create(context.Background(), class)
	require.NoError(t, err)

	assert.Equal(t, models.ClassStatusPending, class.Status)
	assert.False(t, class.Checked)
	assert.Zero(t, class.EnrolledCount)
	assert.NotEmpty(t, class.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListWithStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classTestColumns).
		AddRow("c1", "Spanish", "", "Ana", "ana@example.com", 90, 20, models.ClassStatusApproved, true, 5, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM classes WHERE status = $1 ORDER BY status DESC, created_at DESC")).
		WithArgs(models.ClassStatusApproved).
		WillReturnRows(rows)

	classes, err := repo.List(context.Background(), models.ClassStatusApproved)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryListPopular(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classTestColumns).
		AddRow("c1", "Spanish", "", "Ana", "ana@example.com", 90, 20, models.ClassStatusApproved, true, 12, time.Now(), time.Now()).
		AddRow("c2", "French", "", "Luc", "luc@example.com", 80, 15, models.ClassStatusApproved, true, 7, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY enrolled_count DESC, created_at ASC LIMIT $2")).
		WithArgs(models.ClassStatusApproved, 6).
		WillReturnRows(rows)

	classes, err := repo.ListPopular(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, 12, classes[0].EnrolledCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryApprove(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classTestColumns).
		AddRow("c1", "Spanish", "", "Ana", "ana@example.com", 90, 20, models.ClassStatusApproved, true, 0, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET status = $2, checked = TRUE")).
		WithArgs("c1", models.ClassStatusApproved, sqlmock.AnyArg()).
		WillReturnRows(rows)

	class, err := repo.Approve(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, models.ClassStatusApproved, class.Status)
	assert.True(t, class.Checked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryApproveMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET status = $2, checked = TRUE")).
		WithArgs("missing", models.ClassStatusApproved, sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryUpdateBuildsPartialSet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows(classTestColumns).
		AddRow("c1", "Spanish", "", "Ana", "ana@example.com", 75, 20, models.ClassStatusApproved, true, 0, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE classes SET price = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("c1", int64(75), sqlmock.AnyArg()).
		WillReturnRows(rows)

	price := int64(75)
	class, err := repo.Update(context.Background(), "c1", models.UpdateClassRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, int64(75), class.Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryIncrementEnrolled(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET enrolled_count = enrolled_count + $2")).
		WithArgs("c1", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementEnrolled(context.Background(), "c1", 1)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryIncrementEnrolledMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("SET enrolled_count = enrolled_count + $2")).
		WithArgs("missing", 1, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementEnrolled(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
