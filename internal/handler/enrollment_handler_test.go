package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speaksmart/speaksmart-api/internal/middleware"
	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
)

type fakeEnrollmentRepo struct {
	enrollments map[string]models.Enrollment
}

func (f *fakeEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) (bool, error) {
	if f.enrollments == nil {
		f.enrollments = make(map[string]models.Enrollment)
	}
	key := enrollment.StudentEmail + "|" + enrollment.ClassID
	if _, ok := f.enrollments[key]; ok {
		return false, nil
	}
	if enrollment.ID == "" {
		enrollment.ID = "enr-1"
	}
	f.enrollments[key] = *enrollment
	return true, nil
}

func (f *fakeEnrollmentRepo) FindByStudentAndClass(ctx context.Context, studentEmail, classID string) (*models.Enrollment, error) {
	if e, ok := f.enrollments[studentEmail+"|"+classID]; ok {
		return &e, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeEnrollmentRepo) ListByStudent(ctx context.Context, studentEmail string) ([]models.Enrollment, error) {
	var list []models.Enrollment
	for _, e := range f.enrollments {
		if e.StudentEmail == studentEmail {
			list = append(list, e)
		}
	}
	return list, nil
}

type fakePaymentWriter struct{}

func (f *fakePaymentWriter) Create(ctx context.Context, payment *models.Payment) (bool, error) {
	return true, nil
}

type fakeSelectionCleaner struct{}

func (f *fakeSelectionCleaner) DeleteByStudentAndClass(ctx context.Context, studentEmail, classID string) (int64, error) {
	return 1, nil
}

type fakeClassStore struct{}

func (f *fakeClassStore) FindByID(ctx context.Context, id string) (*models.Class, error) {
	return &models.Class{ID: id, Status: models.ClassStatusApproved}, nil
}

func (f *fakeClassStore) IncrementEnrolled(ctx context.Context, id string, delta int) error {
	return nil
}

func newEnrollmentHandlerForTest(repo *fakeEnrollmentRepo) *EnrollmentHandler {
	gin.SetMode(gin.TestMode)
	svc := service.NewEnrollmentService(repo, &fakePaymentWriter{}, &fakeClassStore{}, &fakeSelectionCleaner{}, nil, nil, nil)
	return NewEnrollmentHandler(svc)
}

func TestEnrollmentHandlerComplete(t *testing.T) {
	handler := newEnrollmentHandlerForTest(&fakeEnrollmentRepo{})

	payload := `{"student_email":"student@example.com","class_id":"c1","amount":120,"transaction_id":"pi_123"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/enrollments", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "student@example.com", Role: models.RoleStudent})

	handler.Complete(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var enrollment models.Enrollment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enrollment))
	assert.Equal(t, "c1", enrollment.ClassID)
}

func TestEnrollmentHandlerCompleteForOtherStudentForbidden(t *testing.T) {
	handler := newEnrollmentHandlerForTest(&fakeEnrollmentRepo{})

	payload := `{"student_email":"victim@example.com","class_id":"c1","amount":120,"transaction_id":"pi_123"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/enrollments", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "attacker@example.com", Role: models.RoleStudent})

	handler.Complete(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEnrollmentHandlerListForStudent(t *testing.T) {
	repo := &fakeEnrollmentRepo{enrollments: map[string]models.Enrollment{
		"student@example.com|c1": {ID: "enr-1", StudentEmail: "student@example.com", ClassID: "c1"},
	}}
	handler := newEnrollmentHandlerForTest(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/enrollments/student@example.com", nil)
	c.Params = gin.Params{{Key: "email", Value: "student@example.com"}}

	handler.ListForStudent(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var enrollments []models.Enrollment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &enrollments))
	assert.Len(t, enrollments, 1)
}
