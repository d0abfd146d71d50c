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

	"github.com/speaksmart/speaksmart-api/internal/models"
	"github.com/speaksmart/speaksmart-api/internal/service"
)

type fakeClassRepo struct {
	classes map[string]*models.Class
}

func (f *fakeClassRepo) Create(ctx context.Context, class *models.Class) error {
	if f.classes == nil {
		f.classes = make(map[string]*models.Class)
	}
	if class.ID == "" {
		class.ID = "class-1"
	}
	stored := *class
	f.classes[class.ID] = &stored
	return nil
}

func (f *fakeClassRepo) FindByID(ctx context.Context, id string) (*models.Class, error) {
	if c, ok := f.classes[id]; ok {
		return c, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeClassRepo) List(ctx context.Context, status models.ClassStatus) ([]models.Class, error) {
	var list []models.Class
	for _, c := range f.classes {
		if status == "" || c.Status == status {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (f *fakeClassRepo) ListByInstructor(ctx context.Context, instructorEmail string) ([]models.Class, error) {
	var list []models.Class
	for _, c := range f.classes {
		if c.InstructorEmail == instructorEmail {
			list = append(list, *c)
		}
	}
	return list, nil
}

func (f *fakeClassRepo) ListPopular(ctx context.Context, limit int) ([]models.Class, error) {
	var list []models.Class
	for _, c := range f.classes {
		if c.Status == models.ClassStatusApproved {
			list = append(list, *c)
		}
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeClassRepo) Approve(ctx context.Context, id string) (*models.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	c.Status = models.ClassStatusApproved
	c.Checked = true
	return c, nil
}

func (f *fakeClassRepo) Update(ctx context.Context, id string, req models.UpdateClassRequest) (*models.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	return c, nil
}

func newClassHandlerForTest(repo *fakeClassRepo) *ClassHandler {
	gin.SetMode(gin.TestMode)
	return NewClassHandler(service.NewClassService(repo, nil, nil, nil, 6))
}

func TestClassHandlerCreate(t *testing.T) {
	handler := newClassHandlerForTest(&fakeClassRepo{})

	payload := `{"name":"Spanish","instructor_name":"Ana","instructor_email":"ana@example.com","price":90,"available_seats":20}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/classes", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var class models.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &class))
	assert.Equal(t, models.ClassStatusPending, class.Status)
}

func TestClassHandlerCreateInvalidPayload(t *testing.T) {
	handler := newClassHandlerForTest(&fakeClassRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/classes", strings.NewReader(`{"name":`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
}

func TestClassHandlerListUnknownStatus(t *testing.T) {
	repo := &fakeClassRepo{classes: map[string]*models.Class{
		"c1": {ID: "c1", Status: models.ClassStatusApproved},
	}}
	handler := newClassHandlerForTest(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/classes?status=archived", nil)

	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var classes []models.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &classes))
	assert.Empty(t, classes)
}

func TestClassHandlerGetNotFound(t *testing.T) {
	handler := newClassHandlerForTest(&fakeClassRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/classes/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassHandlerApprove(t *testing.T) {
	repo := &fakeClassRepo{classes: map[string]*models.Class{
		"c1": {ID: "c1", Status: models.ClassStatusPending},
	}}
	handler := newClassHandlerForTest(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPatch, "/classes/c1/approve", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.Approve(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var class models.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &class))
	assert.Equal(t, models.ClassStatusApproved, class.Status)
	assert.True(t, class.Checked)
}
