package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/speaksmart/speaksmart-api/internal/models"
	appErrors "github.com/speaksmart/speaksmart-api/pkg/errors"
)

type mockSelectionRepo struct {
	selections map[string]models.Selection
	nextID     int
}

func (m *mockSelectionRepo) Create(ctx context.Context, selection *models.Selection) error {
	if m.selections == nil {
		m.selections = make(map[string]models.Selection)
	}
	if selection.ID == "" {
		m.nextID++
		selection.ID = "sel-1"
	}
	m.selections[selection.ID] = *selection
	return nil
}

func (m *mockSelectionRepo) FindByID(ctx context.Context, id string) (*models.Selection, error) {
	if s, ok := m.selections[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSelectionRepo) ListByStudent(ctx context.Context, studentEmail string) ([]models.Selection, error) {
	var list []models.Selection
	for _, s := range m.selections {
		if s.StudentEmail == studentEmail {
			list = append(list, s)
		}
	}
	return list, nil
}

func (m *mockSelectionRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.selections[id]; !ok {
		return false, nil
	}
	delete(m.selections, id)
	return true, nil
}

func newTestSelectionService(repo *mockSelectionRepo, classes *mockClassStore) *SelectionService {
	return NewSelectionService(repo, classes, validator.New(), zap.NewNop())
}

func TestSelectionServiceSelect(t *testing.T) {
	repo := &mockSelectionRepo{}
	classes := &mockClassStore{classes: map[string]*models.Class{"c1": {ID: "c1"}}}
	svc := newTestSelectionService(repo, classes)

	selection, err := svc.Select(context.Background(), models.SelectClassRequest{StudentEmail: "student@example.com", ClassID: "c1"})
	require.NoError(t, err)
	assert.NotEmpty(t, selection.ID)
	assert.Equal(t, "c1", selection.ClassID)
}

func TestSelectionServiceSelectUnknownClass(t *testing.T) {
	svc := newTestSelectionService(&mockSelectionRepo{}, &mockClassStore{})

	_, err := svc.Select(context.Background(), models.SelectClassRequest{StudentEmail: "student@example.com", ClassID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSelectionServiceListForStudentEmptyEmail(t *testing.T) {
	svc := newTestSelectionService(&mockSelectionRepo{}, &mockClassStore{})

	list, err := svc.ListForStudent(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSelectionServiceGet(t *testing.T) {
	repo := &mockSelectionRepo{selections: map[string]models.Selection{
		"sel-1": {ID: "sel-1", StudentEmail: "student@example.com", ClassID: "c1"},
	}}
	svc := newTestSelectionService(repo, &mockClassStore{})

	selection, err := svc.Get(context.Background(), "student@example.com", "sel-1")
	require.NoError(t, err)
	assert.Equal(t, "c1", selection.ClassID)
}

func TestSelectionServiceGetWrongStudentScope(t *testing.T) {
	repo := &mockSelectionRepo{selections: map[string]models.Selection{
		"sel-1": {ID: "sel-1", StudentEmail: "student@example.com", ClassID: "c1"},
	}}
	svc := newTestSelectionService(repo, &mockClassStore{})

	_, err := svc.Get(context.Background(), "other@example.com", "sel-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSelectionServiceGetMissing(t *testing.T) {
	svc := newTestSelectionService(&mockSelectionRepo{}, &mockClassStore{})

	_, err := svc.Get(context.Background(), "student@example.com", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSelectionServiceRemove(t *testing.T) {
	repo := &mockSelectionRepo{selections: map[string]models.Selection{
		"sel-1": {ID: "sel-1", StudentEmail: "student@example.com", ClassID: "c1"},
	}}
	svc := newTestSelectionService(repo, &mockClassStore{})

	err := svc.Remove(context.Background(), "sel-1", "student@example.com")
	require.NoError(t, err)
	assert.Empty(t, repo.selections)
}

func TestSelectionServiceRemoveWrongOwner(t *testing.T) {
	repo := &mockSelectionRepo{selections: map[string]models.Selection{
		"sel-1": {ID: "sel-1", StudentEmail: "student@example.com", ClassID: "c1"},
	}}
	svc := newTestSelectionService(repo, &mockClassStore{})

	err := svc.Remove(context.Background(), "sel-1", "other@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Len(t, repo.selections, 1)
}

func TestSelectionServiceRemoveMissing(t *testing.T) {
	svc := newTestSelectionService(&mockSelectionRepo{}, &mockClassStore{})

	err := svc.Remove(context.Background(), "missing", "student@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
