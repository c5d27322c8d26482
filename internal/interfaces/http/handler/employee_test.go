package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/hirehub/backend/internal/application/catalog"
	"github.com/hirehub/backend/internal/domain/catalog"
	"github.com/hirehub/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEmployeeRepository is a mock implementation of catalog.EmployeeRepository
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByCode(ctx context.Context, code string) (*catalog.Employee, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListActive(ctx context.Context) ([]catalog.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Employee, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *catalog.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of appcatalog.ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func setupEmployeeRouter(repo *MockEmployeeRepository, storage appcatalog.ObjectStorageService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewEmployeeHandler(appcatalog.NewEmployeeService(repo, storage))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func newCatalogEmployee(t *testing.T, code, name string, category catalog.Category, priceMinor int64, rank int) catalog.Employee {
	t.Helper()
	e, err := catalog.NewEmployee(code, name, "Engineer", category, priceMinor)
	require.NoError(t, err)
	e.SetPopularityRank(rank)
	e.ClearDomainEvents()
	return *e
}

func TestEmployeeHandler_List(t *testing.T) {
	repo := new(MockEmployeeRepository)
	repo.On("ListActive", mock.Anything).Return([]catalog.Employee{
		newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 2),
		newCatalogEmployee(t, "EMP-OPS-001", "Grace", catalog.CategoryOps, 2900, 1),
	}, nil)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))

	data := response["data"].([]interface{})
	require.Len(t, data, 2)
	// Default ordering is by popularity rank
	first := data[0].(map[string]interface{})
	assert.Equal(t, "EMP-OPS-001", first["code"])

	meta := response["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total"])
	assert.Equal(t, float64(1), meta["page"])
}

func TestEmployeeHandler_List_CategoryFilter(t *testing.T) {
	repo := new(MockEmployeeRepository)
	repo.On("ListActive", mock.Anything).Return([]catalog.Employee{
		newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 2),
		newCatalogEmployee(t, "EMP-OPS-001", "Grace", catalog.CategoryOps, 2900, 1),
	}, nil)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?category=dev", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	data := response["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "EMP-DEV-001", data[0].(map[string]interface{})["code"])

	meta := response["meta"].(map[string]interface{})
	assert.Equal(t, float64(1), meta["total"])
}

func TestEmployeeHandler_List_InvalidCategory(t *testing.T) {
	repo := new(MockEmployeeRepository)
	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?category=wizards", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "ERR_INVALID_QUERY", errInfo["code"])
	repo.AssertNotCalled(t, "ListActive", mock.Anything)
}

func TestEmployeeHandler_List_InvalidSort(t *testing.T) {
	repo := new(MockEmployeeRepository)
	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?sort=alphabetical", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errInfo := response["error"].(map[string]interface{})
	assert.Equal(t, "ERR_INVALID_QUERY", errInfo["code"])
}

func TestEmployeeHandler_List_Pagination(t *testing.T) {
	repo := new(MockEmployeeRepository)
	repo.On("ListActive", mock.Anything).Return([]catalog.Employee{
		newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 1),
		newCatalogEmployee(t, "EMP-DEV-002", "Linus", catalog.CategoryDev, 3900, 2),
		newCatalogEmployee(t, "EMP-DEV-003", "Ken", catalog.CategoryDev, 2900, 3),
	}, nil)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?page=2&pageSize=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	data := response["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "EMP-DEV-003", data[0].(map[string]interface{})["code"])

	meta := response["meta"].(map[string]interface{})
	assert.Equal(t, float64(3), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(2), meta["total_pages"])
}

func TestEmployeeHandler_Get(t *testing.T) {
	repo := new(MockEmployeeRepository)
	employee := newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 1)
	repo.On("FindByID", mock.Anything, employee.ID).Return(&employee, nil)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employee.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "EMP-DEV-001", data["code"])
	assert.Equal(t, "Ada", data["display_name"])
	assert.Equal(t, "49.00", data["price"])
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	repo := new(MockEmployeeRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_Get_InvalidID(t *testing.T) {
	repo := new(MockEmployeeRepository)
	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_Create(t *testing.T) {
	repo := new(MockEmployeeRepository)
	repo.On("ExistsByCode", mock.Anything, "EMP-DEV-010").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Employee")).Return(nil)

	router := setupEmployeeRouter(repo, nil)

	body, _ := json.Marshal(CreateEmployeeRequest{
		Code:        "EMP-DEV-010",
		DisplayName: "Ada",
		Category:    "dev",
		Role:        "Backend Engineer",
		Skills:      []string{"go", "postgres"},
		PriceMinor:  4900,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "EMP-DEV-010", data["code"])
	assert.Equal(t, "dev", data["category"])
	repo.AssertExpectations(t)
}

func TestEmployeeHandler_Create_DuplicateCode(t *testing.T) {
	repo := new(MockEmployeeRepository)
	repo.On("ExistsByCode", mock.Anything, "EMP-DEV-001").Return(true, nil)

	router := setupEmployeeRouter(repo, nil)

	body, _ := json.Marshal(CreateEmployeeRequest{
		Code:        "EMP-DEV-001",
		DisplayName: "Ada",
		Category:    "dev",
		Role:        "Backend Engineer",
		PriceMinor:  4900,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestEmployeeHandler_Create_CategoryAllRejected(t *testing.T) {
	repo := new(MockEmployeeRepository)
	router := setupEmployeeRouter(repo, nil)

	// "all" is a query filter, not a real category
	body, _ := json.Marshal(CreateEmployeeRequest{
		Code:        "EMP-X-001",
		DisplayName: "Ada",
		Category:    "all",
		Role:        "Backend Engineer",
		PriceMinor:  4900,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_Create_InvalidBody(t *testing.T) {
	repo := new(MockEmployeeRepository)
	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", bytes.NewReader([]byte("{")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmployeeHandler_Retire(t *testing.T) {
	repo := new(MockEmployeeRepository)
	employee := newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 1)
	repo.On("FindByID", mock.Anything, employee.ID).Return(&employee, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Employee")).Return(nil)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+employee.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}

func TestEmployeeHandler_Retire_NotFound(t *testing.T) {
	repo := new(MockEmployeeRepository)
	id := uuid.New()
	repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

	router := setupEmployeeRouter(repo, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmployeeHandler_GenerateAvatarUploadURL(t *testing.T) {
	repo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	employee := newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 1)

	expiresAt := time.Now().Add(15 * time.Minute)
	repo.On("FindByID", mock.Anything, employee.ID).Return(&employee, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Employee")).Return(nil)
	storage.On("GenerateUploadURL", mock.Anything, mock.AnythingOfType("string"), "image/png", mock.Anything).
		Return("https://storage.example.com/upload", expiresAt, nil)

	router := setupEmployeeRouter(repo, storage)

	body, _ := json.Marshal(AvatarUploadRequest{ContentType: "image/png"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/"+employee.ID.String()+"/avatar/upload-url", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "https://storage.example.com/upload", data["upload_url"])
	assert.NotEmpty(t, data["storage_key"])
	storage.AssertExpectations(t)
}

func TestEmployeeHandler_GetAvatarURL_NoAvatar(t *testing.T) {
	repo := new(MockEmployeeRepository)
	storage := new(MockObjectStorage)
	employee := newCatalogEmployee(t, "EMP-DEV-001", "Ada", catalog.CategoryDev, 4900, 1)
	repo.On("FindByID", mock.Anything, employee.ID).Return(&employee, nil)

	router := setupEmployeeRouter(repo, storage)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+employee.ID.String()+"/avatar", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
