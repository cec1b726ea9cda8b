package employee_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ribukumar49/leave-management-mini/internal/employee"
	employeeerrors "github.com/ribukumar49/leave-management-mini/internal/employee/errors"
	"github.com/ribukumar49/leave-management-mini/internal/middleware"
	"github.com/ribukumar49/leave-management-mini/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	createFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	getAllFn     func(ctx context.Context) ([]employee.EmployeeResponse, error)
	getOptionsFn func(ctx context.Context) ([]employee.EmployeeOption, error)
	getByIDFn    func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx)
}

func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.getOptionsFn(ctx)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func setupEmployeeHandlerTest(t *testing.T, svc *fakeEmployeeService) (*gin.Engine, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	apperror.Init()

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	employee.RegisterRoutes(r.Group(""), employee.NewHandler(svc))
	return r, w
}

type handlerEnvelope struct {
	Ok    bool `json:"ok"`
	Data  any  `json:"data,omitempty"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func decodeHandlerEnvelope(t *testing.T, w *httptest.ResponseRecorder) handlerEnvelope {
	t.Helper()
	var envelope handlerEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success returns 201", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{
					ID:          uuid.NewString(),
					Name:        req.Name,
					Email:       req.Email,
					Department:  req.Department,
					JoiningDate: req.JoiningDate,
				}, nil
			},
		}
		r, w := setupEmployeeHandlerTest(t, svc)

		body, _ := json.Marshal(gin.H{
			"name":         "Asha Nair",
			"email":        "asha@example.com",
			"department":   "Engineering",
			"joining_date": "2024-01-01",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		assert.True(t, envelope.Ok)
	})

	t.Run("negative invalid email fails binding", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				t.Fatal("service must not be reached on invalid payload")
				return employee.EmployeeResponse{}, nil
			},
		}
		r, w := setupEmployeeHandlerTest(t, svc)

		body, _ := json.Marshal(gin.H{
			"name":         "Asha Nair",
			"email":        "not-an-email",
			"department":   "Engineering",
			"joining_date": "2024-01-01",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	})

	t.Run("negative duplicate email maps to 409", func(t *testing.T) {
		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
			},
		}
		r, w := setupEmployeeHandlerTest(t, svc)

		body, _ := json.Marshal(gin.H{
			"name":         "Asha Nair",
			"email":        "asha@example.com",
			"department":   "Engineering",
			"joining_date": "2024-01-01",
		})
		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		assert.Equal(t, apperror.CodeConflict, envelope.Error.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	t.Run("negative not found maps to 404", func(t *testing.T) {
		svc := &fakeEmployeeService{
			getByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		r, w := setupEmployeeHandlerTest(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/employees/"+uuid.NewString(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		assert.Equal(t, apperror.CodeNotFound, envelope.Error.Code)
	})
}

func TestEmployeeHandler_GetOptions(t *testing.T) {
	t.Run("success returns the directory", func(t *testing.T) {
		opts := []employee.EmployeeOption{
			{ID: uuid.NewString(), Name: "Asha Nair"},
			{ID: uuid.NewString(), Name: "Ravi Menon"},
		}
		svc := &fakeEmployeeService{
			getOptionsFn: func(ctx context.Context) ([]employee.EmployeeOption, error) {
				return opts, nil
			},
		}
		r, w := setupEmployeeHandlerTest(t, svc)

		req := httptest.NewRequest(http.MethodGet, "/employees/options", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		items, ok := envelope.Data.([]any)
		assert.True(t, ok)
		assert.Len(t, items, 2)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success returns a deletion receipt", func(t *testing.T) {
		svc := &fakeEmployeeService{
			deleteFn: func(ctx context.Context, id string) error { return nil },
		}
		r, w := setupEmployeeHandlerTest(t, svc)

		req := httptest.NewRequest(http.MethodDelete, "/employees/"+uuid.NewString(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		assert.True(t, envelope.Ok)
	})
}

func TestEmployeeHandler_Idempotency(t *testing.T) {
	createBody := func(t *testing.T) []byte {
		t.Helper()
		body, err := json.Marshal(gin.H{
			"name":         "Asha Nair",
			"email":        "asha@example.com",
			"department":   "Engineering",
			"joining_date": "2024-01-01",
		})
		assert.NoError(t, err)
		return body
	}

	setup := func(t *testing.T, svc *fakeEmployeeService) (*gin.Engine, *httptest.ResponseRecorder, redismock.ClientMock) {
		t.Helper()
		gin.SetMode(gin.TestMode)
		apperror.Init()

		rdb, redisMock := redismock.NewClientMock()
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		group := r.Group("")
		group.Use(middleware.Idempotency(rdb))
		employee.RegisterRoutes(group, employee.NewHandlerWithRedis(svc, rdb))
		return r, w, redisMock
	}

	t.Run("create caches the response and releases the lock", func(t *testing.T) {
		resp := employee.EmployeeResponse{
			ID:          uuid.NewString(),
			Name:        "Asha Nair",
			Email:       "asha@example.com",
			Department:  "Engineering",
			JoiningDate: "2024-01-01",
		}
		payload, _ := json.Marshal(resp)

		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return resp, nil
			},
		}
		r, w, redisMock := setup(t, svc)
		redisMock.ExpectGet("idemp:/employees:key-456").RedisNil()
		redisMock.ExpectSetNX("idemp:/employees:key-456:lock", "locked", 30*time.Second).SetVal(true)
		redisMock.ExpectSet("idemp:/employees:key-456", payload, 24*time.Hour).SetVal("OK")
		redisMock.ExpectDel("idemp:/employees:key-456:lock").SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(createBody(t)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "key-456")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("repeated key replays the cached employee", func(t *testing.T) {
		cached := employee.EmployeeResponse{ID: uuid.NewString(), Name: "Asha Nair"}
		payload, _ := json.Marshal(cached)

		svc := &fakeEmployeeService{
			createFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				t.Fatal("service must not be reached on a cached replay")
				return employee.EmployeeResponse{}, nil
			},
		}
		r, w, redisMock := setup(t, svc)
		redisMock.ExpectGet("idemp:/employees:key-456").SetVal(string(payload))

		req := httptest.NewRequest(http.MethodPost, "/employees", bytes.NewReader(createBody(t)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Idempotency-Key", "key-456")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		envelope := decodeHandlerEnvelope(t, w)
		assert.True(t, envelope.Ok)
		data, ok := envelope.Data.(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, cached.ID, data["id"])
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
