package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/users-api/internal/api/middleware"
	"github.com/taskhub/users-api/internal/core/domain"
	"github.com/taskhub/users-api/internal/core/ports"
)

type stubUserService struct {
	createFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, id string) error
	listFn   func(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error) {
	return s.listFn(ctx, in)
}

func authenticated(c echo.Context, userID string) echo.Context {
	c.Set(middleware.SubjectKey, userID)
	return c
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Username != "alice" || in.Password != "Secr3t_pw" || in.CPF != "12345678901" || in.Age != 30 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Name: in.Name, Age: in.Age, CPF: in.CPF,
				Credential: domain.Credential{Username: in.Username, PasswordHash: "$2a$10$hash"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/user",
		`{"name":"Alice","age":30,"username":"alice","password":"Secr3t_pw","cpf":"12345678901"}`), rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["username"] != "alice" {
		t.Fatalf("unexpected body: %v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("hash leaked in response")
	}
}

func TestUserHandler_Create_WeakPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	for _, pw := range []string{"Sh1_A", "alllower1_", "ALLUPPER1_", "NoDigits_", "NoSymbol12"} {
		body := `{"name":"A","age":1,"username":"alice","password":"` + pw + `","cpf":"12345678901"}`
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/user", body), httptest.NewRecorder())
		if code := httpErrorCode(t, handler.Create(c)); code != http.StatusUnprocessableEntity {
			t.Fatalf("password %q: expected 422, got %d", pw, code)
		}
	}
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewUserHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/api/user",
		`{"name":"Bob","age":20,"username":"bob","password":"Secr3t_pw","cpf":"12345678901"}`), httptest.NewRecorder())

	if err := handler.Create(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserHandler_List_Query(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context, in ports.ListUsersInput) ([]*domain.User, error) {
			if in.Skip != 5 || in.Limit != 10 || in.Filter != "age" || in.FilterValue != "30" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return []*domain.User{{ID: "u1"}, {ID: "u2"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users?skip=5&limit=10&filter=age&filter_value=30", nil)
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
}

func TestUserHandler_List_BadFilter(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users?filter=password&filter_value=x", nil), httptest.NewRecorder())
	if code := httpErrorCode(t, handler.List(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users?limit=500", nil), httptest.NewRecorder())
	if code := httpErrorCode(t, handler.List(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestUserHandler_Get_UsesSubject(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "user-7" {
				t.Fatalf("expected subject user-7, got %s", id)
			}
			return &domain.User{ID: id, Credential: domain.Credential{Username: "gus"}}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), rec), "user-7")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Get_WithoutSubject(t *testing.T) {
	e := newTestEcho()
	handler := NewUserHandler(&stubUserService{})

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/user", nil), httptest.NewRecorder())
	if code := httpErrorCode(t, handler.Get(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestUserHandler_Update_OptionalPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
			if id != "user-1" || in.Password != "" || in.Name != "Alice B" {
				t.Fatalf("unexpected update: %s %+v", id, in)
			}
			return &domain.User{ID: id, Name: in.Name}, nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(jsonRequest(http.MethodPut, "/api/user",
		`{"name":"Alice B","age":31,"cpf":"12345678901"}`), rec), "user-1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	e := newTestEcho()
	deleted := ""
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	handler := NewUserHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/user", nil), rec), "user-3")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != "user-3" {
		t.Fatalf("expected 204 for user-3, got %d for %q", rec.Code, deleted)
	}
}
