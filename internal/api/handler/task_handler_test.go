package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/taskhub/users-api/internal/core/domain"
	"github.com/taskhub/users-api/internal/core/ports"
)

type stubTaskService struct {
	createFn func(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error)
	getFn    func(ctx context.Context, userID, taskID string) (*domain.Task, error)
	updateFn func(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error)
	deleteFn func(ctx context.Context, userID, taskID string) error
	listFn   func(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error)
}

func (s *stubTaskService) Create(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubTaskService) Get(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	return s.getFn(ctx, userID, taskID)
}

func (s *stubTaskService) Update(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, userID, taskID, in)
}

func (s *stubTaskService) Delete(ctx context.Context, userID, taskID string) error {
	return s.deleteFn(ctx, userID, taskID)
}

func (s *stubTaskService) List(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error) {
	return s.listFn(ctx, userID, skip, limit)
}

func TestTaskHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		createFn: func(ctx context.Context, userID string, in ports.TaskInput) (*domain.Task, error) {
			if userID != "user-1" || in.Name != "buy milk" {
				t.Fatalf("unexpected args: %s %+v", userID, in)
			}
			return &domain.Task{ID: "t1", UserID: userID, Name: in.Name}, nil
		},
	}
	handler := NewTaskHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(jsonRequest(http.MethodPost, "/api/task", `{"name":"buy milk"}`), rec), "user-1")

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
	if resp["id"] != "t1" || resp["name"] != "buy milk" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestTaskHandler_Create_MissingName(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c := authenticated(e.NewContext(jsonRequest(http.MethodPost, "/api/task", `{"description":"x"}`), httptest.NewRecorder()), "user-1")
	if code := httpErrorCode(t, handler.Create(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestTaskHandler_Get_ScopedToSubject(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		getFn: func(ctx context.Context, userID, taskID string) (*domain.Task, error) {
			if userID != "user-2" || taskID != "t9" {
				t.Fatalf("unexpected args: %s %s", userID, taskID)
			}
			return nil, domain.ErrTaskNotFound
		},
	}
	handler := NewTaskHandler(stub)

	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/task?id=t9", nil), httptest.NewRecorder()), "user-2")
	if err := handler.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestTaskHandler_MissingID(t *testing.T) {
	e := newTestEcho()
	handler := NewTaskHandler(&stubTaskService{})

	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/task", nil), httptest.NewRecorder()), "user-1")
	if code := httpErrorCode(t, handler.Delete(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestTaskHandler_Update(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, userID, taskID string, in ports.TaskInput) (*domain.Task, error) {
			if taskID != "t1" || in.Description != "2 litres" {
				t.Fatalf("unexpected args: %s %+v", taskID, in)
			}
			return &domain.Task{ID: taskID, Name: in.Name, Description: in.Description}, nil
		},
	}
	handler := NewTaskHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(jsonRequest(http.MethodPut, "/api/task?id=t1", `{"name":"buy milk","description":"2 litres"}`), rec), "user-1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, userID, taskID string) error { return nil },
	}
	handler := NewTaskHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/task?id=t1", nil), rec), "user-1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTaskHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubTaskService{
		listFn: func(ctx context.Context, userID string, skip, limit int) ([]*domain.Task, error) {
			if userID != "user-1" || skip != 2 || limit != 0 {
				t.Fatalf("unexpected args: %s %d %d", userID, skip, limit)
			}
			return []*domain.Task{}, nil
		},
	}
	handler := NewTaskHandler(stub)

	rec := httptest.NewRecorder()
	c := authenticated(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/tasks?skip=2", nil), rec), "user-1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array, got %q", body)
	}
}
