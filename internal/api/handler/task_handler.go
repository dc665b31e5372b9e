package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/users-api/internal/core/ports"
)

// TaskHandler handles task operations of the authenticated user.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/task.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      taskRequest  true  "Task"
// @Success      201   {object}  taskResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/task [post]
func (h *TaskHandler) Create(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Create(c.Request().Context(), userID, toTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Get handles GET /api/task?id=.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        id   query     string  true  "Task ID"
// @Success      200  {object}  taskResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/task [get]
func (h *TaskHandler) Get(c echo.Context) error {
	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	task, err := h.service.Get(c.Request().Context(), userID, taskID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /api/task?id=.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    query     string       true  "Task ID"
// @Param        body  body      taskRequest  true  "Task"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/task [put]
func (h *TaskHandler) Update(c echo.Context) error {
	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	var req taskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.service.Update(c.Request().Context(), userID, taskID, toTaskInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/task?id=.
//
// @Summary      Delete a task
// @Tags         tasks
// @Security     CookieAuth
// @Param        id   query     string  true  "Task ID"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/task [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	userID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, taskID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /api/tasks.
//
// @Summary      List own tasks
// @Tags         tasks
// @Produce      json
// @Security     CookieAuth
// @Param        skip   query     int  false  "Number of tasks to skip"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {array}   taskResponse
// @Failure      401    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	userID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	var q listTasksQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	tasks, err := h.service.List(c.Request().Context(), userID, q.Skip, q.Limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTaskResponses(tasks))
}

func taskTarget(c echo.Context) (userID, taskID string, err error) {
	userID, err = ctxSubject(c)
	if err != nil {
		return "", "", err
	}
	taskID = c.QueryParam("id")
	if taskID == "" {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "id query parameter is required")
	}
	return userID, taskID, nil
}
