package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/prperemyshlev/task-manager/internal/dto"
	"github.com/prperemyshlev/task-manager/internal/service"
)

// TaskHandler serves the task endpoints of the authenticated user
type TaskHandler struct {
	taskService service.TaskService
	logger      *zap.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// List returns the caller's tasks, optionally filtered by completion
// @Summary List tasks
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param completed query bool false "Filter by completion"
// @Success 200 {array} dto.TaskResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), currentUserID(c), domain.TaskFilter{Completed: query.Completed})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	response := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, dto.NewTaskResponse(task))
	}

	c.JSON(http.StatusOK, response)
}

// Get returns a single task
// @Summary Get task
// @Tags tasks
// @Security BearerAuth
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.taskService.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTaskResponse(task))
}

// Create adds a task owned by the caller
// @Summary Create task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Header("Location", "/api/v1/tasks/"+task.ID)
	c.JSON(http.StatusCreated, dto.NewTaskResponse(task))
}

// Update replaces the content of a task
// @Summary Update task
// @Tags tasks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.UpdateTaskRequest true "Task"
// @Success 200 {object} dto.UpdateTaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	task, outcome, err := h.taskService.Update(c.Request.Context(), currentUserID(c), c.Param("id"), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.UpdateTaskResponse{
		Task:    dto.NewTaskResponse(task),
		Updated: outcome.Updated,
	})
}

// Delete removes a task
// @Summary Delete task
// @Tags tasks
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
