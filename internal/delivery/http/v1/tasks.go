package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskswift/internal/models"
	"github.com/adanyl0v/taskswift/internal/query"
)

const (
	noticeTaskAdded   = "Task added successfully!"
	noticeTaskUpdated = "Task updated successfully!"
	noticeTaskDeleted = "Task deleted successfully!"
	noticeTasksLoaded = "Tasks reloaded"
)

type getTaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date,omitempty"`
	Priority    string    `json:"priority"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	Overdue     bool      `json:"overdue"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task, now time.Time) getTaskResponse {
	resp := getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Category:    string(task.Category),
		Completed:   task.Completed,
		Overdue:     task.Overdue(now),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.String()
	}
	return resp
}

type getTasksResponse struct {
	Tasks []getTaskResponse `json:"tasks"`
	Count int               `json:"count"`
}

type taskNoticeResponse struct {
	Task   *getTaskResponse `json:"task,omitempty"`
	Notice string           `json:"notice"`
}

type getTasksRequest struct {
	Filter string `form:"filter"`
	Sort   string `form:"sort"`
	Search string `form:"search"`
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	logger := h.requestLogger(c)

	var req getTasksRequest
	err := c.ShouldBindQuery(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	filter, err := query.ParseFilter(req.Filter)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("invalid filter")
		abort(c, newBadRequestError(err.Error()))
		return
	}
	sortKey, err := query.ParseSortKey(req.Sort)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("invalid sort key")
		abort(c, newBadRequestError(err.Error()))
		return
	}

	tasks := h.tasks.View(query.Params{
		Filter: filter,
		Sort:   sortKey,
		Search: req.Search,
	})

	now := h.now()
	response := getTasksResponse{
		Tasks: make([]getTaskResponse, len(tasks)),
		Count: len(tasks),
	}
	for i, task := range tasks {
		response.Tasks[i] = newGetTaskResponse(task, now)
	}

	logger.Debug().
		Int("count", len(tasks)).
		Str("filter", string(filter)).
		Str("sort", string(sortKey)).
		Msg("listed tasks")
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.tasks.Stats())
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	logger := h.requestLogger(c)
	taskID := c.Param("id")

	task, err := h.tasks.Get(taskID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusOK, newGetTaskResponse(task, h.now()))
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	var draft query.Draft
	err := c.ShouldBindJSON(&draft)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	input, err := draft.Input()
	if err != nil {
		logger.Info().
			Err(err).
			Msg("rejected task draft")
		abort(c, newServiceError(err))
		return
	}

	task, err := h.tasks.Add(c, input)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to create task")
		abort(c, newServiceError(err))
		return
	}

	logger.Info().
		Str("task_id", task.ID).
		Msg("created task")
	resp := newGetTaskResponse(task, h.now())
	c.JSON(http.StatusCreated, taskNoticeResponse{Task: &resp, Notice: noticeTaskAdded})
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	logger := h.requestLogger(c)
	taskID := c.Param("id")

	var draft query.Draft
	err := c.ShouldBindJSON(&draft)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	patch, err := draft.Patch()
	if err != nil {
		logger.Info().
			Err(err).
			Str("task_id", taskID).
			Msg("rejected task draft")
		abort(c, newServiceError(err))
		return
	}

	task, err := h.tasks.Update(c, taskID, patch)
	if err != nil {
		logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to update task")
		abort(c, newServiceError(err))
		return
	}

	logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	resp := newGetTaskResponse(task, h.now())
	c.JSON(http.StatusOK, taskNoticeResponse{Task: &resp, Notice: noticeTaskUpdated})
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	logger := h.requestLogger(c)
	taskID := c.Param("id")

	task, err := h.tasks.ToggleComplete(c, taskID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to toggle task")
		abort(c, newServiceError(err))
		return
	}

	logger.Info().
		Str("task_id", task.ID).
		Bool("completed", task.Completed).
		Msg("toggled task")
	resp := newGetTaskResponse(task, h.now())
	c.JSON(http.StatusOK, taskNoticeResponse{Task: &resp, Notice: noticeTaskUpdated})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c)
	taskID := c.Param("id")

	err := h.tasks.Remove(c, taskID)
	if err != nil {
		logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		abort(c, newServiceError(err))
		return
	}

	logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	c.JSON(http.StatusOK, taskNoticeResponse{Notice: noticeTaskDeleted})
}

func (h *handlerImpl) HandleReloadTasks(c *gin.Context) {
	logger := h.requestLogger(c)

	tasks, err := h.tasks.Load(c)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to reload tasks")
		abort(c, newServiceError(err))
		return
	}

	logger.Info().
		Int("count", len(tasks)).
		Msg("reloaded tasks")
	c.JSON(http.StatusOK, gin.H{
		"count":  len(tasks),
		"notice": noticeTasksLoaded,
	})
}
