package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"todoWeb/internal/handlers/dto"
	"todoWeb/internal/logger"
	"todoWeb/internal/middleware"
	"todoWeb/internal/models/task"
	"todoWeb/internal/service"
	"todoWeb/internal/timeutil"
	"todoWeb/internal/websession"

	"go.uber.org/zap"
)

const (
	msgTaskCreated = "Task created successfully!"
	msgTaskUpdated = "Task updated successfully!"
	msgNoSuchTask  = "No such task exists."
)

type TaskHandler struct {
	viewRenderer
	tasks TaskService
}

func NewTaskHandler(tasks TaskService, web *websession.Manager) *TaskHandler {
	return &TaskHandler{
		viewRenderer: viewRenderer{sessions: web},
		tasks:        tasks,
	}
}

func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, "")
}

// renderDashboard показывает задачи владельца; фильтры status и priority берутся из query.
func (h *TaskHandler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, message string) {
	acc := middleware.GetAccount(r.Context())
	query := r.URL.Query()
	statusFilter, priorityFilter := query.Get("status"), query.Get("priority")

	tasks, err := h.listTasks(r.Context(), acc.ID, statusFilter, priorityFilter)
	if err != nil && service.IsCode(err, service.CodeValidation) {
		// неверный фильтр: показываем все задачи с сообщением
		code, msg := businessFailure(r, err)
		if message == "" {
			status, message = code, msg
		}
		statusFilter, priorityFilter = "", ""
		tasks, err = h.tasks.ListTasks(r.Context(), acc.ID)
	}
	if err != nil {
		code, msg := businessFailure(r, err)
		if message == "" || code == http.StatusInternalServerError {
			status, message = code, msg
		}
		tasks = nil
	}

	h.render(w, r, status, viewTasksDashboard, message,
		toPayload("tasks", dto.FromTaskList(tasks)),
		toPayload("filters", map[string]string{"status": statusFilter, "priority": priorityFilter}),
		toPayload("statuses", dto.TaskStatusOptions()),
		toPayload("priorities", dto.TaskPriorityOptions()),
	)
}

func (h *TaskHandler) listTasks(ctx context.Context, accountID int64, status, priority string) ([]*task.Task, error) {
	switch {
	case status != "":
		id, err := strconv.Atoi(status)
		if err != nil {
			return nil, service.NewValidationError("status", dto.MsgInvalidTaskStatus)
		}
		return h.tasks.ListTasksByStatus(ctx, accountID, task.Status(id))
	case priority != "":
		id, err := strconv.Atoi(priority)
		if err != nil {
			return nil, service.NewValidationError("priority", dto.MsgInvalidPriority)
		}
		return h.tasks.ListTasksByPriority(ctx, accountID, task.Priority(id))
	default:
		return h.tasks.ListTasks(ctx, accountID)
	}
}

func (h *TaskHandler) NewTask(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, viewNewTask, "",
		toPayload("priorities", dto.TaskPriorityOptions()),
	)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	acc := middleware.GetAccount(r.Context())

	if !parseForm(w, r) {
		return
	}

	form := dto.CreateTaskForm{
		Details:  r.PostFormValue("details"),
		Date:     r.PostFormValue("date"),
		Time:     r.PostFormValue("time"),
		Priority: r.PostFormValue("priority"),
	}
	if err := validateForm(form); err != nil {
		_, message := businessFailure(r, err)
		h.redirect(w, r, pathNewTask, message)
		return
	}

	deadline, err := timeutil.ParseDateAndTime(form.Date, form.Time)
	if err != nil {
		logger.Warn("HTTP: Неверная дата",
			zap.String("date", form.Date),
			zap.String("time", form.Time))
		h.redirect(w, r, pathNewTask, dto.MsgInvalidDateTime)
		return
	}
	priority, _ := strconv.Atoi(form.Priority)

	created, err := h.tasks.CreateTask(r.Context(), acc.ID, form.Details, deadline, task.Priority(priority))
	if err != nil {
		_, message := businessFailure(r, err)
		target := pathNewTask
		if service.IsCode(err, service.CodeTechnical) {
			target = pathTasksDashboard
		}
		h.redirect(w, r, target, message)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)))
	h.redirect(w, r, pathTasksDashboard, msgTaskCreated)
}

func (h *TaskHandler) TaskDetails(w http.ResponseWriter, r *http.Request) {
	acc := middleware.GetAccount(r.Context())

	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		logger.Warn("HTTP: Неверный id задачи", zap.String("id", r.URL.Query().Get("id")))
		h.renderDashboard(w, r, http.StatusNotFound, msgNoSuchTask)
		return
	}

	found, err := h.tasks.GetOwnTask(r.Context(), acc, id)
	if err != nil {
		status, message := businessFailure(r, err)
		h.renderDashboard(w, r, status, message)
		return
	}

	h.render(w, r, http.StatusOK, viewTaskDetails, "",
		toPayload("task", dto.FromTask(found)),
		toPayload("statuses", dto.TaskStatusOptions()),
		toPayload("priorities", dto.TaskPriorityOptions()),
	)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	acc := middleware.GetAccount(r.Context())

	if !parseForm(w, r) {
		return
	}

	form := dto.UpdateTaskForm{
		TaskID:     r.PostFormValue("taskID"),
		Details:    r.PostFormValue("details"),
		Date:       r.PostFormValue("date"),
		Time:       r.PostFormValue("time"),
		PriorityID: r.PostFormValue("priorityID"),
		StatusID:   r.PostFormValue("statusID"),
	}
	if err := validateForm(form); err != nil {
		_, message := businessFailure(r, err)
		if service.AsBusinessError(err).Details["field"] == "TaskID" {
			h.redirect(w, r, pathTasksDashboard, message)
			return
		}
		h.redirect(w, r, pathTaskDetailsBase+form.TaskID, message)
		return
	}

	taskID, err := strconv.ParseInt(form.TaskID, 10, 64)
	if err != nil {
		h.redirect(w, r, pathTasksDashboard, dto.MsgTaskNotFound)
		return
	}
	detailsPath := pathTaskDetailsBase + form.TaskID

	deadline, err := timeutil.ParseDateAndTime(form.Date, form.Time)
	if err != nil {
		h.redirect(w, r, detailsPath, dto.MsgInvalidDateTime)
		return
	}

	priority, _ := strconv.Atoi(form.PriorityID)
	options := []task.TaskOption{
		task.WithDetails(form.Details),
		task.WithDeadline(deadline),
		task.WithPriority(task.Priority(priority)),
	}
	if form.StatusID != "" {
		id, _ := strconv.Atoi(form.StatusID)
		status := task.Status(id)
		options = append(options, task.WithStatus(&status))
	}

	if _, err := h.tasks.UpdateOwnTask(r.Context(), acc, taskID, options...); err != nil {
		_, message := businessFailure(r, err)
		switch {
		case service.IsCode(err, service.CodeNotFound):
			h.redirect(w, r, pathTasksDashboard, dto.MsgTaskNotFound)
		case service.IsCode(err, service.CodeValidation):
			h.redirect(w, r, detailsPath, message)
		default:
			h.redirect(w, r, pathTasksDashboard, message)
		}
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.Int64("task_id", taskID),
		zap.Duration("ms", time.Since(start)))
	h.redirect(w, r, pathTasksDashboard, msgTaskUpdated)
}
