package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"tracknest.dev/tracknest/internal/apperrors"
	"tracknest.dev/tracknest/internal/constants"
	dto "tracknest.dev/tracknest/internal/data_models"
	"tracknest.dev/tracknest/internal/http/validators"
	"tracknest.dev/tracknest/internal/services"
)

// Handler is the CRUD collaborator in front of the tracker core. Actor
// identity arrives in the X-User-ID header; authentication itself happens
// upstream of this service.
type Handler struct {
	tracker *services.Tracker
}

func NewHandler(tracker *services.Tracker) *Handler {
	return &Handler{tracker: tracker}
}

func actorID(c echo.Context) (uint, error) {
	raw := c.Request().Header.Get("X-User-ID")
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing X-User-ID header")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid X-User-ID header")
	}
	return uint(id), nil
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return uint(id), nil
}

func toHTTPError(err error) error {
	return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
}

func (h *Handler) CreateProject(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateProjectRequest(&req); err != nil {
		return err
	}

	project, err := h.tracker.Projects.Create(c.Request().Context(), actor, services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *Handler) ListProjects(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	projects, err := h.tracker.Projects.List(c.Request().Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(projects),
		"projects": projects,
	})
}

func (h *Handler) GetProject(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.tracker.Projects.Get(c.Request().Context(), actor, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	project, err := h.tracker.Projects.Update(c.Request().Context(), actor, id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      constants.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, project)
}

func (h *Handler) AssignUser(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AssignUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	assignment, err := h.tracker.Projects.Assign(c.Request().Context(), actor, projectID, req.UserID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, assignment)
}

func (h *Handler) UnassignUser(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userID")
	if err != nil {
		return err
	}

	if err := h.tracker.Projects.Unassign(c.Request().Context(), actor, projectID, userID); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListMembers(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	members, err := h.tracker.Projects.Members(c.Request().Context(), actor, projectID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(members),
		"members": members,
	})
}

func (h *Handler) ListProjectTasks(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	tasks, err := h.tracker.Tasks.ListByProject(c.Request().Context(), actor, projectID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.tracker.Tasks.Create(c.Request().Context(), actor, services.CreateTaskInput{
		ProjectID:    req.ProjectID,
		Name:         req.Name,
		Description:  req.Description,
		Priority:     constants.Priority(req.Priority),
		AssignedToID: req.AssignedToID,
		DueDate:      req.DueDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.tracker.Tasks.Get(c.Request().Context(), actor, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.tracker.Tasks.Update(c.Request().Context(), actor, id, services.UpdateTaskInput{
		Name:        req.Name,
		Description: req.Description,
		Priority:    constants.Priority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) TransitionTask(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.TaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateTaskStatusRequest(&req); err != nil {
		return err
	}

	task, err := h.tracker.Tasks.Transition(c.Request().Context(), actor, id, constants.TaskStatus(req.Status))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ReassignTask(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.ReassignTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.tracker.Tasks.Reassign(c.Request().Context(), actor, id, req.AssignedToID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tracker.Tasks.Delete(c.Request().Context(), actor, id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) AddComment(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateAddCommentRequest(&req); err != nil {
		return err
	}

	comment, err := h.tracker.Comments.Add(c.Request().Context(), actor, taskID, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListComments(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	comments, err := h.tracker.Comments.List(c.Request().Context(), actor, taskID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":    len(comments),
		"comments": comments,
	})
}

func (h *Handler) UpdateComment(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req dto.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	comment, err := h.tracker.Comments.Update(c.Request().Context(), actor, id, req.Content)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, comment)
}

func (h *Handler) DeleteComment(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.tracker.Comments.Delete(c.Request().Context(), actor, id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	notifications, err := h.tracker.Notifications.List(c.Request().Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

func (h *Handler) UnreadCount(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	count, err := h.tracker.Notifications.UnreadCount(c.Request().Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	notification, err := h.tracker.Notifications.MarkRead(c.Request().Context(), actor, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, notification)
}

func (h *Handler) MarkNotificationUnread(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	notification, err := h.tracker.Notifications.MarkUnread(c.Request().Context(), actor, id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, notification)
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	updated, err := h.tracker.Notifications.MarkAllRead(c.Request().Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"updated_count": updated})
}

func (h *Handler) DeleteReadNotifications(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	deleted, err := h.tracker.Notifications.DeleteRead(c.Request().Context(), actor)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted_count": deleted})
}

func (h *Handler) DeleteNotifications(c echo.Context) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}

	var req dto.DeleteNotificationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if len(req.IDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids is required")
	}

	deleted, err := h.tracker.Notifications.Delete(c.Request().Context(), actor, req.IDs)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"deleted_count": deleted})
}
