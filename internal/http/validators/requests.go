package validators

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "tracknest.dev/tracknest/internal/data_models"
)

func ValidateCreateProjectRequest(r *dto.CreateProjectRequest) error {
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date are required")
	}
	return nil
}

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.ProjectID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "project_id is required")
	}
	if r.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if r.DueDate.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date is required")
	}
	return nil
}

func ValidateTaskStatusRequest(r *dto.TaskStatusRequest) error {
	if r.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	return nil
}

func ValidateAddCommentRequest(r *dto.AddCommentRequest) error {
	if r.Content == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}
	return nil
}
