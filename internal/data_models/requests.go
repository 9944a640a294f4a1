package dto

import "time"

type CreateProjectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type AssignUserRequest struct {
	UserID uint `json:"user_id"`
}

type CreateTaskRequest struct {
	ProjectID    uint      `json:"project_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Priority     string    `json:"priority"`
	AssignedToID *uint     `json:"assigned_to_id,omitempty"`
	DueDate      time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"due_date"`
}

type TaskStatusRequest struct {
	Status string `json:"status"`
}

type ReassignTaskRequest struct {
	AssignedToID *uint `json:"assigned_to_id"`
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type DeleteNotificationsRequest struct {
	IDs []uint `json:"ids"`
}
