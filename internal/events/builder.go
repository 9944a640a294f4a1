package events

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
)

// buildNotifications computes the recipient set for an event and renders one
// notification per recipient. The actor never receives a notification about
// their own action, and a user appearing through multiple rules gets a
// single notification.
func buildNotifications(e Event) ([]models.Notification, error) {
	switch e.Kind {
	case constants.EventProjectAssignmentCreated:
		return buildProjectAssigned(e)
	case constants.EventTaskCreatedWithAssignee:
		return buildTaskAssigned(e)
	case constants.EventTaskCompleted:
		return buildTaskCompleted(e)
	case constants.EventCommentAdded:
		return buildCommentAdded(e)
	case constants.EventTaskStatusChanged:
		return buildStatusChanged(e)
	default:
		return nil, fmt.Errorf("unknown event kind %q", e.Kind)
	}
}

func buildProjectAssigned(e Event) ([]models.Notification, error) {
	if e.Assignment == nil || e.Project == nil || e.Actor == nil {
		return nil, fmt.Errorf("project_assignment_created event is missing entities")
	}

	extra, err := extraData(map[string]interface{}{
		"project_id":     e.Project.ID,
		"assigned_by_id": e.Actor.ID,
	})
	if err != nil {
		return nil, err
	}

	return []models.Notification{{
		RecipientID:      e.Assignment.UserID,
		SenderID:         &e.Actor.ID,
		Type:             constants.NotificationProjectAssigned,
		Priority:         constants.PriorityMedium,
		Title:            fmt.Sprintf("Assigned to project: %s", e.Project.Name),
		Message:          fmt.Sprintf("You have been assigned to the project %q. Start date: %s", e.Project.Name, e.Project.StartDate.Format("2006-01-02")),
		RelatedProjectID: &e.Project.ID,
		Extra:            extra,
	}}, nil
}

func buildTaskAssigned(e Event) ([]models.Notification, error) {
	if e.Task == nil || e.Project == nil || e.Actor == nil {
		return nil, fmt.Errorf("task_created_with_assignee event is missing entities")
	}
	if e.Task.AssignedToID == nil {
		return nil, fmt.Errorf("task_created_with_assignee event for unassigned task %d", e.Task.ID)
	}

	extra, err := extraData(map[string]interface{}{
		"task_id":        e.Task.ID,
		"project_id":     e.Project.ID,
		"assigned_by_id": e.Actor.ID,
	})
	if err != nil {
		return nil, err
	}

	return []models.Notification{{
		RecipientID:      *e.Task.AssignedToID,
		SenderID:         &e.Actor.ID,
		Type:             constants.NotificationTaskAssigned,
		Priority:         constants.PriorityMedium,
		Title:            fmt.Sprintf("New task assigned: %s", e.Task.Name),
		Message:          fmt.Sprintf("You have been assigned the task %q in the project %q. Due date: %s", e.Task.Name, e.Project.Name, e.Task.DueDate.Format("2006-01-02 15:04")),
		RelatedProjectID: &e.Project.ID,
		RelatedTaskID:    &e.Task.ID,
		Extra:            extra,
	}}, nil
}

func buildTaskCompleted(e Event) ([]models.Notification, error) {
	if e.Task == nil || e.Project == nil || e.Actor == nil {
		return nil, fmt.Errorf("task_completed event is missing entities")
	}

	recipients := dedupeExcluding([]uint{e.Project.CreatedByID, e.Task.CreatedByID}, e.Actor.ID)

	extra, err := extraData(map[string]interface{}{
		"task_id":         e.Task.ID,
		"project_id":      e.Project.ID,
		"completed_by_id": e.Actor.ID,
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		notifications = append(notifications, models.Notification{
			RecipientID:      recipientID,
			SenderID:         &e.Actor.ID,
			Type:             constants.NotificationTaskCompleted,
			Priority:         constants.PriorityLow,
			Title:            fmt.Sprintf("Task completed: %s", e.Task.Name),
			Message:          fmt.Sprintf("%s has completed the task %q in the project %q.", e.Actor.FullName(), e.Task.Name, e.Project.Name),
			RelatedProjectID: &e.Project.ID,
			RelatedTaskID:    &e.Task.ID,
			Extra:            extra,
		})
	}
	return notifications, nil
}

func buildCommentAdded(e Event) ([]models.Notification, error) {
	if e.Comment == nil || e.Task == nil || e.Project == nil || e.Actor == nil {
		return nil, fmt.Errorf("comment_added event is missing entities")
	}

	candidates := []uint{e.Task.CreatedByID}
	if e.Task.AssignedToID != nil {
		candidates = append([]uint{*e.Task.AssignedToID}, candidates...)
	}
	recipients := dedupeExcluding(candidates, e.Comment.AuthorID)

	extra, err := extraData(map[string]interface{}{
		"task_id":    e.Task.ID,
		"project_id": e.Project.ID,
		"comment_id": e.Comment.ID,
		"author_id":  e.Comment.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(recipients))
	for _, recipientID := range recipients {
		notifications = append(notifications, models.Notification{
			RecipientID:      recipientID,
			SenderID:         &e.Comment.AuthorID,
			Type:             constants.NotificationCommentAdded,
			Priority:         constants.PriorityLow,
			Title:            fmt.Sprintf("New comment on: %s", e.Task.Name),
			Message:          fmt.Sprintf("%s commented on the task %q.", e.Actor.FullName(), e.Task.Name),
			RelatedProjectID: &e.Project.ID,
			RelatedTaskID:    &e.Task.ID,
			Extra:            extra,
		})
	}
	return notifications, nil
}

func buildStatusChanged(e Event) ([]models.Notification, error) {
	if e.Task == nil || e.Project == nil || e.Actor == nil {
		return nil, fmt.Errorf("task_status_changed event is missing entities")
	}

	// Only the assignee cares about a routine status move, and not about
	// their own.
	if e.Task.AssignedToID == nil || *e.Task.AssignedToID == e.Actor.ID {
		return nil, nil
	}

	extra, err := extraData(map[string]interface{}{
		"task_id":       e.Task.ID,
		"project_id":    e.Project.ID,
		"old_status":    e.FromStatus,
		"new_status":    e.ToStatus,
		"changed_by_id": e.Actor.ID,
	})
	if err != nil {
		return nil, err
	}

	return []models.Notification{{
		RecipientID:      *e.Task.AssignedToID,
		SenderID:         &e.Actor.ID,
		Type:             constants.NotificationStatusChanged,
		Priority:         constants.PriorityMedium,
		Title:            "Task status updated",
		Message:          fmt.Sprintf("The status of the task %q changed from %s to %s.", e.Task.Name, e.FromStatus, e.ToStatus),
		RelatedProjectID: &e.Project.ID,
		RelatedTaskID:    &e.Task.ID,
		Extra:            extra,
	}}, nil
}

func dedupeExcluding(candidates []uint, excluded uint) []uint {
	seen := make(map[uint]struct{}, len(candidates))
	result := make([]uint, 0, len(candidates))
	for _, id := range candidates {
		if id == excluded {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func extraData(data map[string]interface{}) (datatypes.JSON, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
