package events

import (
	"encoding/json"
	"testing"
	"time"

	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func baseEntities() (*models.User, *models.Project, *models.Task) {
	actor := &models.User{ID: 3, FirstName: "Uma", LastName: "Doe", Role: constants.RoleCollaborator}
	project := &models.Project{
		ID:          10,
		Name:        "Launch",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedByID: 1,
	}
	task := &models.Task{
		ID:           20,
		Name:         "Ship it",
		ProjectID:    project.ID,
		CreatedByID:  2,
		AssignedToID: uintPtr(3),
		DueDate:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	return actor, project, task
}

func TestBuild_TaskCompletedFanOut(t *testing.T) {
	actor, project, task := baseEntities()

	notifications, err := buildNotifications(Event{
		Kind:    constants.EventTaskCompleted,
		Actor:   actor,
		Project: project,
		Task:    task,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	// Project creator (1) and task creator (2); the actor (3) is excluded.
	if len(notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(notifications))
	}
	recipients := map[uint]bool{}
	for _, n := range notifications {
		recipients[n.RecipientID] = true
		if n.Type != constants.NotificationTaskCompleted {
			t.Errorf("expected type task_completed, got %s", n.Type)
		}
		if n.SenderID == nil || *n.SenderID != actor.ID {
			t.Error("expected actor recorded as sender")
		}
	}
	if !recipients[1] || !recipients[2] {
		t.Errorf("expected recipients {1, 2}, got %v", recipients)
	}
}

func TestBuild_TaskCompletedActorExcludedAndDeduped(t *testing.T) {
	actor, project, task := baseEntities()
	// Task creator completes their own task on a project they also created.
	project.CreatedByID = actor.ID
	task.CreatedByID = actor.ID

	notifications, err := buildNotifications(Event{
		Kind:    constants.EventTaskCompleted,
		Actor:   actor,
		Project: project,
		Task:    task,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected no notifications for self-completion, got %d", len(notifications))
	}
}

func TestBuild_CommentAddedCollapsesDuplicates(t *testing.T) {
	_, project, task := baseEntities()
	// Assignee and creator are the same user; one notification only.
	task.CreatedByID = 3
	task.AssignedToID = uintPtr(3)
	comment := &models.TaskComment{ID: 30, TaskID: task.ID, AuthorID: 2, Content: "looks good"}
	author := &models.User{ID: 2, FirstName: "Alex", LastName: "Author"}

	notifications, err := buildNotifications(Event{
		Kind:    constants.EventCommentAdded,
		Actor:   author,
		Project: project,
		Task:    task,
		Comment: comment,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].RecipientID != 3 {
		t.Errorf("expected recipient 3, got %d", notifications[0].RecipientID)
	}

	var extra map[string]interface{}
	if err := json.Unmarshal(notifications[0].Extra, &extra); err != nil {
		t.Fatalf("extra payload is not valid JSON: %v", err)
	}
	for _, key := range []string{"task_id", "project_id", "comment_id", "author_id"} {
		if _, ok := extra[key]; !ok {
			t.Errorf("extra payload missing %q", key)
		}
	}
}

func TestBuild_CommentAddedAuthorExcluded(t *testing.T) {
	_, project, task := baseEntities()
	// Author is both assignee and creator: nobody left to notify.
	task.CreatedByID = 2
	task.AssignedToID = uintPtr(2)
	comment := &models.TaskComment{ID: 30, TaskID: task.ID, AuthorID: 2}
	author := &models.User{ID: 2}

	notifications, err := buildNotifications(Event{
		Kind:    constants.EventCommentAdded,
		Actor:   author,
		Project: project,
		Task:    task,
		Comment: comment,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected no notifications, got %d", len(notifications))
	}
}

func TestBuild_StatusChangedTargetsAssigneeOnly(t *testing.T) {
	actor, project, task := baseEntities()
	actor.ID = 2 // someone other than the assignee changes the status

	notifications, err := buildNotifications(Event{
		Kind:       constants.EventTaskStatusChanged,
		Actor:      actor,
		Project:    project,
		Task:       task,
		FromStatus: constants.TaskPending,
		ToStatus:   constants.TaskInProgress,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(notifications) != 1 || notifications[0].RecipientID != 3 {
		t.Fatalf("expected single notification for assignee 3, got %v", notifications)
	}

	// The assignee changing their own task's status notifies nobody.
	actor.ID = 3
	notifications, err = buildNotifications(Event{
		Kind:       constants.EventTaskStatusChanged,
		Actor:      actor,
		Project:    project,
		Task:       task,
		FromStatus: constants.TaskPending,
		ToStatus:   constants.TaskInProgress,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected no notifications for self-change, got %d", len(notifications))
	}
}

func TestBuild_ProjectAssignmentTargetsNewMember(t *testing.T) {
	actor, project, _ := baseEntities()
	assignment := &models.ProjectAssignment{ID: 40, ProjectID: project.ID, UserID: 7, AssignedByID: actor.ID}

	notifications, err := buildNotifications(Event{
		Kind:       constants.EventProjectAssignmentCreated,
		Actor:      actor,
		Project:    project,
		Assignment: assignment,
	})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if len(notifications) != 1 || notifications[0].RecipientID != 7 {
		t.Fatalf("expected single notification for user 7, got %v", notifications)
	}
	if notifications[0].Type != constants.NotificationProjectAssigned {
		t.Errorf("expected type project_assigned, got %s", notifications[0].Type)
	}
}

func TestBuild_MalformedEventsFail(t *testing.T) {
	cases := []Event{
		{Kind: constants.EventTaskCompleted},
		{Kind: constants.EventCommentAdded},
		{Kind: constants.EventProjectAssignmentCreated},
		{Kind: "unknown_event"},
	}

	for _, e := range cases {
		if _, err := buildNotifications(e); err == nil {
			t.Errorf("expected error for event %q with missing entities", e.Kind)
		}
	}
}
