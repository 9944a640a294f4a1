package policy

import (
	"context"
	"errors"
	"testing"

	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
)

type stubMembers struct {
	members map[[2]uint]bool
	err     error
}

func (s *stubMembers) IsMember(ctx context.Context, projectID, userID uint) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.members[[2]uint{projectID, userID}], nil
}

func newTestEvaluator(pairs ...[2]uint) *Evaluator {
	members := make(map[[2]uint]bool, len(pairs))
	for _, p := range pairs {
		members[p] = true
	}
	return NewEvaluator(&stubMembers{members: members})
}

func uintPtr(v uint) *uint { return &v }

func TestAuthorize_AdminAlwaysAllowed(t *testing.T) {
	e := newTestEvaluator()
	admin := &models.User{ID: 1, Role: constants.RoleAdmin}

	resources := []Resource{
		ProjectResource{Project: &models.Project{ID: 10, CreatedByID: 99}},
		TaskResource{Task: &models.Task{ID: 20, ProjectID: 10, CreatedByID: 99}},
		CommentResource{Comment: &models.TaskComment{ID: 30, AuthorID: 99}, Task: &models.Task{ID: 20, ProjectID: 10}},
		AssignmentResource{Assignment: &models.ProjectAssignment{ID: 40, ProjectID: 10, UserID: 99}},
		NotificationResource{Notification: &models.Notification{ID: 50, RecipientID: 99}},
	}
	actions := []constants.Action{constants.ActionView, constants.ActionEdit, constants.ActionDelete}

	for _, res := range resources {
		for _, action := range actions {
			if !e.Authorize(context.Background(), admin, action, res).Allowed() {
				t.Errorf("admin denied %s on %s", action, res.ResourceKind())
			}
		}
	}
}

func TestAuthorize_ViewRequiresMembership(t *testing.T) {
	e := newTestEvaluator([2]uint{10, 2})
	member := &models.User{ID: 2, Role: constants.RoleCollaborator}
	outsider := &models.User{ID: 3, Role: constants.RoleCollaborator}

	task := TaskResource{Task: &models.Task{ID: 20, ProjectID: 10, CreatedByID: 99}}

	if !e.Authorize(context.Background(), member, constants.ActionView, task).Allowed() {
		t.Error("project member denied task view")
	}
	if e.Authorize(context.Background(), outsider, constants.ActionView, task).Allowed() {
		t.Error("non-member allowed task view")
	}
}

func TestAuthorize_ProjectWriteRequiresOwnership(t *testing.T) {
	e := newTestEvaluator([2]uint{10, 2})
	owner := &models.User{ID: 5, Role: constants.RoleCollaborator}
	member := &models.User{ID: 2, Role: constants.RoleCollaborator}

	project := ProjectResource{Project: &models.Project{ID: 10, CreatedByID: 5}}

	if !e.Authorize(context.Background(), owner, constants.ActionEdit, project).Allowed() {
		t.Error("project creator denied project edit")
	}
	if e.Authorize(context.Background(), member, constants.ActionEdit, project).Allowed() {
		t.Error("plain member allowed project edit")
	}
}

func TestAuthorize_TaskEditBroadDeleteNarrow(t *testing.T) {
	e := newTestEvaluator([2]uint{10, 2}, [2]uint{10, 4})
	creator := &models.User{ID: 3, Role: constants.RoleCollaborator}
	assignee := &models.User{ID: 4, Role: constants.RoleCollaborator}
	member := &models.User{ID: 2, Role: constants.RoleCollaborator}
	outsider := &models.User{ID: 9, Role: constants.RoleCollaborator}

	task := TaskResource{Task: &models.Task{
		ID:           20,
		ProjectID:    10,
		CreatedByID:  creator.ID,
		AssignedToID: uintPtr(assignee.ID),
	}}

	for _, actor := range []*models.User{creator, assignee, member} {
		if !e.Authorize(context.Background(), actor, constants.ActionEdit, task).Allowed() {
			t.Errorf("user %d denied task edit", actor.ID)
		}
	}
	if e.Authorize(context.Background(), outsider, constants.ActionEdit, task).Allowed() {
		t.Error("outsider allowed task edit")
	}

	if !e.Authorize(context.Background(), creator, constants.ActionDelete, task).Allowed() {
		t.Error("creator denied task delete")
	}
	for _, actor := range []*models.User{assignee, member} {
		if e.Authorize(context.Background(), actor, constants.ActionDelete, task).Allowed() {
			t.Errorf("user %d allowed task delete", actor.ID)
		}
	}
}

func TestAuthorize_CommentWriteAuthorOnly(t *testing.T) {
	e := newTestEvaluator([2]uint{10, 2})
	author := &models.User{ID: 7, Role: constants.RoleCollaborator}
	member := &models.User{ID: 2, Role: constants.RoleCollaborator}

	comment := CommentResource{
		Comment: &models.TaskComment{ID: 30, TaskID: 20, AuthorID: author.ID},
		Task:    &models.Task{ID: 20, ProjectID: 10},
	}

	if !e.Authorize(context.Background(), author, constants.ActionEdit, comment).Allowed() {
		t.Error("author denied comment edit")
	}
	if e.Authorize(context.Background(), member, constants.ActionEdit, comment).Allowed() {
		t.Error("non-author member allowed comment edit")
	}
	if !e.Authorize(context.Background(), member, constants.ActionView, comment).Allowed() {
		t.Error("member denied comment view")
	}
}

func TestAuthorize_NotificationRecipientOnly(t *testing.T) {
	e := newTestEvaluator()
	recipient := &models.User{ID: 6, Role: constants.RoleViewer}
	sender := &models.User{ID: 7, Role: constants.RoleCollaborator}

	notification := NotificationResource{Notification: &models.Notification{
		ID:          50,
		RecipientID: recipient.ID,
		SenderID:    uintPtr(sender.ID),
	}}

	for _, action := range []constants.Action{constants.ActionView, constants.ActionEdit, constants.ActionDelete} {
		if !e.Authorize(context.Background(), recipient, action, notification).Allowed() {
			t.Errorf("recipient denied notification %s", action)
		}
		if e.Authorize(context.Background(), sender, action, notification).Allowed() {
			t.Errorf("sender allowed notification %s", action)
		}
	}
}

func TestAuthorize_MalformedInputDenied(t *testing.T) {
	e := newTestEvaluator()
	actor := &models.User{ID: 1, Role: constants.RoleCollaborator}

	if e.Authorize(context.Background(), nil, constants.ActionView, ProjectResource{Project: &models.Project{ID: 10}}).Allowed() {
		t.Error("nil actor allowed")
	}
	if e.Authorize(context.Background(), actor, constants.ActionView, nil).Allowed() {
		t.Error("nil resource allowed")
	}
	if e.Authorize(context.Background(), actor, constants.ActionView, TaskResource{}).Allowed() {
		t.Error("empty task resource allowed")
	}
	if e.Authorize(context.Background(), actor, "frobnicate", ProjectResource{Project: &models.Project{ID: 10}}).Allowed() {
		t.Error("unknown action allowed")
	}
}

func TestAuthorize_MembershipErrorDenies(t *testing.T) {
	e := NewEvaluator(&stubMembers{err: errors.New("storage down")})
	actor := &models.User{ID: 2, Role: constants.RoleCollaborator}

	task := TaskResource{Task: &models.Task{ID: 20, ProjectID: 10, CreatedByID: 99}}
	if e.Authorize(context.Background(), actor, constants.ActionView, task).Allowed() {
		t.Error("membership lookup failure should deny, not allow")
	}
}
