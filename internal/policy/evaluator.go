package policy

import (
	"context"

	"tracknest.dev/tracknest/internal/constants"
	"tracknest.dev/tracknest/internal/models"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool { return d == Allow }

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// MembershipChecker is the one relation the evaluator consults beyond the
// resource itself.
type MembershipChecker interface {
	IsMember(ctx context.Context, projectID, userID uint) (bool, error)
}

// Evaluator decides whether an actor may act on a resource. It composes the
// actor's global role, project membership, and per-resource authorship or
// assignment into a single decision. It has no side effects and never
// returns an error: anything it cannot positively allow is denied.
type Evaluator struct {
	members MembershipChecker
}

func NewEvaluator(members MembershipChecker) *Evaluator {
	return &Evaluator{members: members}
}

// Authorize evaluates the rules in precedence order, first match wins:
//
//  1. admins may do anything
//  2. view requires membership in the resource's project
//  3. project writes require project ownership
//  4. task edits are open to the creator, the assignee, or any member
//  5. task deletes are restricted to the creator
//  6. comment writes are restricted to the author
//  7. notifications belong to their recipient, for every action
//  8. everything else is denied
func (e *Evaluator) Authorize(ctx context.Context, actor *models.User, action constants.Action, res Resource) Decision {
	if actor == nil || res == nil {
		return Deny
	}

	if actor.IsAdmin() {
		return Allow
	}

	switch r := res.(type) {
	case ProjectResource:
		return e.authorizeProject(ctx, actor, action, r)
	case TaskResource:
		return e.authorizeTask(ctx, actor, action, r)
	case CommentResource:
		return e.authorizeComment(ctx, actor, action, r)
	case AssignmentResource:
		return e.authorizeAssignment(ctx, actor, action, r)
	case NotificationResource:
		return e.authorizeNotification(actor, r)
	default:
		return Deny
	}
}

func (e *Evaluator) authorizeProject(ctx context.Context, actor *models.User, action constants.Action, r ProjectResource) Decision {
	if r.Project == nil {
		return Deny
	}

	switch action {
	case constants.ActionView:
		return e.memberDecision(ctx, r.Project.ID, actor.ID)
	case constants.ActionEdit, constants.ActionDelete:
		if r.Project.CreatedByID == actor.ID {
			return Allow
		}
	}
	return Deny
}

func (e *Evaluator) authorizeTask(ctx context.Context, actor *models.User, action constants.Action, r TaskResource) Decision {
	if r.Task == nil {
		return Deny
	}

	switch action {
	case constants.ActionView:
		return e.memberDecision(ctx, r.Task.ProjectID, actor.ID)
	case constants.ActionEdit:
		if r.Task.CreatedByID == actor.ID {
			return Allow
		}
		if r.Task.AssignedToID != nil && *r.Task.AssignedToID == actor.ID {
			return Allow
		}
		return e.memberDecision(ctx, r.Task.ProjectID, actor.ID)
	case constants.ActionDelete:
		// Narrower than edit: membership is not enough.
		if r.Task.CreatedByID == actor.ID {
			return Allow
		}
	}
	return Deny
}

func (e *Evaluator) authorizeComment(ctx context.Context, actor *models.User, action constants.Action, r CommentResource) Decision {
	if r.Comment == nil {
		return Deny
	}

	switch action {
	case constants.ActionView:
		if r.Task == nil {
			return Deny
		}
		return e.memberDecision(ctx, r.Task.ProjectID, actor.ID)
	case constants.ActionEdit, constants.ActionDelete:
		if r.Comment.AuthorID == actor.ID {
			return Allow
		}
	}
	return Deny
}

func (e *Evaluator) authorizeAssignment(ctx context.Context, actor *models.User, action constants.Action, r AssignmentResource) Decision {
	if r.Assignment == nil {
		return Deny
	}

	if action == constants.ActionView {
		return e.memberDecision(ctx, r.Assignment.ProjectID, actor.ID)
	}
	return Deny
}

func (e *Evaluator) authorizeNotification(actor *models.User, r NotificationResource) Decision {
	if r.Notification == nil {
		return Deny
	}

	// The sender has no special rights after creation.
	if r.Notification.RecipientID == actor.ID {
		return Allow
	}
	return Deny
}

func (e *Evaluator) memberDecision(ctx context.Context, projectID, userID uint) Decision {
	ok, err := e.members.IsMember(ctx, projectID, userID)
	if err != nil || !ok {
		return Deny
	}
	return Allow
}
