package service

import (
	"fmt"

	"github.com/lshigami/qams/internal/model"
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint
	Role   model.Role
}

type Action string

const (
	ActionCourseCreate       Action = "course.create"
	ActionQuestionCreate     Action = "question.create"
	ActionPaperCreate        Action = "paper.create"
	ActionPaperView          Action = "paper.view"
	ActionPaperUpdate        Action = "paper.update"
	ActionPaperDelete        Action = "paper.delete"
	ActionPaperSubmit        Action = "paper.submit"
	ActionPaperQuestions     Action = "paper.questions.manage"
	ActionModerationClaim    Action = "moderation.claim"
	ActionModerationReview   Action = "moderation.review"
	ActionModerationView     Action = "moderation.view"
	ActionModerationListMine Action = "moderation.mine"
	ActionAuditView          Action = "audit.view"
	ActionAuditDelete        Action = "audit.delete"
	ActionUserManage         Action = "user.manage"
)

// Resource describes what an action targets. OwnerID is zero when the
// resource has no owner (e.g. creating a course).
type Resource struct {
	OwnerID     uint
	PaperStatus model.PaperStatus
}

// AccessGate decides whether an actor may perform an action on a resource.
// A denial is always ErrForbidden.
type AccessGate interface {
	Authorize(actor Actor, action Action, res Resource) error
}

type accessGate struct{}

func NewAccessGate() AccessGate {
	return &accessGate{}
}

func (g *accessGate) Authorize(actor Actor, action Action, res Resource) error {
	if allowed(actor, action, res) {
		return nil
	}
	return fmt.Errorf("%s may not %s: %w", actor.Role, action, ErrForbidden)
}

func allowed(actor Actor, action Action, res Resource) bool {
	owns := res.OwnerID != 0 && res.OwnerID == actor.UserID

	switch actor.Role {
	case model.RoleAdmin:
		switch action {
		case ActionModerationClaim, ActionModerationListMine:
			return false
		}
		return true

	case model.RoleInstructor:
		switch action {
		case ActionCourseCreate, ActionQuestionCreate:
			return true
		case ActionPaperCreate, ActionPaperView, ActionPaperSubmit, ActionModerationView:
			return owns
		case ActionPaperUpdate, ActionPaperDelete, ActionPaperQuestions:
			return owns && res.PaperStatus == model.PaperStatusDraft
		}
		return false

	case model.RoleModerator:
		switch action {
		case ActionPaperView, ActionModerationClaim, ActionModerationView, ActionModerationListMine:
			return true
		case ActionModerationReview:
			return owns
		}
		return false
	}
	return false
}
