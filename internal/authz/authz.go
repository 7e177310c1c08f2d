// Package authz decides whether an actor may perform an action on a forum resource.
// Every function is pure: the actor and the resource are passed in, nothing is looked up.
// A nil actor is anonymous.
package authz

import (
	"errors"
	"fmt"

	"github.com/yukikurage/qa-forum-api/internal/models"
)

var (
	ErrForbidden              = errors.New("forbidden")
	ErrAuthenticationRequired = errors.New("authentication required")
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionDelete  Action = "delete"
	ActionAward   Action = "award"
	ActionDeaward Action = "deaward"
)

// Authorize dispatches to the rule for resource. resource is one of *models.Question,
// *models.Answer (with Question loaded for award/deaward), *models.Category, *models.Tag
// or *models.User. A nil resource with ActionCreate means "create a question".
func Authorize(actor *models.User, action Action, resource any) error {
	switch r := resource.(type) {
	case nil:
		if action == ActionCreate {
			return CanCreateQuestion(actor)
		}
	case *models.Question:
		switch action {
		case ActionCreate:
			return CanCreateAnswer(actor, r)
		case ActionEdit, ActionDelete:
			return CanModifyQuestion(actor, r)
		}
	case *models.Answer:
		switch action {
		case ActionEdit, ActionDelete:
			return CanModifyAnswer(actor, r)
		case ActionAward, ActionDeaward:
			return CanAward(actor, r.Question)
		}
	case *models.Category, *models.Tag:
		switch action {
		case ActionCreate, ActionEdit, ActionDelete:
			return RequireAdmin(actor)
		}
	case *models.User:
		switch action {
		case ActionEdit, ActionDelete:
			return RequireAdmin(actor)
		}
	}
	return fmt.Errorf("%w: %s not permitted on %T", ErrForbidden, action, resource)
}

// CanCreateQuestion allows every actor, anonymous included.
func CanCreateQuestion(actor *models.User) error {
	return nil
}

// CanCreateAnswer allows every actor to answer an existing question.
func CanCreateAnswer(actor *models.User, question *models.Question) error {
	return nil
}

// CanModifyQuestion covers edit and delete of a question, including its tag set.
func CanModifyQuestion(actor *models.User, question *models.Question) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if actor.IsAdmin() || question.IsAuthoredBy(actor.ID) {
		return nil
	}
	return ErrForbidden
}

// CanModifyAnswer covers edit and delete of an answer by its own author.
func CanModifyAnswer(actor *models.User, answer *models.Answer) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if actor.IsAdmin() || answer.IsAuthoredBy(actor.ID) {
		return nil
	}
	return ErrForbidden
}

// CanAward decides award and deaward of any answer under question. Only the
// question's author qualifies; the answer's author does not.
func CanAward(actor *models.User, question *models.Question) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if actor.IsAdmin() {
		return nil
	}
	if question != nil && question.IsAuthoredBy(actor.ID) {
		return nil
	}
	return ErrForbidden
}

// RequireAdmin guards category, tag and user management.
func RequireAdmin(actor *models.User) error {
	if actor == nil {
		return ErrAuthenticationRequired
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
