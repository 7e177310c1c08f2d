package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/authz"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/utils"
)

type QuestionFinder interface {
	FindOneByID(ctx context.Context, id uint64) (*models.Question, error)
}

type AnswerFinder interface {
	FindOneByID(ctx context.Context, id uint64) (*models.Answer, error)
}

// LoadQuestion loads the question named by the param path parameter into the context.
func LoadQuestion(questions QuestionFinder, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadQuestion(c, questions, param); ok {
			c.Next()
		}
	}
}

// RequireQuestionAccess loads the question at :id and checks that the actor may
// perform action on it.
func RequireQuestionAccess(questions QuestionFinder, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if question, ok := loadQuestion(c, questions, "id"); ok {
			authorize(c, action, question)
		}
	}
}

// LoadAnswer loads the answer at :id, with its question, into the context.
func LoadAnswer(answers AnswerFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loadAnswer(c, answers); ok {
			c.Next()
		}
	}
}

// RequireAnswerAccess loads the answer at :id and checks action against it. Award and
// deaward are decided by the answer's question.
func RequireAnswerAccess(answers AnswerFinder, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if answer, ok := loadAnswer(c, answers); ok {
			authorize(c, action, answer)
		}
	}
}

func loadQuestion(c *gin.Context, questions QuestionFinder, param string) (*models.Question, bool) {
	id, ok := utils.ParseIDParam(c, param)
	if !ok {
		apierrors.BadRequest(c, "Invalid question ID")
		c.Abort()
		return nil, false
	}

	question, err := questions.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		c.Abort()
		return nil, false
	}

	c.Set(constants.ContextKeyQuestion, question)
	return question, true
}

func loadAnswer(c *gin.Context, answers AnswerFinder) (*models.Answer, bool) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid answer ID")
		c.Abort()
		return nil, false
	}

	answer, err := answers.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		c.Abort()
		return nil, false
	}

	c.Set(constants.ContextKeyAnswer, answer)
	return answer, true
}

// RequireAdmin allows only administrators through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := authz.RequireAdmin(GetActor(c)); err != nil {
			apierrors.Respond(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

func authorize(c *gin.Context, action authz.Action, resource any) {
	if err := authz.Authorize(GetActor(c), action, resource); err != nil {
		apierrors.Respond(c, err)
		c.Abort()
		return
	}
	c.Next()
}

func GetQuestion(c *gin.Context) *models.Question {
	value, _ := c.Get(constants.ContextKeyQuestion)
	question, _ := value.(*models.Question)
	return question
}

func GetAnswer(c *gin.Context) *models.Answer {
	value, _ := c.Get(constants.ContextKeyAnswer)
	answer, _ := value.(*models.Answer)
	return answer
}
