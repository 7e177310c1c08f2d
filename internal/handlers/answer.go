package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/middleware"
	"github.com/yukikurage/qa-forum-api/internal/services"
)

// AnswerHandler handles answer endpoints. The target answer (or, for Create, the
// question) is loaded by middleware.
type AnswerHandler struct {
	answers *services.AnswerService
}

func NewAnswerHandler(answers *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

type answerRequest struct {
	Body  string  `json:"body" binding:"required,max=5000"`
	Image *string `json:"image" binding:"omitempty,max=100"`
}

// Create answers the question at :question_id as the current actor.
func (h *AnswerHandler) Create(c *gin.Context) {
	var req answerRequest
	if !bindJSON(c, &req) {
		return
	}

	answer, err := h.answers.Create(c.Request.Context(), middleware.GetActor(c), middleware.GetQuestion(c), services.AnswerInput{
		Body:  req.Body,
		Image: req.Image,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAnswerDTO(*answer))
}

func (h *AnswerHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToAnswerDTO(*middleware.GetAnswer(c)))
}

func (h *AnswerHandler) Update(c *gin.Context) {
	var req answerRequest
	if !bindJSON(c, &req) {
		return
	}

	answer, err := h.answers.Update(c.Request.Context(), middleware.GetAnswer(c), services.AnswerInput{
		Body:  req.Body,
		Image: req.Image,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer))
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	if err := h.answers.Delete(c.Request.Context(), middleware.GetAnswer(c)); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Mark flags the answer as a best answer.
func (h *AnswerHandler) Mark(c *gin.Context) {
	answer, err := h.answers.Award(c.Request.Context(), middleware.GetAnswer(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer))
}

// Unmark clears the best answer flag.
func (h *AnswerHandler) Unmark(c *gin.Context) {
	answer, err := h.answers.Deaward(c.Request.Context(), middleware.GetAnswer(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnswerDTO(*answer))
}
