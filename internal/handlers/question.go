package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/middleware"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"github.com/yukikurage/qa-forum-api/internal/utils"
)

// QuestionHandler handles question endpoints. Routes that act on a single question
// run behind middleware.LoadQuestion or middleware.RequireQuestionAccess.
type QuestionHandler struct {
	questions  *services.QuestionService
	answers    *services.AnswerService
	categories *services.CategoryService
	pageSize   int
}

func NewQuestionHandler(
	questions *services.QuestionService,
	answers *services.AnswerService,
	categories *services.CategoryService,
	pageSize int,
) *QuestionHandler {
	return &QuestionHandler{
		questions:  questions,
		answers:    answers,
		categories: categories,
		pageSize:   pageSize,
	}
}

// List returns the newest questions first.
func (h *QuestionHandler) List(c *gin.Context) {
	page, err := h.questions.GetPaginatedList(c.Request.Context(), utils.GetPaginationParams(c, h.pageSize))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(page, dto.ToQuestionDTO))
}

// ListByCategory returns the questions of the category at :id.
func (h *QuestionHandler) ListByCategory(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid category ID")
		return
	}

	category, err := h.categories.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	page, err := h.questions.GetPaginatedListByCategory(c.Request.Context(), category, utils.GetPaginationParams(c, h.pageSize))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":  dto.ToCategoryDTO(*category),
		"questions": dto.ToListResponse(page, dto.ToQuestionDTO),
	})
}

// Show returns the question and the requested page of its answers.
func (h *QuestionHandler) Show(c *gin.Context) {
	question := middleware.GetQuestion(c)

	answers, err := h.answers.GetPaginatedListByQuestion(c.Request.Context(), question, utils.GetPaginationParams(c, h.pageSize))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDetailResponse(*question, answers))
}

// Create posts a question as the current actor, who may be anonymous.
func (h *QuestionHandler) Create(c *gin.Context) {
	type CreateQuestionRequest struct {
		Title      string   `json:"title" binding:"required,max=255"`
		Body       string   `json:"body" binding:"required,max=5000"`
		Image      *string  `json:"image" binding:"omitempty,max=100"`
		CategoryID uint64   `json:"category_id" binding:"required"`
		TagIDs     []uint64 `json:"tag_ids"`
	}

	var req CreateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questions.Create(c.Request.Context(), middleware.GetActor(c), services.CreateQuestionInput{
		Title:      req.Title,
		Body:       req.Body,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToQuestionDTO(*question))
}

// Update applies the fields present in the body.
func (h *QuestionHandler) Update(c *gin.Context) {
	type UpdateQuestionRequest struct {
		Title      *string   `json:"title" binding:"omitempty,max=255"`
		Body       *string   `json:"body" binding:"omitempty,max=5000"`
		Image      *string   `json:"image" binding:"omitempty,max=100"`
		ClearImage bool      `json:"clear_image"`
		CategoryID *uint64   `json:"category_id"`
		TagIDs     *[]uint64 `json:"tag_ids"`
	}

	var req UpdateQuestionRequest
	if !bindJSON(c, &req) {
		return
	}

	question, err := h.questions.Update(c.Request.Context(), middleware.GetQuestion(c), services.UpdateQuestionInput{
		Title:      req.Title,
		Body:       req.Body,
		Image:      req.Image,
		ClearImage: req.ClearImage,
		CategoryID: req.CategoryID,
		TagIDs:     req.TagIDs,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.questions.Delete(c.Request.Context(), middleware.GetQuestion(c)); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// AddTag attaches the tag at :tag_id. Repeating the call changes nothing.
func (h *QuestionHandler) AddTag(c *gin.Context) {
	h.changeTag(c, h.questions.AddTag)
}

// RemoveTag detaches the tag at :tag_id. Repeating the call changes nothing.
func (h *QuestionHandler) RemoveTag(c *gin.Context) {
	h.changeTag(c, h.questions.RemoveTag)
}

func (h *QuestionHandler) changeTag(c *gin.Context, change func(ctx context.Context, question *models.Question, tagID uint64) (*models.Question, error)) {
	tagID, ok := utils.ParseIDParam(c, "tag_id")
	if !ok {
		apierrors.BadRequest(c, "Invalid tag ID")
		return
	}

	question, err := change(c.Request.Context(), middleware.GetQuestion(c), tagID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToQuestionDTO(*question))
}

// SuggestTags proposes existing tags for the question without attaching them.
func (h *QuestionHandler) SuggestTags(c *gin.Context) {
	tags, err := h.questions.SuggestTags(c.Request.Context(), middleware.GetQuestion(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tags": dto.ToTagDTOs(tags)})
}
