package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/dto"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/services"
	"github.com/yukikurage/qa-forum-api/internal/utils"
)

type TagHandler struct {
	tags     *services.TagService
	pageSize int
}

func NewTagHandler(tags *services.TagService, pageSize int) *TagHandler {
	return &TagHandler{tags: tags, pageSize: pageSize}
}

type tagRequest struct {
	Title string `json:"title" binding:"required,max=32"`
}

// List returns one page of tags.
func (h *TagHandler) List(c *gin.Context) {
	page, err := h.tags.GetPaginatedList(c.Request.Context(), utils.GetPaginationParams(c, h.pageSize))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListResponse(page, dto.ToTagDTO))
}

func (h *TagHandler) Show(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tags.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

func (h *TagHandler) Create(c *gin.Context) {
	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tags.Create(c.Request.Context(), services.TagInput{Title: req.Title})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTagDTO(*tag))
}

func (h *TagHandler) Update(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid tag ID")
		return
	}

	var req tagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := h.tags.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	tag, err = h.tags.Update(c.Request.Context(), tag, services.TagInput{Title: req.Title})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTagDTO(*tag))
}

// Delete detaches the tag from its questions before removing it.
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseIDParam(c, "id")
	if !ok {
		apierrors.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tags.FindOneByID(c.Request.Context(), id)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	if err := h.tags.Delete(c.Request.Context(), tag); err != nil {
		apierrors.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
